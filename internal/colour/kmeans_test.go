package colour

import (
	"image/color"
	"reflect"
	"testing"
)

// shaded draws two garments made of many close shades on a white background.
func shaded(x, y int) color.NRGBA {
	if x < 10 || x >= 90 || y < 10 || y >= 90 {
		return white
	}
	if x < 50 {
		return color.NRGBA{R: uint8(170 + (x+y)%20), G: 20, B: 30, A: 255}
	}
	return color.NRGBA{R: 20, G: 40, B: uint8(150 + (x*y)%25), A: 255}
}

func TestKMeansClustersShades(t *testing.T) {
	r := newTestRaster(t, 100, 100, shaded)

	seed := int64(7)
	ex, err := NewExtractor(AlgorithmKMeans, ExtractorOptions{Seed: &seed})
	if err != nil {
		t.Fatalf("NewExtractor() error: %v", err)
	}

	p, err := ex.Extract(r)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if p.Len() == 0 || p.Len() > MaxDominantColours {
		t.Fatalf("Extract() returned %d colours", p.Len())
	}

	for _, c := range p.Colours {
		reddish := c.R > c.B
		bluish := c.B > c.R
		if !reddish && !bluish {
			t.Errorf("cluster %s is neither garment", c.Hex())
		}
	}

	again, err := NewKMeansExtractor(seed).Extract(r)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if !reflect.DeepEqual(p, again) {
		t.Errorf("same seed gave %v then %v", p.ToHex(), again.ToHex())
	}
}

func TestKMeansEmpty(t *testing.T) {
	r := newTestRaster(t, 30, 30, func(int, int) color.NRGBA { return white })
	p, err := NewKMeansExtractor(DefaultKMeansSeed).Extract(r)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if p.Len() != 0 {
		t.Errorf("Extract() = %v, want empty", p.ToHex())
	}
}
