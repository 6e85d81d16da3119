package analysis

import (
	"context"
	"errors"
	"image"
	"image/color"
	"reflect"
	"testing"

	imageloader "github.com/kalil1010/ai-stylist/internal/image"
)

func redSquare() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			if x >= 40 && x < 60 && y >= 40 && y < 60 {
				c = color.NRGBA{R: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func plain(c color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

type stubLoader struct {
	img  image.Image
	err  error
	path string
}

func (l *stubLoader) Load(_ context.Context, path string) (image.Image, error) {
	l.path = path
	return l.img, l.err
}

func TestAnalyzeImage(t *testing.T) {
	a := New(Options{})
	res, err := a.AnalyzeImage(context.Background(), redSquare())
	if err != nil {
		t.Fatalf("AnalyzeImage() error: %v", err)
	}

	if res.PrimaryHex != "#F80000" {
		t.Errorf("PrimaryHex = %s, want #F80000", res.PrimaryHex)
	}
	if !reflect.DeepEqual(res.DominantHexes, []string{"#F80000"}) {
		t.Errorf("DominantHexes = %v", res.DominantHexes)
	}
	if res.ColorPercentages["#F80000"] != 100 {
		t.Errorf("ColorPercentages = %v", res.ColorPercentages)
	}
	if res.GarmentType != DefaultGarmentType {
		t.Errorf("GarmentType = %q", res.GarmentType)
	}
	if res.RichMatches == nil || res.RichMatches.Base != "#f80000" {
		t.Errorf("RichMatches = %+v", res.RichMatches)
	}
	if len(res.ColorNames) != 1 || res.ColorNames[0] == "" {
		t.Errorf("ColorNames = %v", res.ColorNames)
	}
}

func TestAnalyzeImageNothingFound(t *testing.T) {
	a := New(Options{})
	res, err := a.AnalyzeImage(context.Background(), plain(color.NRGBA{R: 255, G: 255, B: 255, A: 255}))
	if err != nil {
		t.Fatalf("AnalyzeImage() error: %v", err)
	}
	if !res.Empty() {
		t.Errorf("DominantHexes = %v, want none", res.DominantHexes)
	}
	if res.PrimaryHex != "" || res.RichMatches != nil || res.Matches != nil {
		t.Errorf("empty analysis carries colours: %+v", res)
	}
}

func TestAnalyzeImageCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(Options{}).AnalyzeImage(ctx, redSquare()); !errors.Is(err, context.Canceled) {
		t.Errorf("AnalyzeImage() error = %v, want context.Canceled", err)
	}
}

func TestAnalyzePath(t *testing.T) {
	loader := &stubLoader{img: redSquare()}
	a := New(Options{Loader: loader})

	res, err := a.AnalyzePath(context.Background(), "closet/shirt.jpg")
	if err != nil {
		t.Fatalf("AnalyzePath() error: %v", err)
	}
	if loader.path != "closet/shirt.jpg" {
		t.Errorf("loader got %q", loader.path)
	}
	if res.PrimaryHex != "#F80000" {
		t.Errorf("PrimaryHex = %s", res.PrimaryHex)
	}

	loader.err = imageloader.ErrDecode
	if _, err := a.AnalyzePath(context.Background(), "bad.jpg"); !errors.Is(err, imageloader.ErrDecode) {
		t.Errorf("AnalyzePath() error = %v, want ErrDecode", err)
	}
}

func TestAnalyzeBytesInvalid(t *testing.T) {
	if _, err := New(Options{}).AnalyzeBytes(context.Background(), []byte("nope")); !errors.Is(err, imageloader.ErrDecode) {
		t.Errorf("AnalyzeBytes() error = %v, want ErrDecode", err)
	}
}

func TestFromHexes(t *testing.T) {
	res, err := FromHexes([]string{"ff0000", "#FF0000", "bad", " #00ff00 ", "#abc", ""})
	if err != nil {
		t.Fatalf("FromHexes() error: %v", err)
	}
	if want := []string{"#FF0000", "#00FF00"}; !reflect.DeepEqual(res.DominantHexes, want) {
		t.Errorf("DominantHexes = %v, want %v", res.DominantHexes, want)
	}
	if res.PrimaryHex != "#FF0000" {
		t.Errorf("PrimaryHex = %s", res.PrimaryHex)
	}
	if want := []string{"Red", "Bright Green"}; !reflect.DeepEqual(res.ColorNames, want) {
		t.Errorf("ColorNames = %v, want %v", res.ColorNames, want)
	}
	if res.Matches.Complementary != "#00ffff" {
		t.Errorf("Matches.Complementary = %s", res.Matches.Complementary)
	}
	if res.RichMatches.Triadic != [2]string{"#00ff00", "#0000ff"} {
		t.Errorf("RichMatches.Triadic = %v", res.RichMatches.Triadic)
	}
	if res.ColorPercentages != nil {
		t.Errorf("ColorPercentages = %v, want nil", res.ColorPercentages)
	}
}

func TestFromHexesNoColours(t *testing.T) {
	for _, in := range [][]string{nil, {}, {"zzzzzz", "#12"}} {
		if _, err := FromHexes(in); !errors.Is(err, ErrNoColours) {
			t.Errorf("FromHexes(%v) error = %v, want ErrNoColours", in, err)
		}
	}
}
