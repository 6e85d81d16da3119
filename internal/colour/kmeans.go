package colour

import (
	"math"
	"math/rand"
)

// DefaultKMeansSeed keeps k-means output reproducible across runs.
const DefaultKMeansSeed int64 = 1

// KMeansExtractor clusters suppressed, centre-weighted samples with k-means.
// It exists to compare a principled clustering against the greedy merge used
// by EnhancedExtractor.
type KMeansExtractor struct {
	maxIterations int
	convergence   float64
	seed          int64
}

// NewKMeansExtractor creates a new KMeansExtractor with default settings.
func NewKMeansExtractor(seed int64) *KMeansExtractor {
	return &KMeansExtractor{
		maxIterations: 20,
		convergence:   2.0,
		seed:          seed,
	}
}

// point3D represents a weighted point in 3D RGB color space.
type point3D struct {
	R, G, B float64
	W       float64
}

// distance calculates the Euclidean distance between two points in RGB space.
func (p point3D) distance(other point3D) float64 {
	return distance3(p.R, p.G, p.B, other.R, other.G, other.B)
}

// Extract implements Extractor. Points carry the same spatial, saturation and
// lightness weights as the enhanced extractor so the results are comparable.
func (e *KMeansExtractor) Extract(r *Raster) (*Palette, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	suppressor := NewSuppressorFor(r)
	cx, cy := float64(r.Width)/2, float64(r.Height)/2
	rx, ry := float64(r.Width)*ellipseRadius, float64(r.Height)*ellipseRadius

	var points []point3D
	unique := newBucketSet()
	for y := 0; y < r.Height; y += sampleStride {
		for x := 0; x < r.Width; x += sampleStride {
			px := r.At(x, y)
			hsl, rejected := suppressor.Reject(px)
			if rejected {
				continue
			}
			dx, dy := float64(x)-cx, float64(y)-cy
			spatial := edgeWeight
			if (dx*dx)/(rx*rx)+(dy*dy)/(ry*ry) <= 1 {
				spatial = centreWeight
			}
			w := spatial * saturationBias(hsl.S) * lightnessBias(hsl.L)
			points = append(points, point3D{R: float64(px.R), G: float64(px.G), B: float64(px.B), W: w})
			unique.add(px.RGB(), w)
		}
	}

	if len(points) == 0 {
		return NewPalette(nil, nil), nil
	}

	// Fewer distinct colours than clusters: no clustering needed.
	if len(unique.buckets) <= MaxDominantColours {
		return rankClusters(unique.buckets, MaxDominantColours), nil
	}

	centroids, weights := e.kmeans(points, MaxDominantColours)
	clusters := make([]weightedColour, 0, len(centroids))
	for i, c := range centroids {
		if weights[i] == 0 {
			continue
		}
		clusters = append(clusters, weightedColour{
			rgb:    RGB{R: uint8(math.Round(c.R)), G: uint8(math.Round(c.G)), B: uint8(math.Round(c.B))},
			weight: weights[i],
		})
	}
	return rankClusters(clusters, MaxDominantColours), nil
}

// kmeans performs weighted k-means clustering on the pixel data.
// Returns centroids and their accumulated weights.
func (e *KMeansExtractor) kmeans(points []point3D, k int) ([]point3D, []float64) {
	rng := rand.New(rand.NewSource(e.seed)) // #nosec G404 -- deterministic clustering, not security sensitive

	centroids := initialiseCentroids(rng, points, k)
	assignments := make([]int, len(points))
	for i := range assignments {
		assignments[i] = -1
	}

	for iter := 0; iter < e.maxIterations; iter++ {
		changed := 0
		for i, point := range points {
			nearest := findNearestCentroid(point, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}

		// If very few assignments changed (< 1%), we've converged
		if float64(changed)/float64(len(points)) < 0.01 {
			break
		}

		newCentroids := recalculateCentroids(rng, points, assignments, k)

		totalMovement := 0.0
		for i := range centroids {
			totalMovement += centroids[i].distance(newCentroids[i])
		}
		centroids = newCentroids

		if totalMovement/float64(k) < e.convergence {
			break
		}
	}

	weights := make([]float64, k)
	for i, a := range assignments {
		if a >= 0 {
			weights[a] += points[i].W
		}
	}
	return centroids, weights
}

// initialiseCentroids uses k-means++ seeding.
func initialiseCentroids(rng *rand.Rand, points []point3D, k int) []point3D {
	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, point := range points {
			minDist := math.MaxFloat64
			for _, c := range centroids {
				minDist = math.Min(minDist, point.distance(c))
			}
			distances[i] = minDist * minDist
			total += distances[i]
		}

		if total == 0 {
			last := centroids[len(centroids)-1]
			centroids = append(centroids, point3D{R: last.R + 0.1, G: last.G + 0.1, B: last.B + 0.1})
			continue
		}

		target := rng.Float64() * total
		cumulative := 0.0
		chosen := len(points) - 1
		for i, d := range distances {
			cumulative += d
			if cumulative >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, points[chosen])
	}
	return centroids
}

// findNearestCentroid finds the index of the nearest centroid to a point.
func findNearestCentroid(point point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, c := range centroids {
		if d := point.distance(c); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

// recalculateCentroids moves each centroid to the weighted mean of its points.
func recalculateCentroids(rng *rand.Rand, points []point3D, assignments []int, k int) []point3D {
	sums := make([]point3D, k)
	for i, point := range points {
		c := assignments[i]
		sums[c].R += point.R * point.W
		sums[c].G += point.G * point.W
		sums[c].B += point.B * point.W
		sums[c].W += point.W
	}

	centroids := make([]point3D, k)
	for i := range k {
		if sums[i].W > 0 {
			centroids[i] = point3D{R: sums[i].R / sums[i].W, G: sums[i].G / sums[i].W, B: sums[i].B / sums[i].W}
		} else {
			// Empty cluster - reinitialise from a random point
			centroids[i] = points[rng.Intn(len(points))]
		}
	}
	return centroids
}
