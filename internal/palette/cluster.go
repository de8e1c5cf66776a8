package palette

import (
	"math/rand/v2"
	"sort"
	"time"
)

const (
	kmeansMaxIterations = 20
	kmeansMoveThreshold = 5.0
	kmeansMinWeight     = 0.01
	medianCutStep       = 8
	mergeStep           = 16
)

// Cluster reduces samples to at most options.MaxColors colors sorted by
// descending weight. An empty sample set yields no colors.
func Cluster(samples []RGB, options Options) []ExtractedColor {
	if len(samples) == 0 {
		return nil
	}

	normalized := options.normalized()
	switch normalized.Clustering {
	case ClusteringKMeans:
		return kmeansCluster(samples, normalized.MaxColors, newRand(normalized.Seed))
	case ClusteringOctree:
		return octreeCluster(samples, normalized.MaxColors)
	default:
		return medianCutCluster(samples, normalized.MaxColors)
	}
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func kmeansCluster(samples []RGB, k int, rng *rand.Rand) []ExtractedColor {
	if k > len(samples) {
		k = len(samples)
	}
	if k <= 0 {
		return nil
	}

	points := make([][3]float64, len(samples))
	for index, sample := range samples {
		points[index] = [3]float64{float64(sample.R), float64(sample.G), float64(sample.B)}
	}

	centroids := make([][3]float64, k)
	for index := range centroids {
		centroids[index] = points[rng.IntN(len(points))]
	}

	assignments := make([]int, len(points))
	for iteration := 0; iteration < kmeansMaxIterations; iteration++ {
		for index, point := range points {
			assignments[index] = nearestCentroid(point, centroids)
		}

		sums := make([][3]float64, k)
		counts := make([]int, k)
		for index, point := range points {
			cluster := assignments[index]
			counts[cluster]++
			sums[cluster][0] += point[0]
			sums[cluster][1] += point[1]
			sums[cluster][2] += point[2]
		}

		converged := true
		for cluster := range centroids {
			if counts[cluster] == 0 {
				continue
			}
			next := [3]float64{
				sums[cluster][0] / float64(counts[cluster]),
				sums[cluster][1] / float64(counts[cluster]),
				sums[cluster][2] / float64(counts[cluster]),
			}
			if rgbDistance(centroids[cluster], next) >= kmeansMoveThreshold {
				converged = false
			}
			centroids[cluster] = next
		}

		if converged {
			break
		}
	}

	counts := make([]int, k)
	for _, point := range points {
		counts[nearestCentroid(point, centroids)]++
	}

	colors := make([]ExtractedColor, 0, k)
	for cluster, centroid := range centroids {
		weight := float64(counts[cluster]) / float64(len(points))
		if weight <= kmeansMinWeight {
			continue
		}
		colors = append(colors, NewExtractedColor(roundCentroid(centroid), weight))
	}

	sortByWeight(colors)
	return colors
}

func nearestCentroid(point [3]float64, centroids [][3]float64) int {
	best := 0
	bestDistance := rgbDistance(point, centroids[0])
	for index := 1; index < len(centroids); index++ {
		if distance := rgbDistance(point, centroids[index]); distance < bestDistance {
			best = index
			bestDistance = distance
		}
	}
	return best
}

func roundCentroid(centroid [3]float64) RGB {
	return RGB{
		R: uint8(clampFloat(centroid[0]+0.5, 0, 255)),
		G: uint8(clampFloat(centroid[1]+0.5, 0, 255)),
		B: uint8(clampFloat(centroid[2]+0.5, 0, 255)),
	}
}

type colorBucket struct {
	color RGB
	count int
}

func medianCutCluster(samples []RGB, maxColors int) []ExtractedColor {
	buckets := make([]colorBucket, 0, 64)
	index := make(map[RGB]int, 64)

	for _, sample := range samples {
		key := quantize(sample, medianCutStep)
		if position, ok := index[key]; ok {
			buckets[position].count++
			continue
		}
		index[key] = len(buckets)
		buckets = append(buckets, colorBucket{color: key, count: 1})
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].count > buckets[j].count
	})

	if len(buckets) > maxColors {
		buckets = buckets[:maxColors]
	}

	colors := make([]ExtractedColor, 0, len(buckets))
	for _, bucket := range buckets {
		colors = append(colors, NewExtractedColor(bucket.color, float64(bucket.count)/float64(len(samples))))
	}

	return colors
}

func quantize(c RGB, step int) RGB {
	return RGB{
		R: uint8(int(c.R) / step * step),
		G: uint8(int(c.G) / step * step),
		B: uint8(int(c.B) / step * step),
	}
}

// MergeColors folds several clustering results together. Colors landing in the
// same 16-unit bucket share the first color seen and sum their weights.
func MergeColors(sets ...[]ExtractedColor) []ExtractedColor {
	merged := make([]ExtractedColor, 0, 16)
	index := make(map[RGB]int, 16)

	for _, set := range sets {
		for _, candidate := range set {
			key := quantize(candidate.RGB, mergeStep)
			if position, ok := index[key]; ok {
				merged[position].Weight += candidate.Weight
				continue
			}
			index[key] = len(merged)
			merged = append(merged, candidate)
		}
	}

	sortByWeight(merged)
	return merged
}

func sortByWeight(colors []ExtractedColor) {
	sort.SliceStable(colors, func(i, j int) bool {
		return colors[i].Weight > colors[j].Weight
	})
}
