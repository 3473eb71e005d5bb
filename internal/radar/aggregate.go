package radar

import (
	"math"
	"sort"
)

// CategoryAverage is the mean value of every point in one category.
type CategoryAverage struct {
	Category string  `json:"category"`
	Average  float64 `json:"average"`
	Count    int     `json:"count"`
}

// Percent is the average rounded for display.
func (c CategoryAverage) Percent() int {
	return int(math.Round(c.Average))
}

// CategoryAverages groups points by category in order of first appearance.
func CategoryAverages(points []MetricPoint) []CategoryAverage {
	idx := make(map[string]int)
	var sums []float64
	var out []CategoryAverage
	for _, p := range points {
		i, ok := idx[p.Category]
		if !ok {
			i = len(out)
			idx[p.Category] = i
			out = append(out, CategoryAverage{Category: p.Category})
			sums = append(sums, 0)
		}
		sums[i] += p.Value
		out[i].Count++
	}
	for i := range out {
		out[i].Average = sums[i] / float64(out[i].Count)
	}
	return out
}

// TopN returns up to n points with the highest values. Equal values keep
// their input order. points is not modified.
func TopN(points []MetricPoint, n int) []MetricPoint {
	sorted := append([]MetricPoint(nil), points...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value > sorted[j].Value })
	if n < len(sorted) {
		sorted = sorted[:max(n, 0)]
	}
	return sorted
}
