package analytics

import (
	"math"
	"sort"
)

// PercentileDistribution summarises a simulated distribution
type PercentileDistribution struct {
	P10    float64 `json:"p10"`
	P25    float64 `json:"p25"`
	Median float64 `json:"median"`
	P75    float64 `json:"p75"`
	P90    float64 `json:"p90"`
}

// Percentiles computes the p10/p25/median/p75/p90 distribution of values
func Percentiles(values []float64) PercentileDistribution {
	if len(values) == 0 {
		return PercentileDistribution{}
	}
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)
	return PercentileDistribution{
		P10:    percentileSorted(sorted, 0.10),
		P25:    percentileSorted(sorted, 0.25),
		Median: percentileSorted(sorted, 0.50),
		P75:    percentileSorted(sorted, 0.75),
		P90:    percentileSorted(sorted, 0.90),
	}
}

// Percentile returns the p-th percentile (0..1) using the lower nearest rank
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)
	return percentileSorted(sorted, p)
}

func percentileSorted(sorted []float64, p float64) float64 {
	idx := int(math.Floor(p * float64(len(sorted)-1)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	return mean / float64(len(values))
}

// variance is the population variance
func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := average(values)
	sum := 0.0
	for _, v := range values {
		diff := v - mean
		sum += diff * diff
	}
	return sum / float64(len(values))
}

func stddev(values []float64) float64 {
	return math.Sqrt(variance(values))
}

// downsideDeviation is the root mean square shortfall below target, taken over the
// observations that fall below it.
func downsideDeviation(values []float64, target float64) float64 {
	sum := 0.0
	count := 0
	for _, v := range values {
		if v < target {
			diff := v - target
			sum += diff * diff
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return math.Sqrt(sum / float64(count))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// pearson returns the correlation coefficient of xs and ys, 0 when undefined
func pearson(xs, ys []float64) float64 {
	if len(xs) != len(ys) || len(xs) == 0 {
		return 0
	}
	mx := average(xs)
	my := average(ys)
	var cov, vx, vy float64
	for i := range xs {
		dx := xs[i] - mx
		dy := ys[i] - my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 {
		return 0
	}
	return cov / math.Sqrt(vx*vy)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
