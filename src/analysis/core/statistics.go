package core

import "sort"

// -----------------------------------------------------------------------------

// Percentage computes the share of part in total, ×100. Returns 0 for
// an empty total.
func Percentage(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return 100 * part / total
}

// -----------------------------------------------------------------------------

// Sum adds up the values.
func Sum(data []float64) float64 {
	total := 0.0
	for _, v := range data {
		total += v
	}
	return total
}

// -----------------------------------------------------------------------------

// Max returns the largest value, 0 for empty input.
func Max(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	max := data[0]
	for _, v := range data[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// -----------------------------------------------------------------------------

// Median returns the middle value of the distribution: the middle
// element for odd sizes, the mean of the two middle elements for even
// sizes. The input slice is left untouched; sorting happens on a copy.
func Median(data []float64) float64 {
	size := len(data)
	if size == 0 {
		return 0
	}
	if size == 1 {
		return data[0]
	}

	sorted := make([]float64, size)
	copy(sorted, data)
	sort.Float64s(sorted)

	if size%2 == 0 {
		return (sorted[size/2-1] + sorted[size/2]) / 2
	}
	return sorted[size/2]
}
