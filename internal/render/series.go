package render

import "math"

// seriesLimit is the largest magnitude kept in a text chart. Larger values
// would overflow the chart's own scale arithmetic.
const seriesLimit = 1e12

// Series prepares samples for a text chart. Values that are not finite or
// exceed seriesLimit become NaN, which charts draw as gaps. ok reports
// whether at least two real samples remain.
func Series(xs []float64) (out []float64, ok bool) {
	out = make([]float64, len(xs))
	n := 0
	for i, v := range xs {
		if math.IsNaN(v) || math.Abs(v) > seriesLimit {
			out[i] = math.NaN()
			continue
		}
		out[i] = v
		n++
	}
	return out, n >= 2
}
