package metrics

import (
	"math"

	"github.com/san-kum/dragsim/internal/dynamo"
)

// Stability is the fraction of observed states whose components are all
// finite and within limit. A coarse step against heavy drag is the usual way
// an explicit method falls out of it.
type Stability struct {
	limit    float64
	total    int
	unstable int
}

func NewStability(limit float64) *Stability {
	return &Stability{limit: limit}
}

func (*Stability) Name() string { return "stability" }

func (s *Stability) Observe(x dynamo.State, _ float64) {
	s.total++
	for _, v := range x {
		if math.IsNaN(v) || math.Abs(v) > s.limit {
			s.unstable++
			return
		}
	}
}

func (s *Stability) Value() float64 {
	if s.total == 0 {
		return 1
	}
	return float64(s.total-s.unstable) / float64(s.total)
}

func (s *Stability) Reset() {
	s.total, s.unstable = 0, 0
}
