// 4 Mar 2025

package frame

import "fmt"

// DefaultTieEpsilon is the smallest gap between the best and second best
// frame scores that we trust.
const DefaultTieEpsilon = 1e-6

// AmbiguousFrameError says the best two frames scored too close to call.
// Best is still the frame we would have picked, so a caller who wants to
// go ahead can use it.
type AmbiguousFrameError struct {
	Best, Next int
	BestScore  float64
	NextScore  float64
	TieEpsilon float64
}

func (e *AmbiguousFrameError) Error() string {
	return fmt.Sprintf("no clear reading frame: frame %d scores %.4g, frame %d scores %.4g (epsilon %g)",
		e.Best, e.BestScore, e.Next, e.NextScore, e.TieEpsilon)
}

// Select picks the frame with the lowest score. Ties go to the lower
// offset, so 0 beats 1 beats 2. If the runner up is less than eps
// behind, the chosen frame is returned together with an
// *AmbiguousFrameError.
func Select(scores [3]Score, eps float64) (int, error) {
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i].Score < scores[best].Score {
			best = i
		}
	}
	next := -1
	for i := range scores {
		if i == best {
			continue
		}
		if next == -1 || scores[i].Score < scores[next].Score {
			next = i
		}
	}
	bestF, nextF := scores[best].Frame, scores[next].Frame
	if d := scores[next].Score - scores[best].Score; d < eps {
		return bestF, &AmbiguousFrameError{
			Best: bestF, Next: nextF,
			BestScore: scores[best].Score, NextScore: scores[next].Score,
			TieEpsilon: eps,
		}
	}
	return bestF, nil
}
