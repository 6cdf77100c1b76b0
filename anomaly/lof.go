package anomaly

import (
	"fmt"
	"math"
	"sort"

	"github.com/fheflo1/gokraft/timeseries"
)

// AnomalyResult holds the per-point output of the LOF detector.
type AnomalyResult struct {
	Series    *timeseries.Series
	Scores    []float64 // LOF score per point; ~1 is inlier, >1 is outlier
	Anomalies []bool
	K         int // neighborhood size used
}

// Count returns the number of flagged anomalies.
func (r *AnomalyResult) Count() int {
	n := 0
	for _, a := range r.Anomalies {
		if a {
			n++
		}
	}
	return n
}

// DetectAnomalies flags local-outlier-factor anomalies in a univariate
// signal. Each observation is treated as a 1-D point; its local density is
// compared against its k nearest neighbors with k = max(10, N·contamination·5).
// The floor(contamination·N) points with the highest LOF score are flagged,
// but only while their score exceeds 1 — a constant series therefore yields
// zero anomalies. Neighbor selection and ranking break ties by index, so the
// result is deterministic.
func DetectAnomalies(s *timeseries.Series, contamination float64) (*AnomalyResult, error) {
	if contamination <= 0 || contamination >= 0.5 {
		return nil, fmt.Errorf("%w: contamination %v outside (0, 0.5)", timeseries.ErrInvalidParameter, contamination)
	}

	clean := s.DropNaN()
	n := clean.Len()

	k := int(float64(n) * contamination * 5)
	if k < 10 {
		k = 10
	}
	if n < k+1 {
		return nil, fmt.Errorf("%w: LOF with k=%d needs at least %d points, got %d",
			timeseries.ErrInsufficientData, k, k+1, n)
	}

	scores := lofScores(clean.Values, k)

	anomalies := make([]bool, n)
	budget := int(contamination * float64(n))

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })

	for _, idx := range order {
		if budget == 0 || scores[idx] <= 1 {
			break
		}
		anomalies[idx] = true
		budget--
	}

	return &AnomalyResult{
		Series:    clean,
		Scores:    scores,
		Anomalies: anomalies,
		K:         k,
	}, nil
}

// lofScores computes the local outlier factor of every value against its k
// nearest neighbors. In one dimension the nearest neighbors of a point are
// contiguous in sorted order, so neighbor search is a two-pointer walk.
func lofScores(values []float64, k int) []float64 {
	n := len(values)

	// Sort positions by value, ties by original index.
	byVal := make([]int, n)
	for i := range byVal {
		byVal[i] = i
	}
	sort.SliceStable(byVal, func(a, b int) bool { return values[byVal[a]] < values[byVal[b]] })

	sorted := make([]float64, n)
	for pos, idx := range byVal {
		sorted[pos] = values[idx]
	}

	neighbors := make([][]int, n) // sorted positions of each point's k neighbors
	kdist := make([]float64, n)   // distance to the k-th neighbor

	for pos := 0; pos < n; pos++ {
		nb := make([]int, 0, k)
		lo, hi := pos-1, pos+1
		for len(nb) < k {
			switch {
			case lo < 0:
				nb = append(nb, hi)
				hi++
			case hi >= n:
				nb = append(nb, lo)
				lo--
			case sorted[pos]-sorted[lo] <= sorted[hi]-sorted[pos]:
				nb = append(nb, lo)
				lo--
			default:
				nb = append(nb, hi)
				hi++
			}
		}
		neighbors[pos] = nb
		kdist[pos] = math.Abs(sorted[nb[len(nb)-1]] - sorted[pos])
	}

	// Local reachability density: inverse mean reachability distance to the
	// neighborhood. Duplicate-heavy neighborhoods have zero reachability and
	// infinite density.
	lrd := make([]float64, n)
	for pos := 0; pos < n; pos++ {
		sum := 0.0
		for _, o := range neighbors[pos] {
			reach := math.Abs(sorted[o] - sorted[pos])
			if kdist[o] > reach {
				reach = kdist[o]
			}
			sum += reach
		}
		if sum == 0 {
			lrd[pos] = math.Inf(1)
		} else {
			lrd[pos] = float64(k) / sum
		}
	}

	scores := make([]float64, n)
	for pos := 0; pos < n; pos++ {
		sum := 0.0
		for _, o := range neighbors[pos] {
			sum += densityRatio(lrd[o], lrd[pos])
		}
		scores[byVal[pos]] = sum / float64(k)
	}
	return scores
}

// densityRatio is lrd(o)/lrd(p) with Inf/Inf taken as 1 (duplicate points
// are exactly as dense as their duplicate neighbors).
func densityRatio(o, p float64) float64 {
	if math.IsInf(o, 1) && math.IsInf(p, 1) {
		return 1
	}
	return o / p
}
