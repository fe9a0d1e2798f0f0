package pipeline

import (
	"time"

	"github.com/onflows/telemetry-backend-go/internal/models"
	"github.com/onflows/telemetry-backend-go/internal/stats"
)

// AggregateWindows partitions the canonical rows into fixed-width buckets of
// th.WindowS seconds and computes one aggregate per non-empty bucket. The
// partition is exhaustive and non-overlapping; empty buckets are omitted.
func AggregateWindows(rows []models.CanonicalRow, startUTC time.Time, th Thresholds) []models.WindowAggregate {
	if len(rows) == 0 {
		return nil
	}

	w := th.WindowS
	if w <= 0 {
		w = DefaultThresholds().WindowS
	}

	duration := rows[len(rows)-1].TsRelS + 1
	numWindows := (duration + w - 1) / w

	var aggs []models.WindowAggregate
	next := 0 // rows are ordered by TsRelS, consume them window by window
	for k := 0; k < numWindows; k++ {
		lo := k * w
		hi := lo + w
		if hi > duration {
			hi = duration
		}

		for next < len(rows) && rows[next].TsRelS < lo {
			next++
		}
		first := next
		for next < len(rows) && rows[next].TsRelS < hi {
			next++
		}
		seg := rows[first:next]
		if len(seg) == 0 {
			continue
		}

		agg := aggregateWindow(seg, w, len(seg))
		agg.WinIdx = k
		agg.TStart = startUTC.Add(time.Duration(lo) * time.Second)
		agg.TEnd = startUTC.Add(time.Duration(hi) * time.Second)
		aggs = append(aggs, agg)
	}

	return aggs
}

func aggregateWindow(seg []models.CanonicalRow, windowS, nPoints int) models.WindowAggregate {
	speeds := collect(seg, func(r *models.CanonicalRow) *float64 { return r.SpeedMS })
	hrs := collect(seg, func(r *models.CanonicalRow) *float64 { return r.HRBPM })
	grades := collect(seg, func(r *models.CanonicalRow) *float64 { return r.Grade })
	lats := collect(seg, func(r *models.CanonicalRow) *float64 { return r.Lat })
	lngs := collect(seg, func(r *models.CanonicalRow) *float64 { return r.Lng })

	moving, inconsistent := 0, 0
	for _, r := range seg {
		if r.Moving {
			moving++
		}
		if r.LowSpeedHRInconsistent {
			inconsistent++
		}
	}

	gap := largestNullSpeedRun(seg)
	n := float64(nPoints)

	speedCoverage := float64(len(speeds)) / n
	hrCoverage := float64(len(hrs)) / n
	inconsistentFraction := float64(inconsistent) / n

	q := 0.4*speedCoverage +
		0.2*(1.0-float64(gap)/float64(windowS)) +
		0.2*hrCoverage +
		0.2*(1.0-inconsistentFraction)
	if q < 0 {
		q = 0
	}
	if q > 1 {
		q = 1
	}

	return models.WindowAggregate{
		WindowS:         windowS,
		MeanSpeedMS:     meanOf(speeds),
		P95SpeedMS:      quantileOf(speeds, 0.95),
		MedianHRBPM:     medianOf(hrs),
		HRValidFraction: hrCoverage,
		MeanGrade:       meanOf(grades),
		ElevDeltaM:      firstDiffSum(seg, func(r *models.CanonicalRow) *float64 { return r.AltitudeM }),
		DistanceDeltaM:  firstDiffSum(seg, func(r *models.CanonicalRow) *float64 { return r.DistM }),
		LatCenter:       meanOf(lats),
		LngCenter:       meanOf(lngs),
		MovingFraction:  float64(moving) / n,
		NPoints:         nPoints,
		GapSeconds:      gap,
		QScore:          q,
	}
}

// collect gathers the non-null values of one column within the window.
func collect(seg []models.CanonicalRow, field func(*models.CanonicalRow) *float64) []float64 {
	out := make([]float64, 0, len(seg))
	for i := range seg {
		if v := field(&seg[i]); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// firstDiffSum sums the first differences of a column's non-null values,
// i.e. the net change across the window (last minus first observed).
func firstDiffSum(seg []models.CanonicalRow, field func(*models.CanonicalRow) *float64) *float64 {
	var first, last *float64
	for i := range seg {
		if v := field(&seg[i]); v != nil {
			if first == nil {
				first = v
			}
			last = v
		}
	}
	if first == nil {
		return nil
	}
	delta := *last - *first
	return &delta
}

// largestNullSpeedRun returns the length in samples of the longest
// contiguous run of null speed values inside the window.
func largestNullSpeedRun(seg []models.CanonicalRow) int {
	longest, run := 0, 0
	for i := range seg {
		if seg[i].SpeedMS == nil {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}

func meanOf(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	m := stats.Mean(values)
	return &m
}

func medianOf(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	m := stats.Median(values)
	return &m
}

func quantileOf(values []float64, q float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	v := stats.Quantile(values, q)
	return &v
}
