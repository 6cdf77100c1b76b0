// Package anomaly provides outlier and anomaly detection for hourly signals.
//
// Two detectors are included, matching two different failure modes of
// meteorological data:
//
// # SPC outliers (temperature)
//
// DetectOutliers combines DCT low-pass smoothing with control limits on the
// raw-minus-smoothed residual (the SATV variant):
//
//	res, err := anomaly.DetectOutliers(temps, 0.05, 3.0)
//	for i, out := range res.Outliers {
//	    if out { ... }
//	}
//
// The control limits res.UCL and res.LCL are single scalars computed over
// the whole residual distribution, not rolling values. Widening stdThresh
// never increases the outlier count.
//
// # LOF anomalies (precipitation)
//
// DetectAnomalies scores each observation by comparing its local density
// against its nearest neighbors:
//
//	res, err := anomaly.DetectAnomalies(precip, 0.01)
//
// The flagged count approximately equals contamination·N; points in dense
// duplicate clusters (long dry spells of exactly zero precipitation) score 1
// and are never flagged.
package anomaly
