// Package snowdrift computes directional snow transport from hourly wind,
// precipitation, and temperature records using a Tabler-style drift model.
//
// Observations are bucketed into snow-years running July 1 through June 30;
// precipitation below 1°C accumulates as snow-water-equivalent. Per season
// the model reports the potential transport Σ(u^3.8·Δt)/233847, the
// SWE-limited saturation transport, and the fetch-damped actual transport,
// plus a 16-sector wind-rose distribution:
//
//	res, err := snowdrift.Analyze(frame, snowdrift.DefaultParams())
//	for _, s := range res.Seasons {
//	    fmt.Println(s.Season, s.Qt)
//	}
//
// The empirical constants (exponent 3.8, divisor 233847, damping base 0.14)
// come from the published model and are deliberately not configurable.
package snowdrift
