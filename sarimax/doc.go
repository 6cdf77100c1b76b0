// Package sarimax fits seasonal ARIMA models with optional exogenous
// regressors and produces hourly forecasts with confidence bands.
//
// Exogenous effects are removed first by an ordinary-least-squares stage;
// the seasonal ARIMA is then estimated on the remainder by conditional
// sum of squares. Forecasts recombine both stages, so future regressor
// values must be supplied whenever the model was fit with them:
//
//	series, exog, err := sarimax.PrepareData(frame, "consumption", start, end,
//	    []string{"temperature_2m"})
//	model, err := sarimax.New(1, 1, 1, 1, 1, 1, 24)
//	err = model.Fit(series, exog)
//	fc, err := model.Forecast(48, 0.95, exogFuture)
//
// Order selection is the caller's responsibility: a failed fit returns an
// error wrapping ErrModelFit rather than retrying with different orders.
// Stationarity and invertibility are not enforced; coefficients are only
// clamped to (-1, 1) for numeric stability.
package sarimax
