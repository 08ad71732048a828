// Package logging builds the site's log/slog loggers and carries them, with
// request and trace IDs, through request contexts.
//
// Example usage:
//
//	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
//	...
//	logging.WithRequestID(r.Context(), logger).Info("product list served")
package logging
