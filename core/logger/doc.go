// Package logger builds slog loggers and provides attribute helpers for
// consistent structured logging.
//
//	log := logger.New(
//		logger.WithProduction("qrdata"),
//		logger.WithContextExtractors(middleware.RequestIDExtractor),
//	)
//
//	log.InfoContext(ctx, "qr code generated",
//		logger.Component("api"),
//		logger.Key("format", "svg"),
//	)
//
// WithDevelopment selects text output at debug level, WithProduction JSON at
// info level. Context extractors add request-scoped attributes to every
// record logged with a context, such as the request ID set by middleware.
//
// Attribute helpers return an empty slog.Attr for empty input, so
//
//	log.Error("failed", logger.Error(err))
//
// is safe when err is nil.
package logger
