// Package logger builds *slog.Logger instances for the web forms service.
//
// New applies functional options on top of production defaults (JSON output,
// INFO level). Context extractors add request-scoped attributes, such as the
// request ID, each time a record is handled.
//
// Attribute helpers in attr.go keep key names consistent across handlers:
//
//	log.ErrorContext(ctx, "failed to send booking email",
//		logger.Form("service_booking"),
//		logger.Recipient(cfg.StaffEmail),
//		logger.Error(err),
//	)
//
// # Usage
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, cfg.ServiceName),
//		logger.WithLevelString(cfg.LogLevel),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
package logger
