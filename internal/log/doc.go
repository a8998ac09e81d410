// Package log provides the wikilens loggers, built on log/slog.
//
// Loggers returned by this package wrap their handler in a SecureHandler,
// which masks API tokens, authorization headers and passwords embedded in
// URLs. Verbose mode lowers the level to Debug but never disables masking.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("loading export", "path", path, "apiToken", token) // token is masked
package log
