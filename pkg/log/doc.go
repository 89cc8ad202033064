// Package log provides the logging abstraction used across distclient.
//
// Components depend on the Logger interface only. Adapters are provided
// for zerolog (the default console logger), zap, and a no-op logger for
// tests.
//
// # Usage
//
// Use the zerolog console adapter:
//
//	logger := log.NewZerologAdapter()
//
// Wrap an existing zap logger:
//
//	logger := log.NewZapAdapter(zapLogger)
//
// Or pick a backend by name, as the CLI does:
//
//	logger, err := log.New("zap", "debug")
//
// # Custom Loggers
//
// Implement the Logger interface to integrate with your existing
// logging infrastructure:
//
//	type MyLogger struct { ... }
//
//	func (l *MyLogger) Debug(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Info(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Warn(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Error(msg string, fields ...log.Field) { ... }
package log
