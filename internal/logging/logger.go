// Package logging hides the concrete logging framework behind a small structured
// interface so the pipeline can be exercised with a capturing logger in tests.
package logging

// Logger is the structured logger used across the application.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// Fatal logs and terminates the process.
	Fatal(msg string, fields ...Field)
	Fatalf(msg string, args ...interface{})

	WithError(err error) Logger
	WithField(key string, value interface{}) Logger
	WithFields(fields ...Field) Logger
}

// Field is a single key/value attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Default returns an info-level text logger. Constructors fall back to it when
// handed a nil Logger.
func Default() Logger {
	return NewLogrusAdapter("info", "text")
}
