// Package interfaces defines core domain contracts.
//
//nolint:revive // Package name 'interfaces' is intentional for domain layer
package interfaces

// Logger defines the interface for structured logging
type Logger interface {
	// Debug logs diagnostic detail that is not shown on the terminal
	Debug(msg string, fields ...Field)

	// Info logs a completed action
	Info(msg string, fields ...Field)

	// Warn logs a problem the run can continue past
	Warn(msg string, fields ...Field)

	// Error logs a problem that stops the run
	Error(msg string, fields ...Field)
}

// Reporter is the Logger plus the section and step markers the installer
// prints while it works through its stages.
type Reporter interface {
	Logger

	// Header starts a new section
	Header(title string)

	// Step announces an action that is about to run
	Step(msg string)

	// List prints a titled, numbered list
	List(title string, items []string)

	// Banner prints the final outcome of the run
	Banner(msg string, success bool)
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a new Field (convenience function)
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// NoOpReporter is a reporter that does nothing (useful for tests)
type NoOpReporter struct{}

// Debug does nothing (no-op implementation)
func (n *NoOpReporter) Debug(_ string, _ ...Field) {}

// Info does nothing (no-op implementation)
func (n *NoOpReporter) Info(_ string, _ ...Field) {}

// Warn does nothing (no-op implementation)
func (n *NoOpReporter) Warn(_ string, _ ...Field) {}

// Error does nothing (no-op implementation)
func (n *NoOpReporter) Error(_ string, _ ...Field) {}

// Header does nothing (no-op implementation)
func (n *NoOpReporter) Header(_ string) {}

// Step does nothing (no-op implementation)
func (n *NoOpReporter) Step(_ string) {}

// List does nothing (no-op implementation)
func (n *NoOpReporter) List(_ string, _ []string) {}

// Banner does nothing (no-op implementation)
func (n *NoOpReporter) Banner(_ string, _ bool) {}
