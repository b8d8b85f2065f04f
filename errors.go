package entropy

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownHost is wrapped by the ConfigurationError returned when
// canvas.appendTo names a host that was never registered.
var ErrUnknownHost = errors.New("unknown host")

// ConfigurationError reports a configuration rejected by Engine.ApplyConfig.
// Nothing is applied when it is returned.
type ConfigurationError struct {
	// Missing lists required fields that were absent, by config path.
	Missing []string
	// Reason describes any other validation failure.
	Reason string
	// Err is the underlying cause, if any.
	Err error
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("entropy: invalid config")
	if len(e.Missing) > 0 {
		b.WriteString(": missing ")
		b.WriteString(strings.Join(e.Missing, ", "))
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// NotInitializedError is returned when the surface or another configured
// resource is requested before a successful ApplyConfig.
type NotInitializedError struct {
	What string
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("entropy: %s not initialized, apply a config first", e.What)
}

// PersistenceFormatError reports a persisted registry value that could not be
// decoded.
type PersistenceFormatError struct {
	Key string
	Err error
}

func (e *PersistenceFormatError) Error() string {
	return fmt.Sprintf("entropy: malformed persisted value for %q: %v", e.Key, e.Err)
}

func (e *PersistenceFormatError) Unwrap() error { return e.Err }
