package config

import "fmt"

// ConfigReadError means a config file could not be read or parsed, or an explicitly
// requested one does not exist.
type ConfigReadError struct {
	Path string
	Err  error
}

func (e *ConfigReadError) Error() string {
	return fmt.Sprintf("Could not read from %s: %s", e.Path, e.Err)
}

func (e *ConfigReadError) Unwrap() error {
	return e.Err
}
