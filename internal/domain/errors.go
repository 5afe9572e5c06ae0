// Package domain holds the errors shared across kilikali packages.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrNoSuchCommand     = errors.New("no such command")
	ErrAmbiguousCommand  = errors.New("ambiguous command")
	ErrCommandFailed     = errors.New("command failed")
	ErrDuplicateCommand  = errors.New("duplicate command")
	ErrInvalidCommand    = errors.New("invalid command")
	ErrTooManyArguments  = errors.New("too many arguments")
	ErrBufferFull        = errors.New("buffer full")
	ErrInvalidRange      = errors.New("invalid range")
	ErrWrongArguments    = errors.New("wrong number of arguments")
	ErrUnsupportedConfig = errors.New("unsupported config version")
	ErrEmptyPlaylist     = errors.New("playlist is empty")
	ErrNoMatch           = errors.New("pattern not found")
	ErrUnsupportedFile   = errors.New("unsupported file type")
)

// CommandError represents a failure while resolving or running a command line
type CommandError struct {
	Op   string // Operation: "tokenize", "lookup", "run", "register"
	Name string // Optional: command name
	Err  error  // Underlying error
}

func (e *CommandError) Error() string {
	if e.Name != "" && e.Err != nil {
		return fmt.Sprintf("command %s [%s]: %v", e.Op, e.Name, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("command %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("command %s failed", e.Op)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ConfigError represents an invalid configuration value
type ConfigError struct {
	Key string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("config [%s]: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("config: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
