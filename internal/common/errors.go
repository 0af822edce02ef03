// Package common provides shared logging helpers and error types.
package common

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingConfig is wrapped by ConfigError when a required key is absent.
	ErrMissingConfig = errors.New("missing configuration")
	// ErrInvalidConfig is wrapped by ConfigError when a key has an unusable value.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrUnsupported is returned when a requested key has no synthetic
	// input mapping.
	ErrUnsupported = errors.New("unsupported")
)

// ConfigError names the configuration key that failed validation.
type ConfigError struct {
	Err    error
	Key    string
	Detail string
}

func (e *ConfigError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%v: %s: %s", e.Err, e.Key, e.Detail)
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Key)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// MissingKey builds a ConfigError for an absent required key.
func MissingKey(key string) error {
	return &ConfigError{Err: ErrMissingConfig, Key: key}
}

// InvalidKey builds a ConfigError for a key with an unusable value.
func InvalidKey(key, format string, args ...any) error {
	return &ConfigError{Err: ErrInvalidConfig, Key: key, Detail: fmt.Sprintf(format, args...)}
}

// UserError represents an error that should be shown to the operator.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new operator-facing error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
