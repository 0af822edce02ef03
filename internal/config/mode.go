package config

import (
	"fmt"
	"strings"
)

// Mode controls which corrective actions the monitor may take.
type Mode int

const (
	// ModeStandard only authorizes the refresh key press.
	ModeStandard Mode = iota
	// ModeAggressive additionally authorizes locating and clicking a control.
	ModeAggressive
	// ModeAsk defers the choice to an interactive prompt at startup. It never
	// reaches the monitor loop.
	ModeAsk
)

func (m Mode) String() string {
	switch m {
	case ModeStandard:
		return "standard"
	case ModeAggressive:
		return "aggressive"
	case ModeAsk:
		return "ask"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return ModeStandard, nil
	case "aggressive":
		return ModeAggressive, nil
	case "ask":
		return ModeAsk, nil
	default:
		return ModeStandard, fmt.Errorf("unknown mode %q", s)
	}
}

// ErrorPolicy decides what happens after an unexpected failure inside a cycle.
type ErrorPolicy int

const (
	// ErrorContinue logs the failure, waits for the cooldown and resumes.
	ErrorContinue ErrorPolicy = iota
	// ErrorAbort ends the run with the failure.
	ErrorAbort
)

func (p ErrorPolicy) String() string {
	if p == ErrorAbort {
		return "abort"
	}
	return "continue"
}

// ParseErrorPolicy parses "continue" or "abort".
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "continue":
		return ErrorContinue, nil
	case "abort":
		return ErrorAbort, nil
	default:
		return ErrorContinue, fmt.Errorf("unknown error policy %q", s)
	}
}
