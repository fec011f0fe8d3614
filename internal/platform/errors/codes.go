// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Seed errors
	CodeSeedInvalid    Code = "SEED_INVALID"
	CodeSeedOutOfRange Code = "SEED_OUT_OF_RANGE"

	// State errors
	CodeStateMalformed   Code = "STATE_MALFORMED"
	CodeStateUnavailable Code = "STATE_UNAVAILABLE"

	// Command-line errors
	CodeUsage Code = "USAGE"
)

// Process exit codes returned by command entry points.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitCode maps domain codes to process exit codes.
func (c Code) ExitCode() int {
	switch c {
	case CodeUsage:
		return ExitUsage
	default:
		return ExitFailure
	}
}

// IsInvalidSeed reports whether the code describes a rejected seed value.
func (c Code) IsInvalidSeed() bool {
	return c == CodeSeedInvalid || c == CodeSeedOutOfRange
}
