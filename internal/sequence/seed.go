package sequence

import (
	"errors"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/seqgen/internal/platform/errors"
)

// MaxSeed is the largest accepted seed, 2^32 - 1.
const MaxSeed int64 = 1<<32 - 1

// Source identifies where the state fed into a step came from.
type Source string

const (
	// SourceStore is a state read from the persisted record.
	SourceStore Source = "store"
	// SourceClock is an initial state derived from the wall clock.
	SourceClock Source = "clock"
	// SourceExplicit is a state given by the caller with -s.
	SourceExplicit Source = "explicit"
)

// ErrSeedOutOfRange reports a seed outside [0, 2^32).
func ErrSeedOutOfRange() error {
	return apperrors.New(apperrors.CodeSeedOutOfRange, "seed out of range")
}

// ErrSeedInvalid reports seed input that is not a base-10 integer.
func ErrSeedInvalid() error {
	return apperrors.New(apperrors.CodeSeedInvalid, "seed is not an integer")
}

// InitialSeed derives a starting state from the wall clock: whole seconds
// since the Unix epoch, masked to 32 bits. It carries no security property.
func InitialSeed(now time.Time) uint32 {
	return uint32(now.Unix() & 0xFFFFFFFF)
}

// ValidateSeed checks that value fits the state range.
func ValidateSeed(value int64) (uint32, error) {
	if value < 0 || value > MaxSeed {
		input := strconv.FormatInt(value, 10)
		return 0, apperrors.WithMetadata(apperrors.CodeSeedOutOfRange, "seed out of range: "+input, map[string]string{"Input": input})
	}
	return uint32(value), nil
}

// ParseSeed parses user-supplied seed text. Input that is not a base-10
// integer and integers outside [0, 2^32) both yield an invalid-seed error
// carrying the input.
func ParseSeed(raw string) (uint32, error) {
	input := strings.TrimSpace(raw)
	value, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		metadata := map[string]string{"Input": raw}
		if errors.Is(err, strconv.ErrRange) {
			return 0, apperrors.WrapWithMetadata(apperrors.CodeSeedOutOfRange, "seed out of range: "+input, metadata, err)
		}
		return 0, apperrors.WrapWithMetadata(apperrors.CodeSeedInvalid, "parse seed: "+strconv.Quote(raw), metadata, err)
	}
	return ValidateSeed(value)
}
