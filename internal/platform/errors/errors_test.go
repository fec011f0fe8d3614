package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := WithMetadata(CodeSeedOutOfRange, "seed out of range", map[string]string{"Input": "-1"})
	if !stderrors.Is(err, New(CodeSeedOutOfRange, "other message")) {
		t.Fatal("expected errors.Is to match on code")
	}
	if stderrors.Is(err, New(CodeUsage, "seed out of range")) {
		t.Fatal("expected different codes not to match")
	}
}

func TestWrapUnwrapsCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(CodeStateUnavailable, "save state", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable")
	}
	if err.Error() != "save state" {
		t.Fatalf("error = %q, want %q", err.Error(), "save state")
	}
}

func TestCodeOfFindsWrappedDomainError(t *testing.T) {
	err := fmt.Errorf("run: %w", New(CodeStateMalformed, "bad"))
	if got := CodeOf(err); got != CodeStateMalformed {
		t.Fatalf("code = %q, want %q", got, CodeStateMalformed)
	}
	if got := CodeOf(fmt.Errorf("plain")); got != CodeUnknown {
		t.Fatalf("code = %q, want %q", got, CodeUnknown)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitOK},
		{name: "usage", err: New(CodeUsage, "usage"), want: ExitUsage},
		{name: "invalid seed", err: New(CodeSeedInvalid, "bad"), want: ExitFailure},
		{name: "out of range", err: New(CodeSeedOutOfRange, "bad"), want: ExitFailure},
		{name: "malformed", err: New(CodeStateMalformed, "bad"), want: ExitFailure},
		{name: "plain", err: fmt.Errorf("boom"), want: ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Fatalf("exit code = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsInvalidSeed(t *testing.T) {
	if !CodeSeedInvalid.IsInvalidSeed() || !CodeSeedOutOfRange.IsInvalidSeed() {
		t.Fatal("expected seed codes to be invalid seed")
	}
	if CodeUsage.IsInvalidSeed() {
		t.Fatal("usage is not an invalid seed")
	}
}

func TestUserMessage(t *testing.T) {
	err := fmt.Errorf("set seed: %w", WithMetadata(CodeSeedInvalid, "parse seed", map[string]string{"Input": "abc"}))
	if got := UserMessage(err, "en-US"); got != "abc is not an integer" {
		t.Fatalf("message = %q", got)
	}
	if got := UserMessage(fmt.Errorf("plain failure"), "en-US"); got != "plain failure" {
		t.Fatalf("message = %q", got)
	}
	if got := UserMessage(nil, "en-US"); got != "" {
		t.Fatalf("message = %q, want empty", got)
	}
}
