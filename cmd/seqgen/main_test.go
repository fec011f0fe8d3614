package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestMain_Subprocess runs main in a child process so exit codes and
// stdout/stderr can be observed.
func TestMain_Subprocess(t *testing.T) {
	if os.Getenv("SEQGEN_MAIN_SUBPROCESS") == "1" {
		args := strings.Fields(os.Getenv("SEQGEN_MAIN_ARGS"))
		os.Args = append([]string{"seqgen"}, args...)
		main()
		os.Exit(0)
	}
	t.Skip("helper process")
}

func TestSeedThenGenerate(t *testing.T) {
	state := filepath.Join(t.TempDir(), "seed.txt")

	stdout, _, code := runMain(t, state, "-s 42")
	if code != 0 {
		t.Fatalf("seed exit = %d, want 0", code)
	}
	if stdout != "Seed set to: 42\n" {
		t.Fatalf("seed stdout = %q", stdout)
	}

	stdout, _, code = runMain(t, state, "")
	if code != 0 {
		t.Fatalf("generate exit = %d, want 0", code)
	}
	if stdout != "1083814273\n" {
		t.Fatalf("generate stdout = %q, want 1083814273", stdout)
	}
}

func TestFirstRunCreatesRecord(t *testing.T) {
	state := filepath.Join(t.TempDir(), "seed.txt")

	stdout, _, code := runMain(t, state, "")
	if code != 0 {
		t.Fatalf("exit = %d, want 0", code)
	}
	data, err := os.ReadFile(state)
	if err != nil {
		t.Fatalf("read record: %v", err)
	}
	if strings.TrimSpace(string(data)) != strings.TrimSpace(stdout) {
		t.Fatalf("record %q does not match output %q", string(data), stdout)
	}
}

func TestInvalidSeedExitsNonZero(t *testing.T) {
	state := filepath.Join(t.TempDir(), "seed.txt")

	_, stderr, code := runMain(t, state, "-s 4294967296")
	if code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}
	if !strings.Contains(stderr, "Invalid seed value:") || !strings.Contains(stderr, "4294967296") {
		t.Fatalf("stderr = %q", stderr)
	}
	if _, err := os.Stat(state); !os.IsNotExist(err) {
		t.Fatalf("expected no record after invalid seed, stat err = %v", err)
	}
}

func TestUsageErrorMutatesNothing(t *testing.T) {
	for _, args := range []string{"-x 5", "-s=9", "--s 9", "-s 1 -s 2"} {
		t.Run(args, func(t *testing.T) {
			state := filepath.Join(t.TempDir(), "seed.txt")
			if err := os.WriteFile(state, []byte("5\n"), 0o644); err != nil {
				t.Fatalf("write record: %v", err)
			}

			_, stderr, code := runMain(t, state, args)
			if code != 2 {
				t.Fatalf("exit = %d, want 2", code)
			}
			if !strings.Contains(stderr, "Usage: seqgen [-s seed_value]") {
				t.Fatalf("stderr = %q", stderr)
			}
			data, err := os.ReadFile(state)
			if err != nil {
				t.Fatalf("read record: %v", err)
			}
			if string(data) != "5\n" {
				t.Fatalf("record = %q, want unchanged", string(data))
			}
		})
	}
}

func runMain(t *testing.T, statePath string, args string) (string, string, int) {
	t.Helper()

	cmd := exec.Command(os.Args[0], "-test.run=^TestMain_Subprocess$")
	cmd.Env = append(os.Environ(),
		"SEQGEN_MAIN_SUBPROCESS=1",
		"SEQGEN_MAIN_ARGS="+args,
		"SEQGEN_STATE_PATH="+statePath,
		"SEQGEN_STATE_BACKEND=file",
		"SEQGEN_LOCALE=en-US",
		"SEQGEN_OTEL_ENDPOINT=",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	code := 0
	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			t.Fatalf("run subprocess: %v", err)
		}
		code = exitErr.ExitCode()
	}
	return stdout.String(), stderr.String(), code
}
