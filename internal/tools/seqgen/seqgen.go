// Package seqgen implements the seqgen command: print the next value of the
// persisted sequence, or reseed it with -s.
package seqgen

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	platformcmd "github.com/louisbranch/seqgen/internal/platform/cmd"
	apperrors "github.com/louisbranch/seqgen/internal/platform/errors"
	"github.com/louisbranch/seqgen/internal/platform/i18n/catalog"
	"github.com/louisbranch/seqgen/internal/sequence"
	"github.com/louisbranch/seqgen/internal/sequence/storage"
	"github.com/louisbranch/seqgen/internal/sequence/storage/file"
	"github.com/louisbranch/seqgen/internal/sequence/storage/sqlite"
)

// Name is the command name shown in usage.
const Name = "seqgen"

// Supported state backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds seqgen command configuration.
type Config struct {
	StatePath string `env:"SEQGEN_STATE_PATH"`
	Backend   string `env:"SEQGEN_STATE_BACKEND" envDefault:"file"`
	Locale    string `env:"SEQGEN_LOCALE" envDefault:"en-US"`
	Verbose   bool   `env:"SEQGEN_VERBOSE"`

	// Seed is the raw -s value; SeedSet reports whether -s was given.
	Seed    string
	SeedSet bool
}

// ParseConfig loads env defaults and then parses args. Any argument shape
// other than none or a single -s <seed> is a usage error. The returned
// Config keeps its env values even when the args are rejected, so callers
// can still report in the configured locale.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	if fs == nil {
		return Config{}, errors.New("flag parser is required")
	}
	var cfg Config
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Seed, "s", "", "set the sequence seed (0 <= seed < 2^32)")

	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return cfg, err
	}
	// Exactly "-s" then a value; flag spellings like -s=5 or --s are rejected.
	if !acceptedShape(args) {
		joined := strings.Join(args, " ")
		return cfg, apperrors.WithMetadata(apperrors.CodeUsage, "unexpected arguments: "+joined,
			map[string]string{"Args": joined})
	}
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return cfg, apperrors.Wrap(apperrors.CodeUsage, "parse args: "+err.Error(), err)
	}
	cfg.SeedSet = len(args) == 2

	if cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend)); cfg.Backend == "" {
		cfg.Backend = BackendFile
	}
	if strings.TrimSpace(cfg.StatePath) == "" {
		cfg.StatePath = defaultStatePath(cfg.Backend)
	}
	return cfg, nil
}

// Run executes the configured operation and writes its result to out.
// cfg.StatePath must be set; ParseConfig fills in the backend default.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		return errors.New("output is required")
	}

	// Reject a bad seed before the store is touched.
	var seed uint32
	if cfg.SeedSet {
		parsed, err := sequence.ParseSeed(cfg.Seed)
		if err != nil {
			return err
		}
		seed = parsed
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Printf("%s close state store: %v", Name, err)
		}
	}()

	gen, err := sequence.New(store)
	if err != nil {
		return err
	}
	printer := catalog.Default().Printer(cfg.Locale)

	if cfg.SeedSet {
		if err := gen.SetSeed(ctx, seed); err != nil {
			return err
		}
		if cfg.Verbose {
			log.Printf("%s state %s set to %d (%s)", Name, store.Location(), seed, sequence.SourceExplicit)
		}
		_, err := fmt.Fprintln(out, printer.Sprintf("cli.seed_set", strconv.FormatUint(uint64(seed), 10)))
		return err
	}

	step, err := gen.Next(ctx)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		log.Printf("%s state %s advanced %d -> %d (from %s)", Name, store.Location(), step.Previous, step.Value, step.Source)
	}
	_, err = fmt.Fprintln(out, strconv.FormatUint(uint64(step.Value), 10))
	return err
}

// Describe renders err for the user in locale and returns the process exit
// code it maps to.
func Describe(locale string, err error) (string, int) {
	if err == nil {
		return "", apperrors.ExitOK
	}
	printer := catalog.Default().Printer(locale)
	code := apperrors.CodeOf(err)
	switch {
	case code == apperrors.CodeUsage:
		return printer.Sprintf("cli.usage", Name), code.ExitCode()
	case code.IsInvalidSeed():
		return printer.Sprintf("cli.invalid_seed", apperrors.UserMessage(err, locale)), code.ExitCode()
	default:
		return printer.Sprintf("cli.error", apperrors.UserMessage(err, locale)), apperrors.ExitCode(err)
	}
}

func acceptedShape(args []string) bool {
	return len(args) == 0 || (len(args) == 2 && args[0] == "-s")
}

func defaultStatePath(backend string) string {
	if backend == BackendSQLite {
		return sqlite.DefaultPath
	}
	return file.DefaultPath
}

func openStore(cfg Config) (storage.StateStore, func() error, error) {
	path := cfg.StatePath
	switch cfg.Backend {
	case BackendFile:
		store, err := file.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { return nil }, nil
	case BackendSQLite:
		store, err := sqlite.Open(path)
		if err != nil {
			return nil, nil, apperrors.WrapWithMetadata(apperrors.CodeStateUnavailable, "open sqlite state: "+err.Error(),
				map[string]string{"Path": path}, err)
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown state backend %q (want %s or %s)", cfg.Backend, BackendFile, BackendSQLite)
	}
}
