// Package main provides the seqgen command.
//
// With no arguments it prints the next value of the persisted sequence;
// with -s <seed> it reseeds the sequence.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	platformcmd "github.com/louisbranch/seqgen/internal/platform/cmd"
	"github.com/louisbranch/seqgen/internal/platform/config"
	"github.com/louisbranch/seqgen/internal/tools/seqgen"
)

func main() {
	fs := flag.NewFlagSet(seqgen.Name, flag.ContinueOnError)
	cfg, err := seqgen.ParseConfig(fs, os.Args[1:])
	if err != nil {
		exit(cfg.Locale, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceSeqgen, func(ctx context.Context) error {
		return seqgen.Run(ctx, cfg, os.Stdout)
	})
	stop()
	if err != nil {
		exit(cfg.Locale, err)
	}
}

func exit(locale string, err error) {
	msg, code := seqgen.Describe(locale, err)
	config.ExitCodef(code, "%s", msg)
}
