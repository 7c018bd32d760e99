// Command socialnorm-cli converts NDJSON platform records into canonical NDJSON
//
//	socialnorm-cli -platform reddit [-stats] [file]
//
// Reads stdin when no file is given; gzip input is detected. Failures go to stderr as error envelopes and
// the exit code is 1 if any record failed or the run was interrupted before the end of input
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"socialnorm/internal/adapters/ndjson"
	"socialnorm/internal/modkit"
	"socialnorm/internal/modkit/module"
	"socialnorm/internal/platform/logger"
	pnet "socialnorm/internal/platform/net"
	diagdomain "socialnorm/internal/services/diagnostics/domain"
	diagmod "socialnorm/internal/services/diagnostics/module"
	normmod "socialnorm/internal/services/normalizer/module"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// lineError is written to stderr for every record that failed
type lineError struct {
	Line  int       `json:"line"`
	Error pnet.Wire `json:"error"`
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("socialnorm-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	platform := fs.String("platform", "", "source platform: bluesky or reddit")
	stats := fs.Bool("stats", false, "print the diagnostics tally to stderr when done")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *platform == "" {
		fmt.Fprintln(stderr, "socialnorm-cli: -platform is required")
		fs.Usage()
		return 2
	}

	in := io.NopCloser(stdin)
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(stderr, "socialnorm-cli: %v\n", err)
			return 2
		}
		in = f
	}
	rd, err := ndjson.NewReader(in)
	if err != nil {
		fmt.Fprintf(stderr, "socialnorm-cli: %v\n", err)
		return 2
	}
	defer func() { _ = rd.Close() }()

	diag := diagmod.NewWith(modkit.Deps{}, diagmod.Options{Tally: true})
	dp := module.MustPortsOf[diagmod.Ports](diag)
	norm := normmod.New(modkit.Deps{}, modkit.WithPorts(normmod.Needs{Observer: dp.Observer, Failures: dp.Failures}))
	svc := module.MustPortsOf[normmod.Ports](norm).Service

	out := bufio.NewWriter(stdout)
	defer func() { _ = out.Flush() }()
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	errEnc := json.NewEncoder(stderr)

	log := logger.Named("cli")
	failed, eof := 0, false
	for ctx.Err() == nil {
		rec, err := rd.Next()
		if errors.Is(err, io.EOF) {
			eof = true
			break
		}
		if err != nil {
			log.Error().Err(err).Msg("read failed")
			return 1
		}
		doc, err := svc.Normalize(ctx, *platform, rec.Raw)
		if err != nil {
			failed++
			_, w := pnet.Error(err, "")
			_ = errEnc.Encode(lineError{Line: rec.Line, Error: w})
			continue
		}
		if err := enc.Encode(doc); err != nil {
			fmt.Fprintf(stderr, "socialnorm-cli: write: %v\n", err)
			return 1
		}
	}
	n, size := rd.Stats()
	log.Debug().Int("records", n).Int64("bytes", size).Int("failed", failed).Msg("done")
	if !eof {
		// output is truncated, callers must not mistake it for a full run
		fmt.Fprintf(stderr, "socialnorm-cli: stopped after %d records: %v\n", n, ctx.Err())
		return 1
	}

	if *stats {
		_ = out.Flush()
		snap := dp.Stats.Snapshot(diagdomain.StatsFilter{})
		_ = json.NewEncoder(stderr).Encode(snap)
	}
	if failed > 0 {
		return 1
	}
	return 0
}
