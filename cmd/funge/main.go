// funge CLI - runs the built-in Befunge sample programs
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/funge/journal"
	"github.com/chazu/funge/manifest"
	"github.com/chazu/funge/vm"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command with the given arguments and returns the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("funge", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Int("v", -1, "Log verbosity (overrides funge.toml)")
	program := fs.String("program", "", "Sample program to run")
	seed := fs.Uint64("seed", 0, "Seed for the ? instruction (0 uses funge.toml or the clock)")
	maxSteps := fs.Uint64("max-steps", 0, "Stop after this many steps (0 uses funge.toml)")
	trace := fs.Bool("trace", false, "Log every executed instruction")
	record := fs.Bool("journal", false, "Record the run in the journal database")
	list := fs.Bool("list", false, "List sample programs and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: funge [options]\n\n")
		fmt.Fprintf(stderr, "Runs one of the built-in sample programs.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  funge                      # Run the random sample\n")
		fmt.Fprintf(stderr, "  funge -program hello       # Run another sample\n")
		fmt.Fprintf(stderr, "  funge -seed 7 -journal     # Seeded run, recorded in .funge/journal.db\n")
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *list {
		for _, name := range sampleNames() {
			fmt.Fprintf(stdout, "%-10s %s\n", name, samples[name].Description)
		}
		return 0
	}

	m, err := manifest.FindAndLoad(".")
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if m == nil {
		m = manifest.Default()
	}

	// Flags override funge.toml
	if *verbose >= 0 {
		m.Log.Verbosity = *verbose
	}
	if *program != "" {
		m.Run.Program = *program
	}
	if *seed != 0 {
		m.Run.Seed = seed
	}
	if *maxSteps != 0 {
		m.Run.MaxSteps = *maxSteps
	}
	if *trace {
		m.Run.Trace = true
	}
	if *record {
		m.Journal.Enabled = true
	}

	commonlog.Configure(m.Log.Verbosity, m.LogPath())
	log := commonlog.GetLogger("funge")

	s, err := lookupSample(m.Run.Program)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	var captured strings.Builder
	opts := []vm.Option{
		vm.WithOutput(io.MultiWriter(stdout, &captured)),
		vm.WithStepLimit(m.Run.MaxSteps),
		vm.WithTrace(m.Run.Trace),
	}
	if m.Run.Seed != nil {
		opts = append(opts, vm.WithSeed(*m.Run.Seed))
	}
	if m.Run.Banner != nil {
		opts = append(opts, vm.WithBanner(*m.Run.Banner))
	}

	interp := vm.NewInterpreter(s.program(), opts...)
	log.Infof("running %s as %s", m.Run.Program, interp.RunID())

	started := time.Now()
	runErr := interp.Execute(ctx)
	finished := time.Now()

	if m.Journal.Enabled {
		if err := recordRun(ctx, m.JournalPath(), m.Run.Program, interp, captured.String(), runErr, started, finished); err != nil {
			fmt.Fprintf(stderr, "Warning: %v\n", err)
		}
	}

	if runErr != nil {
		fmt.Fprintf(stderr, "\nError: %v\n", runErr)
		return 1
	}
	return 0
}

// recordRun stores the outcome of a run in the journal at path.
func recordRun(ctx context.Context, path, program string, interp *vm.Interpreter, output string, runErr error, started, finished time.Time) error {
	snap, err := vm.MarshalSnapshot(interp.Snapshot())
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	j, err := journal.Open(path)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer j.Close()

	r := &journal.Run{
		ID:         interp.RunID().String(),
		Program:    program,
		StartedAt:  started,
		FinishedAt: finished,
		Steps:      interp.Steps(),
		Output:     output,
		Snapshot:   snap,
	}
	if runErr != nil {
		r.Err = runErr.Error()
	}
	// Record even if the run itself was cancelled.
	return j.Record(context.WithoutCancel(ctx), r)
}
