// Command fss is the CLI front end: it binds flags to pkgs/config,
// builds a Problem from the input file, drives either solver back end
// through a process.Process, and prints the solution set on exit. It
// contains no SAT logic of its own — only wiring, consumed through the
// narrow interfaces pkgs/config, pkgs/problem and pkgs/solver already
// expose.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fastsatsolver/fss/pkgs/config"
	cerrors "github.com/fastsatsolver/fss/pkgs/errors"
	"github.com/fastsatsolver/fss/pkgs/exportfmt"
	"github.com/fastsatsolver/fss/pkgs/observer"
	"github.com/fastsatsolver/fss/pkgs/problem"
	"github.com/fastsatsolver/fss/pkgs/solver"
	"github.com/fastsatsolver/fss/pkgs/solver/evolutionary"
	"github.com/fastsatsolver/fss/pkgs/solver/exhaustive"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fss:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	var (
		inputFile string
		blind     bool
		stepWidth int
		minSols   int
		maxSols   int
		maxRuns   int
		maxTime   string
		converge  bool
		gaSeed    string
		exportFmt string
		exportOut string
	)

	cmd := &cobra.Command{
		Use:           "fss",
		Short:         "Search satisfying assignments of a propositional SAT document",
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v.Set("input-file", inputFile)
			v.Set("blind-solver", blind)
			v.Set("step-width", stepWidth)
			v.Set("min-solutions", minSols)
			v.Set("max-solutions", maxSols)
			v.Set("max-runs", maxRuns)
			v.Set("max-time-per-run", maxTime)
			v.Set("term-upon-convergence", converge)
			v.Set("ga-seed", gaSeed)
			v.Set("export-format", exportFmt)
			v.Set("export-file", exportOut)

			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input-file", "i", "", "path to the SAT input document (required)")
	cmd.Flags().BoolVar(&blind, "blind-solver", false, "use the exhaustive solver instead of the evolutionary one")
	cmd.Flags().IntVar(&stepWidth, "step-width", 10, "exhaustive solver: 2^step-width assignments per process step")
	cmd.Flags().IntVar(&minSols, "min-solutions", 1, "start no further runs (see --max-runs) once at least this many solutions are found")
	cmd.Flags().IntVar(&maxSols, "max-solutions", 0, "stop once this many solutions are found (0 = unbounded)")
	cmd.Flags().IntVar(&maxRuns, "max-runs", 1, "number of independent runs to perform")
	cmd.Flags().StringVar(&maxTime, "max-time-per-run", "30s", "wall-clock budget per run")
	cmd.Flags().BoolVar(&converge, "term-upon-convergence", false, "evolutionary solver: stop a run once its population converges")
	cmd.Flags().StringVar(&gaSeed, "ga-seed", "", "evolutionary solver: seed text for the deterministic RNG")
	cmd.Flags().StringVar(&exportFmt, "export-format", "", "write a solution snapshot in this format instead of the plain listing (cbor, yaml)")
	cmd.Flags().StringVar(&exportOut, "export-file", "-", "destination for --export-format output (\"-\" for stdout)")
	_ = cmd.MarkFlagRequired("input-file")

	return cmd
}

func run(cfg *config.Config) error {
	var f io.Reader
	if cfg.InputFile == "-" {
		f = os.Stdin
	} else {
		opened, err := os.Open(cfg.InputFile)
		if err != nil {
			return fmt.Errorf("opening input file: %w", err)
		}
		defer opened.Close()
		f = opened
	}

	p, diags, err := problem.New(f)
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, cerrors.FormatDiagnostic(cfg.InputFile, d))
	}
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var s solver.Solver
	var resettable interface{ Reset() }
	if cfg.BlindSolver {
		exh, err := exhaustive.New(ctx, p, cfg.StepWidth)
		if err != nil {
			return err
		}
		s, resettable = exh, exh
	} else {
		evo := evolutionary.New(ctx, p, cfg.GA)
		s, resettable = evo, evo
	}

	proc := s.Process()
	proc.Register(&observer.TimedStop{Limit: cfg.MaxTimePerRun})
	proc.Register(&observer.SolutionsCountStop{Solver: s, Limit: cfg.MaxCountOfSolutions})
	proc.Register(observer.NewFitnessWatch(s, os.Stderr))
	proc.Register(observer.NewResultsWatch(s, os.Stderr))

	go func() {
		<-ctx.Done()
		proc.Stop()
	}()

	// min_count_of_solutions governs restarts across runs, not a single
	// run's own stop condition: keep restarting the solver (up to
	// max_count_of_runs) until the solution set has reached it.
	for i := 0; i < cfg.MaxCountOfRuns; i++ {
		if i > 0 {
			resettable.Reset()
		}
		if err := proc.Start(); err != nil {
			return err
		}
		if s.Solutions().Len() >= cfg.MinCountOfSolutions {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}

	if cfg.ExportFormat != "" {
		return writeExport(cfg, p, s)
	}

	_, err = s.Solutions().WriteTo(os.Stdout, p)
	return err
}

// writeExport encodes the run's solution snapshot in cfg.ExportFormat and
// writes it to cfg.ExportFile, the --export-format/--export-file path that
// exercises pkgs/exportfmt as a real CLI output surface rather than only
// through its own tests.
func writeExport(cfg *config.Config, p *problem.Problem, s solver.Solver) error {
	snap := exportfmt.BuildSnapshot(p, s.Solutions(), s.Stats())

	var (
		data []byte
		err  error
	)
	switch cfg.ExportFormat {
	case "cbor":
		data, err = exportfmt.EncodeCBOR(snap)
	case "yaml":
		data, err = exportfmt.EncodeYAML(snap)
	default:
		return cerrors.NewDomainError(fmt.Sprintf("unknown export format %q", cfg.ExportFormat))
	}
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if cfg.ExportFile != "-" {
		f, err := os.Create(cfg.ExportFile)
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer f.Close()
		w = f
	}
	_, err = w.Write(data)
	return err
}
