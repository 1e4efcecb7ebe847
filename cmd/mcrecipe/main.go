// Package main provides the mcrecipe CLI: the boundary adapter that
// loads a recipe, compiles and runs it through the core engine, and
// writes or prints the result (spec §6 CLI / C10). Modeled on
// cmd/m2sim/main.go's load-then-dispatch shape, using cobra instead of
// the teacher's raw flag package (see SPEC_FULL.md §0/§2 — cobra is
// mined from ehrlich-b-wingthing, the pack's own cobra-based CLI).
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/sarchlab/mcrecipe/compiler"
	"github.com/sarchlab/mcrecipe/csvcache"
	"github.com/sarchlab/mcrecipe/engine"
	"github.com/sarchlab/mcrecipe/funcs"
	"github.com/sarchlab/mcrecipe/ir"
	"github.com/sarchlab/mcrecipe/output"
	"github.com/sarchlab/mcrecipe/recipe"
	"github.com/sarchlab/mcrecipe/registry"
	"github.com/sarchlab/mcrecipe/scheduler"
	"github.com/sarchlab/mcrecipe/value"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var preview bool
	var workers int
	var verbose bool

	root := &cobra.Command{
		Use:   "mcrecipe <recipe.json>",
		Short: "Monte Carlo recipe engine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(verbose)
			prog, _, err := loadAndCompile(args[0], log)
			if err != nil {
				return reportFailure(preview, err)
			}

			if preview {
				return runPreview(prog, log)
			}
			return runFull(prog, workers, log)
		},
	}
	root.Flags().BoolVar(&preview, "preview", false, "run a single trial and print a JSON summary")
	root.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "number of parallel worker goroutines")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(validateCmd())
	return root
}

// validateCmd compiles a recipe and reports compiler errors without
// running any trials — grounded on cmd/spec-check/main.go's
// decode-only validation of ARM64 programs (SPEC_FULL.md §13).
func validateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate <recipe.json>",
		Short: "compile a recipe and report errors without running trials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(verbose)
			prog, _, err := loadAndCompile(args[0], log)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return err
			}
			fmt.Printf("recipe valid: %d variables, %d pre-trial steps, %d per-trial steps, %d trials\n",
				prog.Variables.Len(), len(prog.PreTrialSteps), len(prog.PerTrialSteps), prog.NumTrials)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func loadAndCompile(path string, log zerolog.Logger) (*ir.Program, *csvcache.Cache, error) {
	raw, err := recipe.Load(path)
	if err != nil {
		return nil, nil, err
	}
	cache := csvcache.New()
	reg := funcs.NewRegistry(cache)
	prog, err := compiler.Compile(raw, reg)
	if err != nil {
		return nil, nil, err
	}
	log.Debug().
		Int("variables", prog.Variables.Len()).
		Int("pre_trial_steps", len(prog.PreTrialSteps)).
		Int("per_trial_steps", len(prog.PerTrialSteps)).
		Int("num_trials", prog.NumTrials).
		Msg("compiled recipe")
	return prog, cache, nil
}

func runPreview(prog *ir.Program, log zerolog.Logger) error {
	snapshot, err := engine.RunPreTrial(prog)
	if err != nil {
		fmt.Println(output.PreviewError(err))
		return err
	}
	rng := engine.NewEntropyRand()
	result, err := engine.RunTrial(prog, snapshot, rng)
	if err != nil {
		fmt.Println(output.PreviewError(err))
		return err
	}
	doc, err := output.Preview(result)
	if err != nil {
		fmt.Println(output.PreviewError(err))
		return err
	}
	fmt.Println(doc)
	return nil
}

func runFull(prog *ir.Program, workers int, log zerolog.Logger) error {
	snapshot, err := engine.RunPreTrial(prog)
	if err != nil {
		return err
	}

	results, err := scheduler.Run(prog, snapshot, workers, log)
	if err != nil {
		return err
	}

	if prog.OutputFilePath != "" {
		f, err := os.Create(prog.OutputFilePath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		if err := output.WriteCSV(f, results); err != nil {
			return err
		}
		fmt.Printf("wrote %d results to %s\n", len(results), prog.OutputFilePath)
		return nil
	}

	printSummary(results)
	return nil
}

// printSummary is the CLI's default statistics printer (out of the
// core's scope per spec §1, a thin adapter): mean/stddev/min/max for
// scalar outputs, computed with gonum/stat rather than by hand since
// gonum is already the pack's shown way of doing numeric reductions
// (see SPEC_FULL.md §3).
func printSummary(results []value.Value) {
	if len(results) == 0 {
		fmt.Println("no results")
		return
	}
	if results[0].Kind() != value.KindScalar {
		fmt.Printf("%d trials completed (output type: %s, set simulation_config.output_file for CSV)\n",
			len(results), results[0].Kind())
		return
	}

	samples := make([]float64, 0, len(results))
	for _, r := range results {
		s, err := r.AsScalar()
		if err != nil {
			continue
		}
		samples = append(samples, s)
	}

	mean, stddev := stat.MeanStdDev(samples, nil)
	min, max := samples[0], samples[0]
	for _, s := range samples {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}

	fmt.Printf("trials: %d\n", len(samples))
	fmt.Printf("mean:   %g\n", mean)
	fmt.Printf("stddev: %g\n", stddev)
	fmt.Printf("min:    %g\n", min)
	fmt.Printf("max:    %g\n", max)
}

func reportFailure(preview bool, err error) error {
	if preview {
		fmt.Println(output.PreviewError(err))
		return err
	}
	fmt.Fprintln(os.Stderr, err)
	return err
}
