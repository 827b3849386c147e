package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hemlock/internal/diag"
	"hemlock/internal/observ"
	"hemlock/internal/runtime"
)

var runCmd = &cobra.Command{
	Use:   "run <example> [args...]",
	Short: "Evaluate a built-in example program",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prog := exampleProgram(args[0])
		if prog == nil {
			return fmt.Errorf("unknown example %q (try: fib, concurrency)", args[0])
		}

		tracer, cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		configPath, err := cmd.Root().PersistentFlags().GetString("config")
		if err != nil {
			return err
		}
		cfg, err := runtime.LoadConfig(configPath)
		if err != nil {
			return err
		}

		showTiming, err := cmd.Flags().GetBool("timing")
		if err != nil {
			return err
		}

		interp := runtime.New(cfg, tracer)
		interp.Stdout = cmd.OutOrStdout()
		interp.Argv = args[1:]

		timer := observ.NewTimer()
		phase := timer.Begin("eval")
		_, rerr := interp.Run(prog)
		timer.End(phase, args[0])

		if showTiming {
			fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
		}

		if rerr != nil {
			formatter := diag.NewFormatter(cmd.ErrOrStderr())
			fmt.Fprintln(cmd.ErrOrStderr(), formatter.Format(rerr.Diagnostic()))
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().Bool("timing", false, "print phase timing after evaluation")
}
