package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"hemlock/internal/runtime"
	"hemlock/internal/trace"
	"hemlock/internal/ui"
)

// chanTracer forwards every emitted event onto a channel, feeding the
// bubbletea inspector while a program runs on a background goroutine.
type chanTracer struct {
	ch    chan trace.Event
	level trace.Level
}

func newChanTracer(level trace.Level) *chanTracer {
	return &chanTracer{ch: make(chan trace.Event, 256), level: level}
}

func (t *chanTracer) Emit(ev trace.Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	select {
	case t.ch <- ev:
	default:
	}
}
func (t *chanTracer) Flush() error  { return nil }
func (t *chanTracer) Close() error  { close(t.ch); return nil }
func (t *chanTracer) Level() trace.Level { return t.level }
func (t *chanTracer) Enabled() bool { return t.level != trace.LevelOff }

var inspectCmd = &cobra.Command{
	Use:   "inspect <example>",
	Short: "Run an example program with a live heap/task inspector",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prog := exampleProgram(args[0])
		if prog == nil {
			return fmt.Errorf("unknown example %q (try: fib, concurrency)", args[0])
		}

		tracer := newChanTracer(trace.LevelDebug)
		cfg := runtime.DefaultConfig()
		interp := runtime.New(cfg, tracer)

		done := make(chan struct{})
		go func() {
			defer close(done)
			defer tracer.Close()
			interp.Run(prog)
		}()

		model := ui.NewInspectorModel(fmt.Sprintf("hemlock inspect %s", args[0]), tracer.ch)
		program := tea.NewProgram(model)
		_, err := program.Run()
		<-done
		return err
	},
}
