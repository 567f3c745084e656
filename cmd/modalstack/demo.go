package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/modalstack/internal/adapter/output"
	"github.com/jmylchreest/modalstack/internal/display"
	"github.com/jmylchreest/modalstack/internal/model"
	"github.com/jmylchreest/modalstack/internal/scheduler"
)

var demoOpts struct {
	format string
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted dialog scenario and print every change",
	Long: `Run a scripted scenario against an in-process dialog stack and print a
snapshot of the stack after every change notification.

The scenario opens a dimmed dialog, opens a blurred one on top (its backdrop
is downgraded because the first dialog already owns it), resizes and
recolors the current dialog, swaps its content, and closes everything.

Examples:
  modalstack demo
  modalstack demo --format json | jq .`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().StringVarP(&demoOpts.format, "format", "f", string(output.FormatPlain),
		"Output format (plain, json, yaml, ids, dmenu)")
}

func runDemo(cmd *cobra.Command, args []string) error {
	out, err := newSnapshotWriter(cmd.OutOrStdout(), demoOpts.format)
	if err != nil {
		return err
	}

	manager := display.NewManager(getConfig(), newRegistry(), logger)
	defer manager.Stop()

	changes, cancel := manager.Subscribe()
	defer cancel()

	ctx, stop := context.WithCancel(cmd.Context())
	done := make(chan struct{})
	go func() {
		defer close(done)
		runScenario(ctx, manager, getConfig().Delays())
	}()
	// The scenario must be finished before the manager stops.
	defer func() {
		stop()
		<-done
	}()

	for {
		select {
		case <-changes:
			if err := out.Write(manager.Dialogs()); err != nil {
				return err
			}
		case <-done:
			return out.Write(manager.Dialogs())
		}
	}
}

// runScenario drives the manager through the demo steps, waiting long enough
// after each step for its transition to fire.
func runScenario(ctx context.Context, m *display.Manager, delays scheduler.Delays) {
	settle := func(t scheduler.Transition) bool {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(delays.For(t) + 20*time.Millisecond):
			return true
		}
	}

	steps := []struct {
		name  string
		wait  scheduler.Transition
		apply func()
	}{
		{"open dimmed", scheduler.TransitionShow, func() {
			m.OpenNamed("Welcome", map[string]any{"user": "demo"}, nil)
		}},
		{"open blurred", scheduler.TransitionShow, func() {
			opts := m.DefaultOptions()
			opts.Content = "demo.Confirm"
			opts.BackgroundEffect = model.EffectBlur
			m.Open(opts)
		}},
		{"resize current", scheduler.TransitionResizeSettle, func() {
			m.Resize(display.TargetCurrent, model.SizeLarge, "")
		}},
		{"resize current to custom", scheduler.TransitionResizeSettle, func() {
			m.ResizeCustom(display.TargetCurrent, "width: 640px; max-width: 90vw")
		}},
		{"recolor current", scheduler.TransitionShow, func() {
			m.Recolor(display.TargetCurrent, model.ColorSuccess, "")
		}},
		{"swap content", scheduler.TransitionShow, func() {
			m.UpdateContentByName(display.TargetCurrent, "settings", map[string]any{"tab": "general"})
		}},
		{"close all", scheduler.TransitionRemove, func() {
			m.CloseAll()
		}},
	}

	for _, step := range steps {
		logger.Info("demo step", "step", step.name)
		step.apply()
		if !settle(step.wait) {
			return
		}
	}
}
