package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/schemes"
	"github.com/san-kum/heatsim/internal/sim"
	"github.com/san-kum/heatsim/internal/storage"
	"github.com/san-kum/heatsim/internal/viz"
)

func newRunCmd() *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and write its curves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			return runHeat(cmd, cfg)
		},
	}
	addRunFlags(cmd, f)
	return cmd
}

func runHeat(cmd *cobra.Command, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
	defer stop()

	s, err := sim.New(cfg, logger)
	if err != nil {
		return err
	}

	var writer *sim.CurveWriter
	if !cfg.NoOutput {
		curves := storage.NewCurves(cfg.OutDir, cfg.ProbName)
		if err := curves.Init(); err != nil {
			logger.Warn("cannot create output directory", zap.String("dir", cfg.OutDir), zap.Error(err))
		}
		writer = sim.NewCurveWriter(curves, cfg.Dt, cfg.SaveEvery, logger)
		s.AddObserver(writer)
	}

	res, err := s.Run(ctx)
	if res == nil {
		return err
	}

	files := 0
	if writer != nil {
		files = len(writer.Written())
		meta := sim.Metadata(cfg, s, res, writer.Written())
		if _, serr := storage.New(cfg.OutDir).Save(meta); serr != nil {
			logger.Warn("cannot save run metadata", zap.Error(serr))
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), viz.RenderSummary(cfg, res, files))
	return err
}

func newCompareCmd() *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "compare [algorithm...]",
		Short: "run several algorithms on the same configuration",
		Long:  "Runs each algorithm (all of them by default) without file output and reports how far each final profile is from the exact or steady-state solution.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			algs := args
			if len(algs) == 0 {
				algs = schemes.Names()
			}

			ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
			defer stop()

			rows, err := sim.Compare(ctx, cfg, algs, logger)
			if len(rows) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), viz.RenderComparison(rows))
			}
			return err
		},
	}
	addRunFlags(cmd, f)
	return cmd
}

func newLiveCmd() *cobra.Command {
	f := &runFlags{}
	var speed int
	cmd := &cobra.Command{
		Use:   "live",
		Short: "step a simulation live in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			// The live view owns the terminal; progress lines would corrupt it.
			cfg.OutEvery = 0

			factory := func() (*sim.Simulator, error) { return sim.New(cfg, nil) }
			m, err := viz.NewModel(cmdContext(cmd), factory, cfg.ProbName, speed)
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(m).Run()
			if err != nil {
				return err
			}
			if fm, ok := final.(viz.Model); ok {
				if fm.Err() != nil && !errors.Is(fm.Err(), context.Canceled) {
					return fm.Err()
				}
				if res := fm.Result(); res != nil {
					fmt.Fprintln(cmd.OutOrStdout(), viz.RenderSummary(cfg, res, 0))
				}
			}
			return nil
		},
	}
	addRunFlags(cmd, f)
	cmd.Flags().IntVar(&speed, "speed", 1, "steps per frame")
	return cmd
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
