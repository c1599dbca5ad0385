package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/export"
	"github.com/san-kum/heatsim/internal/storage"
	"github.com/san-kum/heatsim/internal/viz"
)

func newPlotCmd() *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "plot [curve...]",
		Short: "plot curve files in the terminal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				c, err := storage.ReadCurve(path)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d points)\n\n", path, c.Len())
				fmt.Fprintln(cmd.OutOrStdout(), viz.PlotCurve(c, width, height))
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 80, "plot width")
	cmd.Flags().IntVar(&height, "height", 10, "plot height")
	return cmd
}

func newExportCmd() *cobra.Command {
	var pngPath, svgPath, title string
	var logY bool
	cmd := &cobra.Command{
		Use:   "export [curve...]",
		Short: "render curve files to PNG or SVG",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pngPath == "" && svgPath == "" {
				return fmt.Errorf("export: set --png or --svg")
			}

			curves := make([]*storage.Curve, 0, len(args))
			for _, path := range args {
				c, err := storage.ReadCurve(path)
				if err != nil {
					return err
				}
				curves = append(curves, c)
			}

			opts := export.Options{Title: title, LogY: logY}
			for _, out := range []string{pngPath, svgPath} {
				if out == "" {
					continue
				}
				if err := export.Save(out, curves, opts); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pngPath, "png", "", "write a PNG to this path")
	cmd.Flags().StringVar(&svgPath, "svg", "", "write an SVG to this path")
	cmd.Flags().StringVar(&title, "title", "", "plot title")
	cmd.Flags().BoolVar(&logY, "log-y", false, "logarithmic y axis (for change and error histories)")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [dir]",
		Short: "list saved runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			runs, err := storage.New(dir).List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no runs found")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tALG\tIC\tN\tSTEPS\tSTOP\tCHANGE\tTIME")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%.3e\t%s\n",
					run.ID,
					run.Config.Algorithm,
					run.Config.IC,
					run.N,
					run.Steps,
					run.StopReason,
					run.FinalChange,
					run.Timestamp.Format("2006-01-02 15:04:05"),
				)
			}
			return w.Flush()
		},
	}
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tALG\tIC\tDX\tDT\tMAXT")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\t%g\n", name, p.Algorithm, p.IC, p.Dx, p.Dt, p.MaxT)
			}
			return w.Flush()
		},
	}
}
