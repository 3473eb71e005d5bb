package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/cmd/portfolio/ui"
	"github.com/Zachkp/portfolio/internal/radar"
	"github.com/Zachkp/portfolio/internal/session"
)

func radarCmd(src *contentSource) *cobra.Command {
	var (
		progress float64
		out      string
		size     float64
	)

	cmd := &cobra.Command{
		Use:   "radar",
		Short: "Render the skills radar chart as SVG and print the category breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			if progress < 0 || progress > 1 {
				return fmt.Errorf("--progress must be between 0 and 1, got %v", progress)
			}
			p, err := src.fromConfig()
			if err != nil {
				return err
			}

			svg := radar.NewSVG(size, size)
			radar.Draw(svg, p.Skills, progress, radar.DefaultOptions())

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				if _, err := svg.WriteTo(f); err != nil {
					f.Close()
					return fmt.Errorf("write %s: %w", out, err)
				}
				if err := f.Close(); err != nil {
					return err
				}
				fmt.Fprintln(w, ui.SuccessMsg("Wrote %s", out))
			}

			rows := make([][]string, 0, len(p.Skills))
			for _, c := range radar.CategoryAverages(p.Skills) {
				rows = append(rows, []string{
					c.Category,
					strconv.Itoa(c.Count),
					strconv.Itoa(c.Percent()) + "%",
					ui.Bar(float64(c.Percent())*progress, 20),
				})
			}
			fmt.Fprintln(w, ui.Table([]string{"Category", "Skills", "Average", ""}, rows))

			top := radar.TopN(p.Skills, 5)
			for i, s := range top {
				fmt.Fprintf(w, "%s %s %s\n", ui.Muted(strconv.Itoa(i+1)+"."), ui.Bold(s.Label), ui.Muted(strconv.FormatFloat(s.Value, 'f', -1, 64)))
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&progress, "progress", 1, "Animation progress to render, 0 to 1")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the SVG to this file")
	cmd.Flags().Float64Var(&size, "size", session.ChartWidth, "Chart width and height in pixels")
	return cmd
}
