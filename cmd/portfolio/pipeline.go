package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/cmd/portfolio/ui"
	"github.com/Zachkp/portfolio/internal/pipeline"
)

func pipelineCmd(src *contentSource) *cobra.Command {
	var period time.Duration

	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Run the CI/CD pipeline simulation in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := src.fromConfig()
			if err != nil {
				return err
			}

			snaps := make(chan pipeline.Snapshot, len(p.Pipeline.Stages)+2)
			sim, err := pipeline.New(p.Pipeline.Stages,
				pipeline.WithPeriod(period),
				pipeline.WithObserver(func(s pipeline.Snapshot) { snaps <- s }),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.InfoMsg("Running %d stages, one every %s", len(sim.Stages()), sim.Period()))
			start := time.Now()
			sim.Start()

			for {
				select {
				case <-ctx.Done():
					sim.Stop()
					fmt.Fprintln(out, ui.WarnMsg("Pipeline cancelled at %s", stageTitle(sim.Snapshot())))
					return nil
				case s := <-snaps:
					fmt.Fprintln(out, renderStep(s))
					if s.Status == pipeline.StatusCompleted {
						fmt.Fprintln(out, ui.SuccessMsg("Pipeline completed in %s", time.Since(start).Round(time.Millisecond)))
						return nil
					}
				}
			}
		},
	}
	cmd.Flags().DurationVar(&period, "period", pipeline.DefaultPeriod, "Time spent on each stage")
	return cmd
}

func stageTitle(s pipeline.Snapshot) string {
	st, ok := s.Current()
	if !ok {
		return "idle"
	}
	return st.Title
}

func renderStep(s pipeline.Snapshot) string {
	var b strings.Builder
	for i, step := range s.Steps {
		if i > 0 {
			b.WriteString(ui.Muted(" → "))
		}
		switch step.Status {
		case pipeline.StepCompleted:
			b.WriteString(ui.Success(step.Stage.Title))
		case pipeline.StepRunning:
			b.WriteString(ui.Bold(ui.Accent(step.Stage.Title)))
		default:
			b.WriteString(ui.Muted(step.Stage.Title))
		}
	}
	if st, ok := s.Current(); ok && s.Active {
		b.WriteString("\n  " + ui.Muted(st.Details))
	}
	return b.String()
}
