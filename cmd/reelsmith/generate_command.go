package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reelsmith/internal/pipeline"
)

func newGenerateCommand(configFlag *string) *cobra.Command {
	var modeFlag string

	cmd := &cobra.Command{
		Use:   "generate <topic>",
		Short: "Run the pipeline once for a topic and print the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := buildComponents(*configFlag, strings.TrimSpace(modeFlag))
			if err != nil {
				return err
			}

			topic := strings.Join(args, " ")
			collector := &pipeline.Collector{}
			result, err := components.orch.Run(cmd.Context(), topic, collector)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderStageTable(components.orch.Mode(), collector))

			if result.Outcome != nil {
				if result.Outcome.Completed() {
					fmt.Fprintf(out, "Video saved as %s (served at %s)\n", result.Filename, result.Outcome.Location)
				} else {
					fmt.Fprintf(out, "Render failed: %s\n", result.Outcome.ErrorDetail)
					if result.Outcome.SourceURL != "" {
						fmt.Fprintf(out, "Provider source URL: %s\n", result.Outcome.SourceURL)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "Override pipeline mode (brief or render)")
	return cmd
}

func renderStageTable(mode pipeline.Mode, collector *pipeline.Collector) string {
	rows := make([][3]string, 0, 4)
	for _, stg := range pipeline.Stages(mode) {
		content := "(not reached)"
		if event, ok := collector.StageEvent(stg.ID); ok {
			content = event.Content
		}
		rows = append(rows, [3]string{string(stg.ID), stg.Name, content})
	}
	return stageTable(rows)
}
