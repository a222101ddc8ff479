package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathquiz/internal/export"
	"github.com/abhisek/pathquiz/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export <run-id>",
	Short: "Write the results workbook for a recorded run",
	Long: `Rebuild the results workbook of a recorded run from the database.
Unfinished runs export the questions answered so far.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		return withRepo(cmd, func(ctx context.Context, repo store.EventRepo) error {
			runID, err := repo.ResolveRunID(ctx, args[0])
			if err != nil {
				return err
			}
			results, err := repo.QueryResults(ctx, runID)
			if err != nil {
				return fmt.Errorf("query results: %w", err)
			}
			if len(results) == 0 {
				return fmt.Errorf("run %s has no answered questions", shortRunID(runID))
			}

			if err := export.WriteRows(out, exportRows(results)); err != nil {
				return fmt.Errorf("export results: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Data Saved: %d rows written to %s\n", len(results), out)
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().String("out", export.DefaultFileName, "Workbook path")
}

func exportRows(results []store.ResultRecord) []export.Row {
	rows := make([]export.Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, export.Row{
			Question:    r.Question,
			CorrectPath: r.CorrectPath,
			UserPath:    r.UserPath,
			Attempts:    r.Attempts,
			Seconds:     float64(r.ElapsedMs) / 1000,
		})
	}
	return rows
}
