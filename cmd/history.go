package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathquiz/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse recorded runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return withRepo(cmd, func(ctx context.Context, repo store.EventRepo) error {
			runs, err := repo.QueryRuns(ctx, store.QueryOpts{Limit: limit})
			if err != nil {
				return fmt.Errorf("query runs: %w", err)
			}
			return printRuns(ctx, cmd.OutOrStdout(), repo, runs)
		})
	},
}

var historyViewCmd = &cobra.Command{
	Use:   "view <run-id>",
	Short: "Show every attempt of one run (an id prefix is enough)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(cmd, func(ctx context.Context, repo store.EventRepo) error {
			runID, err := repo.ResolveRunID(ctx, args[0])
			if err != nil {
				return err
			}
			attempts, err := repo.QueryAttempts(ctx, runID)
			if err != nil {
				return fmt.Errorf("query attempts: %w", err)
			}
			results, err := repo.QueryResults(ctx, runID)
			if err != nil {
				return fmt.Errorf("query results: %w", err)
			}
			printRunDetail(cmd.OutOrStdout(), runID, attempts, results)
			return nil
		})
	},
}

func init() {
	historyListCmd.Flags().Int("limit", 20, "Maximum number of runs to list (0 for all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyViewCmd)
}

// withRepo opens the configured store for the duration of fn.
func withRepo(cmd *cobra.Command, fn func(ctx context.Context, repo store.EventRepo) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, st.EventRepo())
}

func printRuns(ctx context.Context, w io.Writer, repo store.EventRepo, runs []store.RunRecord) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "%-8s  %-16s  %9s  %8s  %8s  %8s  %s\n",
		"Run", "Started", "Answered", "Attempts", "Accuracy", "Duration", "Status")
	fmt.Fprintln(w, strings.Repeat("─", 84))

	for _, r := range runs {
		stats, err := repo.AttemptStats(ctx, r.RunID)
		if err != nil {
			return fmt.Errorf("attempt stats for %s: %w", r.RunID, err)
		}
		results, err := repo.QueryResults(ctx, r.RunID)
		if err != nil {
			return fmt.Errorf("query results for %s: %w", r.RunID, err)
		}

		status := "unfinished"
		duration := "-"
		if r.Finished {
			duration = (time.Duration(r.DurationSecs * float64(time.Second))).Round(time.Second).String()
			switch {
			case r.ExportError != "":
				status = "export failed"
			case r.Completed == r.TotalQuestions:
				status = "complete"
			default:
				status = "quit"
			}
		}

		fmt.Fprintf(w, "%-8s  %-16s  %4d/%-4d  %8d  %7.0f%%  %8s  %s\n",
			shortRunID(r.RunID), r.StartedAt.Local().Format("2006-01-02 15:04"),
			len(results), r.TotalQuestions, stats.Attempts, stats.Accuracy()*100,
			duration, status)
	}

	fmt.Fprintf(w, "\n%d runs\n", len(runs))
	return nil
}

func printRunDetail(w io.Writer, runID string, attempts []store.AttemptRecord, results []store.ResultRecord) {
	fmt.Fprintf(w, "Run %s\n\n", runID)
	if len(attempts) == 0 {
		fmt.Fprintln(w, "No attempts recorded.")
		return
	}

	fmt.Fprintf(w, "%3s  %-8s  %-30s  %-30s  %s\n", "Q", "Mode", "Target Path", "Submitted", "Result")
	fmt.Fprintln(w, strings.Repeat("─", 84))
	for _, a := range attempts {
		mark := "wrong"
		if a.Correct {
			mark = "ok"
		}
		fmt.Fprintf(w, "%3d  %-8s  %-30s  %-30s  %s\n",
			a.Question, a.Mode, truncate(a.TargetPath, 30), truncate(a.SubmittedPath, 30), mark)
	}

	var secs float64
	for _, r := range results {
		secs += float64(r.ElapsedMs) / 1000
	}
	fmt.Fprintf(w, "\n%d attempts, %d questions answered, %.1fs total\n", len(attempts), len(results), secs)
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}
