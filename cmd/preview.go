package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathquiz/internal/export"
	"github.com/abhisek/pathquiz/internal/jsontree"
	"github.com/abhisek/pathquiz/internal/quiz"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print a generated tree, or run a line-mode quiz (no database)",
	Long: `Generate a tree and print it with its target value.

With --interactive, play a quiz on stdin instead: each question is printed
and a dotted path is read per line until the right one is entered. Results
are exported when the last question is answered. Nothing is recorded in the
database.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("mode", "indented", "Rendering: indented or compact")
	previewCmd.Flags().Uint64("seed", 0, "Random seed; 0 picks one")
	previewCmd.Flags().Int("depth", 0, "Maximum tree depth (default from config)")
	previewCmd.Flags().Bool("answer", false, "Also print the target path")
	previewCmd.Flags().Bool("interactive", false, "Play a line-mode quiz on stdin")
	previewCmd.Flags().Int("questions", 0, "Questions in interactive mode (default from config)")
	previewCmd.Flags().String("out", "", "Results workbook path in interactive mode (default from config)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	qc := cfg.Quiz()
	if d, _ := cmd.Flags().GetInt("depth"); d != 0 {
		qc.MaxDepth = d
	}
	seed, _ := cmd.Flags().GetUint64("seed")
	if seed == 0 {
		seed = quiz.RandomSeed()
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		if n, _ := cmd.Flags().GetInt("questions"); n != 0 {
			qc.TotalQuestions = n
		}
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = cfg.ExportPath
		}
		return playLines(cmd.InOrStdin(), cmd.OutOrStdout(), qc, seed, out)
	}

	modeVal, _ := cmd.Flags().GetString("mode")
	mode, err := jsontree.ParseMode(modeVal)
	if err != nil {
		return err
	}
	showAnswer, _ := cmd.Flags().GetBool("answer")
	if err := qc.Validate(); err != nil {
		return err
	}

	gen, err := jsontree.NewGenerator(qc.Vocabulary, qc.MaxDepth, quiz.NewRand(seed))
	if err != nil {
		return fmt.Errorf("create generator: %w", err)
	}
	var tree *jsontree.Tree
	for range qc.MaxRegenerate + 1 {
		if tree = gen.Generate(); tree.HasTarget {
			break
		}
	}
	if !tree.HasTarget {
		return quiz.ErrNoTarget
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Seed: %d  Mode: %s\n\n", seed, mode)
	fmt.Fprintln(w, jsontree.Render(tree, mode))
	fmt.Fprintf(w, "\nTarget Attribute: %s\n", tree.TargetValue)
	if showAnswer {
		fmt.Fprintf(w, "Path: %s\n", tree.TargetPath)
	}
	return nil
}

// playLines runs a whole quiz over a line reader.
func playLines(in io.Reader, w io.Writer, cfg quiz.Config, seed uint64, out string) error {
	q, err := quiz.New(cfg, quiz.NewRand(seed))
	if err != nil {
		return err
	}
	scanner := bufio.NewScanner(in)

	fmt.Fprintf(w, "Seed: %d  Questions: %d\n\n", seed, q.Total())
	for {
		question, err := q.Next()
		if errors.Is(err, quiz.ErrComplete) {
			break
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "── Question %d/%d (%s) ──\n", question.Index, q.Total(), question.Mode)
		fmt.Fprintln(w, question.Rendered)
		fmt.Fprintf(w, "\nTarget Attribute: %s\n", question.Tree.TargetValue)

		for {
			fmt.Fprint(w, "Path: ")
			if !scanner.Scan() {
				fmt.Fprintln(w, "\n(input closed)")
				return scanner.Err()
			}
			path := strings.TrimSpace(scanner.Text())
			sub, err := q.Submit(path)
			if err != nil {
				return err
			}
			if sub.Correct {
				fmt.Fprintln(w, quiz.CorrectMessage)
				break
			}
			fmt.Fprintln(w, quiz.IncorrectMessage)
		}
		fmt.Fprintln(w)
	}

	sum := quiz.BuildSummary(q.Results())
	fmt.Fprintf(w, "Experiment Complete: %d questions, %d attempts, %.0f%% accuracy\n",
		sum.Questions, sum.TotalAttempts, sum.Accuracy*100)
	if err := export.WriteXLSX(out, q.Results()); err != nil {
		return fmt.Errorf("export results: %w", err)
	}
	fmt.Fprintf(w, "Data Saved: results written to %s\n", out)
	return nil
}
