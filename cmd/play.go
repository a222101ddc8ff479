package cmd

import (
	"github.com/spf13/cobra"

	quizscreen "github.com/abhisek/pathquiz/internal/screens/quiz"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz run directly",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		run := quizscreen.Options{
			Config:     cfg.Quiz(),
			ExportPath: cfg.ExportPath,
		}
		if cmd.Flags().Changed("questions") {
			run.Config.TotalQuestions, _ = cmd.Flags().GetInt("questions")
		}
		if cmd.Flags().Changed("depth") {
			run.Config.MaxDepth, _ = cmd.Flags().GetInt("depth")
		}
		if out, _ := cmd.Flags().GetString("out"); out != "" {
			run.ExportPath = out
		}
		run.Seed, _ = cmd.Flags().GetUint64("seed")

		return launch(cmd, cfg, run, true)
	},
}

func init() {
	playCmd.Flags().Int("questions", 0, "Number of questions (default from config, 30)")
	playCmd.Flags().Int("depth", 0, "Maximum tree depth (default from config, 2)")
	playCmd.Flags().Uint64("seed", 0, "Random seed; 0 picks one")
	playCmd.Flags().String("out", "", "Results workbook path (default from config)")
}
