package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathquiz/internal/app"
	"github.com/abhisek/pathquiz/internal/config"
	quizscreen "github.com/abhisek/pathquiz/internal/screens/quiz"
)

// runApp loads config, opens the store and logger, and launches the TUI.
// startQuiz skips the home menu.
func runApp(cmd *cobra.Command, startQuiz bool) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return launch(cmd, cfg, quizscreen.Options{
		Config:     cfg.Quiz(),
		ExportPath: cfg.ExportPath,
	}, startQuiz)
}

func launch(cmd *cobra.Command, cfg *config.Config, run quizscreen.Options, startQuiz bool) error {
	if err := run.Config.Validate(); err != nil {
		return fmt.Errorf("invalid quiz settings: %w", err)
	}

	log, err := openLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	st, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	log.Info("starting tui", "questions", run.Config.TotalQuestions, "max_depth", run.Config.MaxDepth, "export_path", run.ExportPath)
	return app.Run(app.Options{
		Quiz:      run,
		EventRepo: st.EventRepo(),
		Logger:    log,
		StartQuiz: startQuiz,
	})
}
