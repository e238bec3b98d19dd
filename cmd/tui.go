package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dinnerconcierge/internal/codec"
	"dinnerconcierge/internal/extract"
	"dinnerconcierge/internal/tui"
)

var importPayload string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive ordering TUI (same as default)",
	Long: `Start the Terminal User Interface for taking everyone's order.
Pick a person, choose their courses, review the summary and copy it
for the restaurant. A share link passed with --import is merged into
the stored orders once at startup.

Note: This is the same as running the program without any commands.`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&importPayload, "import", "i", "", "Share link or payload to import at startup")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// the alternate screen owns the terminal, so logs go to a file
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	if err := cfg.ConfigureLogger(log.StandardLogger(), logFile, true); err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	ctrl, _, err := sess.controller(context.Background(), codec.PayloadFromInput(importPayload))
	if err != nil {
		return err
	}

	model := tui.NewModel(tui.Options{
		Controller: ctrl,
		Extractor:  extract.NewClient(cfg.ExtractConfig(), log.StandardLogger()),
		ShareBase:  cfg.ShareBaseURL,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
