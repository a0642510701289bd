package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/theirongolddev/finbuddy/internal/config"
	"github.com/theirongolddev/finbuddy/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive FinBuddy dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	firstRun := !config.Exists()

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	// The alt screen owns the terminal; logs go to a file instead.
	logFile := openTUILog()
	if logFile != nil {
		defer logFile.Close()
		rt.log.SetOutput(logFile)
	} else {
		rt.log.SetOutput(io.Discard)
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(rt.sess, tui.Options{
		LLMTimeout: rt.cfg.LLM.Timeout(),
		FirstRun:   firstRun,
	})
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func openTUILog() *os.File {
	dir := config.CacheDir()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(dir, "tui.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil
	}
	return f
}
