package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ymachida/pomogoal/internal/logger"
	"github.com/ymachida/pomogoal/internal/notify"
	"github.com/ymachida/pomogoal/internal/store"
	"github.com/ymachida/pomogoal/internal/tui"
)

var (
	dbPath string
	debug  bool
)

func main() {
	defaultDB, err := store.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "pomogoal",
		Short: "Pomodoro timer with daily goals and task tracking",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init(logger.Config{
				Debug:     debug,
				ConfigDir: filepath.Dir(dbPath),
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			app := tui.NewApp(s, notify.Desktop{})
			p := tea.NewProgram(app, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "database path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log to stderr as well as the log file")

	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func openStore() (*store.Store, error) {
	s, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
