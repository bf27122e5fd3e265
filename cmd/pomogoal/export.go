package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ymachida/pomogoal/internal/export"
	"github.com/ymachida/pomogoal/internal/store"
)

func exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:       "export (csv|json)",
		Short:     "Export history and tasks to a file",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"csv", "json"},
		RunE: func(cmd *cobra.Command, args []string) error {
			format := args[0]

			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			path := out
			if path == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				dateStr := time.Now().Format(store.DateLayout)
				path = filepath.Join(home, fmt.Sprintf("pomogoal-export-%s.%s", dateStr, format))
			}

			switch format {
			case "csv":
				err = export.ToCSV(s.History(), path)
			case "json":
				err = export.ToJSON(s.History(), s.Tasks(), path)
			default:
				return fmt.Errorf("unknown format %q (want csv or json)", format)
			}
			if err != nil {
				return err
			}

			fmt.Printf("Exported to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output path (default ~/pomogoal-export-DATE.FORMAT)")
	return cmd
}
