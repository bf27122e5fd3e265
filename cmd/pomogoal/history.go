package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the archived day records",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			history := s.History()
			if days > 0 && len(history) > days {
				history = history[len(history)-days:]
			}

			if len(history) == 0 {
				fmt.Println("No history yet.")
				return nil
			}

			fmt.Printf("%-12s %10s %10s %8s %8s\n", "Date", "Pomodoros", "Minutes", "Done", "Goals")
			for _, r := range history {
				fmt.Printf("%-12s %10d %10d %8d %8d\n",
					r.Date, r.TotalPomodoros, r.TotalMinutes, r.GoalsCompleted, r.GoalsTotal)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "limit to the most recent N days (0 = all)")
	return cmd
}
