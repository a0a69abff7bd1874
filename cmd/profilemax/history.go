package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"profilemax/internal/domain"
)

func newHistoryCommand(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show saved analyses and progress stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.history()
			if err != nil {
				return err
			}
			entries, err := repo.List(cmd.Context())
			if err != nil {
				return err
			}
			stats := domain.ComputeHistoryStats(entries)

			if asJSON {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Entries []domain.HistoryEntry `json:"entries"`
					Stats   domain.HistoryStats   `json:"stats"`
				}{Entries: entries, Stats: stats})
			}
			renderHistory(a.out, entries, stats)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print history and stats as JSON")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the local history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.history()
			if err != nil {
				return err
			}
			if err := repo.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, green("History cleared."))
			return nil
		},
	})
	return cmd
}
