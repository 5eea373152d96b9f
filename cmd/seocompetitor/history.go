package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"seocompetitor/internal/config"
	"seocompetitor/internal/db"
	"seocompetitor/internal/model"
	"seocompetitor/internal/repository"
)

func newHistoryCmd(cfg *config.Config) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history <url>",
		Short: "List stored snapshots of one competitor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 {
				return fmt.Errorf("--limit must be at least 1, got %d", limit)
			}
			if cfg.DatabaseURL == "" {
				return errors.New("DATABASE_URL is not set")
			}

			pool, err := db.NewPool(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			repo := &repository.HistoryRepository{DB: pool}
			snapshots, err := repo.ListByURL(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}

			for _, s := range snapshots {
				fmt.Fprintln(cmd.OutOrStdout(), formatSnapshot(s))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of snapshots to show")

	return cmd
}

func formatSnapshot(s model.Snapshot) string {
	when := s.CreatedAt.UTC().Format(model.AnalyzedAtLayout)
	if s.Error != "" {
		return fmt.Sprintf("%s  run=%s  error=%q", when, s.RunID, s.Error)
	}
	return fmt.Sprintf("%s  run=%s  title=%q  keywords=[%s]", when, s.RunID, s.Title, strings.Join(s.Keywords, ","))
}
