package main

import (
	"github.com/spf13/cobra"

	"seocompetitor/internal/config"
	"seocompetitor/internal/logger"
)

func newRootCmd() *cobra.Command {
	cfg := config.Load()

	analyze := newAnalyzeCmd(cfg)
	root := &cobra.Command{
		Use:           "seocompetitor [output-path]",
		Short:         "Snapshot competitor titles, descriptions and keyword hits",
		Args:          analyze.Args,
		RunE:          analyze.RunE,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Flags().AddFlagSet(analyze.Flags())
	root.AddCommand(analyze, newHistoryCmd(cfg))

	return root
}

func newLogger(cfg *config.Config) (logger.Logger, error) {
	return logger.New(cfg.LogLevel)
}
