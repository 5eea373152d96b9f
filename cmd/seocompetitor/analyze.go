package main

import (
	"github.com/redis/go-redis/v9"
	openai "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	"seocompetitor/internal/analysis"
	"seocompetitor/internal/config"
	"seocompetitor/internal/crawler"
	"seocompetitor/internal/db"
	"seocompetitor/internal/insights"
	"seocompetitor/internal/logger"
	"seocompetitor/internal/observability"
	"seocompetitor/internal/publish"
	"seocompetitor/internal/repository"
)

func newAnalyzeCmd(cfg *config.Config) *cobra.Command {
	var withInsights bool

	cmd := &cobra.Command{
		Use:   "analyze [output-path]",
		Short: "Fetch every competitor once and write the JSON report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg.OutputPath = args[0]
			}
			return runAnalyze(cmd, cfg, withInsights)
		},
	}
	cmd.Flags().StringVarP(&cfg.OutputPath, "output", "o", cfg.OutputPath, "report file path")
	cmd.Flags().IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "max parallel fetches (0 = all at once)")
	cmd.Flags().BoolVar(&withInsights, "insights", false, "add an AI summary per competitor (needs OPENAI_API_KEY)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, cfg *config.Config, withInsights bool) error {
	ctx := cmd.Context()

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	metrics := observability.NewMetrics()
	analyzer := crawler.NewAnalyzer(
		crawler.NewFetcher(cfg.RequestTimeout, cfg.UserAgent),
		cfg.Keywords,
		log,
		crawler.WithConcurrency(cfg.Concurrency),
		crawler.WithRecorder(metrics),
	)

	job := &analysis.Job{
		Analyzer:   analyzer,
		OutputPath: cfg.OutputPath,
		Log:        log,
	}

	if cfg.PushgatewayURL != "" {
		job.Metrics = metrics
		job.PushURL = cfg.PushgatewayURL
	}

	if withInsights {
		if cfg.OpenAIKey == "" {
			log.Warn("insights requested without OPENAI_API_KEY, skipping")
		} else {
			job.Annotator = insights.NewSummarizer(openai.NewClient(cfg.OpenAIKey), cfg.OpenAIModel, log)
		}
	}

	if cfg.DatabaseURL != "" {
		conn, err := db.New(cfg.DatabaseURL)
		if err != nil {
			log.Error("snapshot store disabled", logger.Error(err))
		} else {
			defer conn.Close()
			repo := &repository.SnapshotRepository{DB: conn}
			if err := repo.EnsureSchema(ctx); err != nil {
				log.Error("snapshot store disabled", logger.Error(err))
			} else {
				job.Snapshots = repo
			}
		}
	}

	if cfg.RedisURL != "" {
		client := redis.NewClient(redisOptions(cfg.RedisURL))
		defer client.Close()
		job.Publisher = &publish.ReportStore{Client: client}
	}

	_, err = job.Run(ctx, cfg.Competitors)
	return err
}

// redisOptions accepts a redis:// URL or a bare host:port address.
func redisOptions(raw string) *redis.Options {
	if opts, err := redis.ParseURL(raw); err == nil {
		return opts
	}
	return &redis.Options{Addr: raw}
}
