// Package analysis runs one competitor analysis end to end: fetch every
// competitor, write the JSON report and feed the optional sinks.
package analysis

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"seocompetitor/internal/logger"
	"seocompetitor/internal/model"
	"seocompetitor/internal/report"
)

type Analyzer interface {
	AnalyzeAll(ctx context.Context, urls []string) []model.CompetitorReport
}

type Annotator interface {
	Annotate(ctx context.Context, reports []model.CompetitorReport)
}

type SnapshotSaver interface {
	SaveRun(ctx context.Context, runID uuid.UUID, reports []model.CompetitorReport) error
}

type ReportPublisher interface {
	Publish(ctx context.Context, runID string, payload []byte) error
}

type MetricsPusher interface {
	Push(ctx context.Context, url string) error
}

// Job holds everything a run needs. Nil sinks are skipped.
type Job struct {
	Analyzer   Analyzer
	OutputPath string
	Log        logger.Logger

	Annotator Annotator
	Snapshots SnapshotSaver
	Publisher ReportPublisher
	Metrics   MetricsPusher
	PushURL   string
}

// Result describes a finished run.
type Result struct {
	RunID   uuid.UUID
	Reports []model.CompetitorReport
	Failed  int
}

// Run analyses urls and writes the report file. Only a failure to write the
// file is returned; sink failures are logged.
func (j *Job) Run(ctx context.Context, urls []string) (*Result, error) {
	runID := uuid.New()
	log := j.Log.With(logger.String("run_id", runID.String()))

	log.Info("analyzing competitors", logger.Int("count", len(urls)))
	reports := j.Analyzer.AnalyzeAll(ctx, urls)

	if j.Annotator != nil {
		j.Annotator.Annotate(ctx, reports)
	}

	if err := report.WriteJSON(j.OutputPath, reports); err != nil {
		return nil, fmt.Errorf("failed to save competitor analysis: %w", err)
	}
	log.Info("competitor analysis saved", logger.String("path", j.OutputPath))

	res := &Result{RunID: runID, Reports: reports}
	for _, r := range reports {
		if r.Failed() {
			res.Failed++
		}
	}
	log.Info("analyzed competitors", logger.Int("count", len(reports)), logger.Int("failed", res.Failed))

	j.feedSinks(ctx, log, res)
	return res, nil
}

func (j *Job) feedSinks(ctx context.Context, log logger.Logger, res *Result) {
	if j.Snapshots != nil {
		if err := j.Snapshots.SaveRun(ctx, res.RunID, res.Reports); err != nil {
			log.Error("snapshot store failed", logger.Error(err))
		}
	}

	if j.Publisher != nil {
		payload, err := report.Marshal(res.Reports)
		if err == nil {
			err = j.Publisher.Publish(ctx, res.RunID.String(), payload)
		}
		if err != nil {
			log.Error("report publish failed", logger.Error(err))
		}
	}

	if j.Metrics != nil && j.PushURL != "" {
		if err := j.Metrics.Push(ctx, j.PushURL); err != nil {
			log.Error("metrics push failed", logger.Error(err))
		}
	}
}
