package publish

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	LatestKey    = "seo:competitors:latest"
	runKeyPrefix = "seo:competitors:run:"
	reportTTL    = 7 * 24 * time.Hour
)

// ErrNoReport is returned when nothing was published yet.
var ErrNoReport = errors.New("no competitor report published")

// ReportStore publishes rendered reports to Redis for dashboards.
type ReportStore struct {
	Client *redis.Client
}

func RunKey(runID string) string {
	return runKeyPrefix + runID
}

// Publish stores payload as the latest report and under its run key.
func (s *ReportStore) Publish(ctx context.Context, runID string, payload []byte) error {
	_, err := s.Client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, LatestKey, payload, reportTTL)
		p.Set(ctx, RunKey(runID), payload, reportTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to publish report %s: %w", runID, err)
	}
	return nil
}

func (s *ReportStore) Latest(ctx context.Context) ([]byte, error) {
	b, err := s.Client.Get(ctx, LatestKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoReport
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read latest report: %w", err)
	}
	return b, nil
}
