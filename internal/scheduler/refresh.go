package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	datasetRefreshJobName = "dataset_refresh"
	datasetRefreshTimeout = 5 * time.Minute
)

// Reloader re-reads the dataset; dataset.Holder satisfies it.
type Reloader interface {
	Reload(ctx context.Context) error
}

// RegisterDatasetRefresh schedules periodic dataset reloads. An empty
// cronExpr disables the job.
func RegisterDatasetRefresh(s *Service, reloader Reloader, cronExpr string) error {
	cronExpr = strings.TrimSpace(cronExpr)
	if cronExpr == "" {
		log.Info().Msg("Dataset refresh disabled")
		return nil
	}
	if reloader == nil {
		return fmt.Errorf("dataset refresh requires a reloader")
	}

	jobLogger := log.With().
		Str("component", "dataset_refresh_job").
		Str("job_name", datasetRefreshJobName).
		Logger()

	_, err := s.AddJob(datasetRefreshJobName, cronExpr, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), datasetRefreshTimeout)
		defer cancel()
		return reloader.Reload(jobLogger.WithContext(ctx))
	})
	if err != nil {
		return fmt.Errorf("register dataset refresh: %w", err)
	}
	return nil
}
