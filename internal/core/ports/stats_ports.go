package ports

import (
	"context"

	"github.com/countryvote/api/internal/core/domain"
)

type StatsService interface {
	TotalVotes(ctx context.Context) (int64, error)
	UniqueCountries(ctx context.Context) (int64, error)
	ByRegion(ctx context.Context) ([]domain.RegionVotes, error)
	Timeline(ctx context.Context) ([]domain.TimelineEntry, error)
	DetailedStats(ctx context.Context) (*domain.DetailedStats, error)
}
