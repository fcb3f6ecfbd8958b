package ports

import (
	"context"

	"github.com/countryvote/api/internal/core/domain"
)

type RankingService interface {
	// TopCountries returns at most limit countries ordered by descending
	// vote count, each enriched with directory metadata.
	TopCountries(ctx context.Context, limit int) ([]domain.CountryDetail, error)

	// Invalidate evicts the cached ranking with no replacement computed.
	Invalidate()
}
