package services

import (
	"context"
	"fmt"
	"time"

	"github.com/countryvote/api/internal/core/domain"
	"github.com/countryvote/api/internal/core/ports"
)

const (
	rankingCacheKey = "ranking:top"
	rankingTTL      = 5 * time.Minute

	// Over-fetch factor applied to the aggregation so that country codes
	// the directory cannot resolve do not leave the result short.
	rankingOverFetch = 2
)

type rankingService struct {
	votes     ports.VoteRepository
	countries ports.CountryService
	cache     ports.Cache
}

func NewRankingService(votes ports.VoteRepository, countries ports.CountryService, cache ports.Cache) ports.RankingService {
	return &rankingService{
		votes:     votes,
		countries: countries,
		cache:     cache,
	}
}

// TopCountries serves from the cached ranking when one exists. The cache
// key does not depend on limit: whatever the first miss computed is served
// to every caller until TTL expiry or invalidation, so a later call with a
// larger limit can receive fewer entries than the store could produce.
func (s *rankingService) TopCountries(ctx context.Context, limit int) ([]domain.CountryDetail, error) {
	if limit < 1 {
		return []domain.CountryDetail{}, nil
	}

	if cached, ok := s.cache.Get(rankingCacheKey); ok {
		ranking := cached.([]domain.CountryDetail)
		if len(ranking) > limit {
			return ranking[:limit], nil
		}
		return ranking, nil
	}

	counts, err := s.votes.CountByCountry(ctx, limit*rankingOverFetch)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate votes: %w", err)
	}

	ranking := make([]domain.CountryDetail, 0, limit)
	for _, count := range counts {
		if len(ranking) == limit {
			break
		}
		country, ok := s.countries.GetByCode(ctx, count.CountryCode)
		if !ok {
			// Unresolved codes are skipped without consuming a slot.
			continue
		}
		country.VoteCount = count.Votes
		ranking = append(ranking, country)
	}

	s.cache.Set(rankingCacheKey, ranking, rankingTTL)
	return ranking, nil
}

func (s *rankingService) Invalidate() {
	s.cache.Delete(rankingCacheKey)
}
