package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/countryvote/api/internal/core/domain"
	"github.com/countryvote/api/internal/core/ports"
)

type statsService struct {
	repo      ports.VoteRepository
	countries ports.CountryService
}

func NewStatsService(repo ports.VoteRepository, countries ports.CountryService) ports.StatsService {
	return &statsService{
		repo:      repo,
		countries: countries,
	}
}

func (s *statsService) TotalVotes(ctx context.Context) (int64, error) {
	return s.repo.CountAll(ctx)
}

func (s *statsService) UniqueCountries(ctx context.Context) (int64, error) {
	return s.repo.CountDistinctCountries(ctx)
}

// ByRegion buckets votes by subregion, falling back to region when the
// directory reports none. Votes whose country code the directory cannot
// resolve are excluded, so the sum over regions can be below TotalVotes.
func (s *statsService) ByRegion(ctx context.Context) ([]domain.RegionVotes, error) {
	votes, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}

	counts := make(map[string]int64)
	for _, vote := range votes {
		country, ok := s.countries.GetByCode(ctx, vote.CountryCode)
		if !ok {
			continue
		}
		region := country.Subregion
		if region == "" || region == domain.UnknownField {
			region = country.Region
		}
		counts[region]++
	}

	regions := make([]domain.RegionVotes, 0, len(counts))
	for region, votes := range counts {
		regions = append(regions, domain.RegionVotes{Region: region, Votes: votes})
	}
	sort.Slice(regions, func(i, j int) bool {
		if regions[i].Votes != regions[j].Votes {
			return regions[i].Votes > regions[j].Votes
		}
		return regions[i].Region < regions[j].Region
	})
	return regions, nil
}

// Timeline groups votes by the UTC calendar date of creation, ascending.
func (s *statsService) Timeline(ctx context.Context) ([]domain.TimelineEntry, error) {
	votes, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}

	counts := make(map[string]int64)
	for _, vote := range votes {
		if vote.CreatedAt.IsZero() {
			continue
		}
		counts[vote.CreatedAt.UTC().Format("2006-01-02")]++
	}

	timeline := make([]domain.TimelineEntry, 0, len(counts))
	for date, votes := range counts {
		timeline = append(timeline, domain.TimelineEntry{Date: date, Votes: votes})
	}
	sort.Slice(timeline, func(i, j int) bool {
		return timeline[i].Date < timeline[j].Date
	})
	return timeline, nil
}

// DetailedStats composes the four views independently; each one re-reads
// the vote store.
func (s *statsService) DetailedStats(ctx context.Context) (*domain.DetailedStats, error) {
	total, err := s.TotalVotes(ctx)
	if err != nil {
		return nil, err
	}

	unique, err := s.UniqueCountries(ctx)
	if err != nil {
		return nil, err
	}

	regions, err := s.ByRegion(ctx)
	if err != nil {
		return nil, err
	}

	timeline, err := s.Timeline(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.DetailedStats{
		TotalVotes:      total,
		UniqueCountries: unique,
		VotesByRegion:   regions,
		Timeline:        timeline,
	}, nil
}
