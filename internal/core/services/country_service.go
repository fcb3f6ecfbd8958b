package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/countryvote/api/internal/core/domain"
	"github.com/countryvote/api/internal/core/ports"
)

const (
	countriesCacheKey   = "countries:all"
	countryKeyPrefix    = "countries:code:"
	countryDirectoryTTL = time.Hour
)

type countryService struct {
	directory ports.CountryDirectory
	cache     ports.Cache
}

func NewCountryService(directory ports.CountryDirectory, cache ports.Cache) ports.CountryService {
	return &countryService{
		directory: directory,
		cache:     cache,
	}
}

func (s *countryService) GetAll(ctx context.Context) ([]domain.CountryDetail, error) {
	if cached, ok := s.cache.Get(countriesCacheKey); ok {
		return cached.([]domain.CountryDetail), nil
	}

	countries, err := s.directory.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}

	s.cache.Set(countriesCacheKey, countries, countryDirectoryTTL)
	return countries, nil
}

// GetByCode absorbs every fetch failure, including "no such country".
// A false result means the caller should skip the entry, not retry.
func (s *countryService) GetByCode(ctx context.Context, code string) (domain.CountryDetail, bool) {
	key := countryKeyPrefix + code
	if cached, ok := s.cache.Get(key); ok {
		return cached.(domain.CountryDetail), true
	}

	country, err := s.directory.FetchByCode(ctx, code)
	if err != nil {
		return domain.CountryDetail{}, false
	}

	s.cache.Set(key, *country, countryDirectoryTTL)
	return *country, true
}

// Search filters the full listing by case-insensitive substring match on
// the common name. Callers enforce the minimum query length.
func (s *countryService) Search(ctx context.Context, query string) ([]domain.CountryDetail, error) {
	countries, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	results := make([]domain.CountryDetail, 0)
	for _, country := range countries {
		if strings.Contains(strings.ToLower(country.Name), needle) {
			results = append(results, country)
		}
	}
	return results, nil
}
