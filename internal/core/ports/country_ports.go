package ports

import (
	"context"

	"github.com/countryvote/api/internal/core/domain"
)

// CountryDirectory is the outbound client for the external country API.
// FetchByCode returns domain.ErrCountryNotFound when the directory reports
// zero matches for the code.
type CountryDirectory interface {
	FetchAll(ctx context.Context) ([]domain.CountryDetail, error)
	FetchByCode(ctx context.Context, code string) (*domain.CountryDetail, error)
}

// CountryService fronts the directory with a read-through TTL cache.
//
// GetByCode absorbs every fetch failure: the boolean is the only signal,
// and false means "unresolved, skip this entry" rather than "retry".
type CountryService interface {
	GetAll(ctx context.Context) ([]domain.CountryDetail, error)
	GetByCode(ctx context.Context, code string) (domain.CountryDetail, bool)
	Search(ctx context.Context, query string) ([]domain.CountryDetail, error)
}
