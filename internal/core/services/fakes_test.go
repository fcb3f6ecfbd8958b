package services

import (
	"context"
	"time"

	"github.com/countryvote/api/internal/core/domain"
)

type fakeVoteRepo struct {
	votes           []domain.Vote
	counts          []domain.CountryVoteCount
	saved           []*domain.Vote
	saveErr         error
	findErr         error
	countErr        error
	countByCountryN int
}

func (f *fakeVoteRepo) Save(ctx context.Context, vote *domain.Vote) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, vote)
	f.votes = append(f.votes, *vote)
	return nil
}

func (f *fakeVoteRepo) FindByEmail(ctx context.Context, email string) (*domain.Vote, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for i := range f.votes {
		if f.votes[i].Email == email {
			return &f.votes[i], nil
		}
	}
	return nil, nil
}

func (f *fakeVoteRepo) FindAll(ctx context.Context) ([]domain.Vote, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.votes, nil
}

func (f *fakeVoteRepo) CountAll(ctx context.Context) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return int64(len(f.votes)), nil
}

func (f *fakeVoteRepo) CountByCountry(ctx context.Context, limit int) ([]domain.CountryVoteCount, error) {
	if f.countErr != nil {
		return nil, f.countErr
	}
	f.countByCountryN++
	if len(f.counts) > limit {
		return f.counts[:limit], nil
	}
	return f.counts, nil
}

func (f *fakeVoteRepo) CountDistinctCountries(ctx context.Context) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	seen := make(map[string]struct{})
	for _, v := range f.votes {
		seen[v.CountryCode] = struct{}{}
	}
	return int64(len(seen)), nil
}

type fakeCountryService struct {
	byCode      map[string]domain.CountryDetail
	all         []domain.CountryDetail
	allErr      error
	lookupCalls int
}

func (f *fakeCountryService) GetAll(ctx context.Context) ([]domain.CountryDetail, error) {
	if f.allErr != nil {
		return nil, f.allErr
	}
	return f.all, nil
}

func (f *fakeCountryService) GetByCode(ctx context.Context, code string) (domain.CountryDetail, bool) {
	f.lookupCalls++
	country, ok := f.byCode[code]
	return country, ok
}

func (f *fakeCountryService) Search(ctx context.Context, query string) ([]domain.CountryDetail, error) {
	return nil, nil
}

type fakeRanking struct {
	invalidations int
}

func (f *fakeRanking) TopCountries(ctx context.Context, limit int) ([]domain.CountryDetail, error) {
	return nil, nil
}

func (f *fakeRanking) Invalidate() {
	f.invalidations++
}

type fakeDirectory struct {
	all       []domain.CountryDetail
	byCode    map[string]domain.CountryDetail
	allErr    error
	byCodeErr error
	allCalls  int
	codeCalls int
}

func (f *fakeDirectory) FetchAll(ctx context.Context) ([]domain.CountryDetail, error) {
	f.allCalls++
	if f.allErr != nil {
		return nil, f.allErr
	}
	return f.all, nil
}

func (f *fakeDirectory) FetchByCode(ctx context.Context, code string) (*domain.CountryDetail, error) {
	f.codeCalls++
	if f.byCodeErr != nil {
		return nil, f.byCodeErr
	}
	country, ok := f.byCode[code]
	if !ok {
		return nil, domain.ErrCountryNotFound
	}
	return &country, nil
}

func country(code, name, region, subregion string) domain.CountryDetail {
	return domain.CountryDetail{
		Code:         code,
		Name:         name,
		OfficialName: name,
		Capital:      "Capital of " + name,
		Region:       region,
		Subregion:    subregion,
		Flag:         "https://flagcdn.com/" + code + ".png",
	}
}

func voteAt(email, code string, createdAt time.Time) domain.Vote {
	return domain.Vote{
		Name:        "Voter",
		Email:       email,
		CountryCode: code,
		CountryName: code,
		Flag:        "https://flagcdn.com/" + code + ".png",
		CreatedAt:   createdAt,
	}
}
