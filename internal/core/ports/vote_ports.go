package ports

import (
	"context"

	"github.com/countryvote/api/internal/core/domain"
)

type VoteRepository interface {
	Save(ctx context.Context, vote *domain.Vote) error
	FindByEmail(ctx context.Context, email string) (*domain.Vote, error)
	FindAll(ctx context.Context) ([]domain.Vote, error)
	CountAll(ctx context.Context) (int64, error)
	CountByCountry(ctx context.Context, limit int) ([]domain.CountryVoteCount, error)
	CountDistinctCountries(ctx context.Context) (int64, error)
}

type CreateVoteInput struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	CountryCode string `json:"countryCode" validate:"required,len=3,alpha,uppercase"`
	CountryName string `json:"countryName" validate:"required,min=2"`
	Flag        string `json:"flag" validate:"required,url"`
}

type VoteService interface {
	CreateVote(ctx context.Context, input CreateVoteInput) (*domain.Vote, error)
	HasVoted(ctx context.Context, email string) (bool, error)
	ListVotes(ctx context.Context) ([]domain.Vote, error)
	TotalVotes(ctx context.Context) (int64, error)
}
