package services

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/countryvote/api/internal/core/domain"
	"github.com/countryvote/api/internal/core/ports"
)

type voteService struct {
	repo     ports.VoteRepository
	ranking  ports.RankingService
	validate *validator.Validate
}

func NewVoteService(repo ports.VoteRepository, ranking ports.RankingService) ports.VoteService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &voteService{
		repo:     repo,
		ranking:  ranking,
		validate: validate,
	}
}

func (s *voteService) CreateVote(ctx context.Context, input ports.CreateVoteInput) (*domain.Vote, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, asValidationError(err)
	}

	email := strings.ToLower(input.Email)

	// Pre-check to fail fast with a friendly error. The unique index on
	// email remains the arbiter of concurrent submissions.
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing vote: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrAlreadyVoted
	}

	vote := &domain.Vote{
		ID:          uuid.New(),
		Name:        input.Name,
		Email:       email,
		CountryCode: input.CountryCode,
		CountryName: input.CountryName,
		Flag:        input.Flag,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Save(ctx, vote); err != nil {
		return nil, err
	}

	s.ranking.Invalidate()
	return vote, nil
}

func (s *voteService) HasVoted(ctx context.Context, email string) (bool, error) {
	existing, err := s.repo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return false, fmt.Errorf("failed to check existing vote: %w", err)
	}
	return existing != nil, nil
}

func (s *voteService) ListVotes(ctx context.Context) ([]domain.Vote, error) {
	return s.repo.FindAll(ctx)
}

func (s *voteService) TotalVotes(ctx context.Context) (int64, error) {
	return s.repo.CountAll(ctx)
}

func asValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return &domain.ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	case "alpha":
		return "must contain only letters"
	case "uppercase":
		return "must be uppercase"
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}
