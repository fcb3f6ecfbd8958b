package domain

import (
	"time"

	"github.com/google/uuid"
)

type Vote struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	CountryCode string    `json:"countryCode"`
	CountryName string    `json:"countryName"`
	Flag        string    `json:"flag"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CountryVoteCount is one row of the group-by-country aggregation,
// before directory enrichment.
type CountryVoteCount struct {
	CountryCode string
	Votes       int64
}
