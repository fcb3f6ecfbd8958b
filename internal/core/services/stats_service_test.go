package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/countryvote/api/internal/core/domain"
)

func statsFixture() (*fakeVoteRepo, *fakeCountryService) {
	day1 := time.Date(2025, 11, 15, 10, 0, 0, 0, time.UTC)
	repo := &fakeVoteRepo{
		votes: []domain.Vote{
			voteAt("a@example.com", "BRA", day1),
			voteAt("b@example.com", "BRA", day1.Add(5*time.Hour)),
			voteAt("c@example.com", "ARG", day1.Add(14*time.Hour+1*time.Second)), // 2025-11-16T00:00:01Z
			voteAt("d@example.com", "XXX", day1),
		},
	}
	countries := &fakeCountryService{byCode: map[string]domain.CountryDetail{
		"BRA": country("BRA", "Brazil", "Americas", "South America"),
		"ARG": country("ARG", "Argentina", "Americas", "South America"),
	}}
	return repo, countries
}

func TestTimelineGroupsByUTCDate(t *testing.T) {
	repo, countries := statsFixture()
	svc := NewStatsService(repo, countries)

	timeline, err := svc.Timeline(context.Background())
	require.NoError(t, err)
	require.Len(t, timeline, 2)

	assert.Equal(t, domain.TimelineEntry{Date: "2025-11-15", Votes: 3}, timeline[0])
	assert.Equal(t, domain.TimelineEntry{Date: "2025-11-16", Votes: 1}, timeline[1])
}

func TestTimelineExcludesZeroTimestamps(t *testing.T) {
	repo, countries := statsFixture()
	repo.votes = append(repo.votes, domain.Vote{Email: "e@example.com", CountryCode: "BRA"})
	svc := NewStatsService(repo, countries)

	timeline, err := svc.Timeline(context.Background())
	require.NoError(t, err)

	var total int64
	for _, entry := range timeline {
		total += entry.Votes
	}
	assert.Equal(t, int64(4), total)
}

func TestByRegionExcludesUnresolvedVotes(t *testing.T) {
	repo, countries := statsFixture()
	svc := NewStatsService(repo, countries)

	regions, err := svc.ByRegion(context.Background())
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, "South America", regions[0].Region)
	assert.Equal(t, int64(3), regions[0].Votes)

	// The unresolvable XXX vote keeps the regional sum below the total.
	total, err := svc.TotalVotes(context.Background())
	require.NoError(t, err)
	var regional int64
	for _, r := range regions {
		regional += r.Votes
	}
	assert.Less(t, regional, total)
}

func TestByRegionFallsBackToRegionWhenSubregionUnknown(t *testing.T) {
	repo, countries := statsFixture()
	ata := country("ATA", "Antarctica", "Antarctic", domain.UnknownField)
	countries.byCode["ATA"] = ata
	repo.votes = append(repo.votes, voteAt("e@example.com", "ATA", time.Date(2025, 11, 15, 12, 0, 0, 0, time.UTC)))
	svc := NewStatsService(repo, countries)

	regions, err := svc.ByRegion(context.Background())
	require.NoError(t, err)

	found := false
	for _, r := range regions {
		if r.Region == "Antarctic" {
			found = true
			assert.Equal(t, int64(1), r.Votes)
		}
	}
	assert.True(t, found)
}

func TestUniqueCountriesCountsDistinctCodes(t *testing.T) {
	repo, countries := statsFixture()
	svc := NewStatsService(repo, countries)

	unique, err := svc.UniqueCountries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), unique)
}

func TestDetailedStatsComposesAllViews(t *testing.T) {
	repo, countries := statsFixture()
	svc := NewStatsService(repo, countries)

	stats, err := svc.DetailedStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalVotes)
	assert.Equal(t, int64(3), stats.UniqueCountries)
	assert.Len(t, stats.VotesByRegion, 1)
	assert.Len(t, stats.Timeline, 2)
}
