package domain

type RegionVotes struct {
	Region string `json:"region"`
	Votes  int64  `json:"votes"`
}

type TimelineEntry struct {
	Date  string `json:"date"`
	Votes int64  `json:"votes"`
}

type DetailedStats struct {
	TotalVotes      int64           `json:"totalVotes"`
	UniqueCountries int64           `json:"uniqueCountries"`
	VotesByRegion   []RegionVotes   `json:"votesByRegion"`
	Timeline        []TimelineEntry `json:"timeline"`
}
