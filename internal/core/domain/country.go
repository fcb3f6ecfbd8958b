package domain

// UnknownField is stored in place of a capital or subregion the external
// directory does not report. Callers must treat it as "unknown", not as a
// real value.
const UnknownField = "N/A"

type CountryDetail struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	OfficialName string `json:"officialName"`
	Capital      string `json:"capital"`
	Region       string `json:"region"`
	Subregion    string `json:"subregion"`
	Flag         string `json:"flag"`
	VoteCount    int64  `json:"voteCount,omitempty"`
}
