// Package restcountries implements the outbound country directory client
// against the REST Countries v3.1 API.
package restcountries

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/countryvote/api/internal/core/domain"
	"github.com/countryvote/api/internal/core/ports"
)

const DefaultBaseURL = "https://restcountries.com/v3.1"

const fieldsParam = "fields=name,cca3,capital,region,subregion,flags"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) ports.CountryDirectory {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type countryResponse struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	CCA3      string   `json:"cca3"`
	Capital   []string `json:"capital"`
	Region    string   `json:"region"`
	Subregion string   `json:"subregion"`
	Flags     struct {
		PNG string `json:"png"`
		SVG string `json:"svg"`
	} `json:"flags"`
}

func (c *Client) FetchAll(ctx context.Context) ([]domain.CountryDetail, error) {
	url := fmt.Sprintf("%s/all?%s", c.baseURL, fieldsParam)
	records, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	countries := make([]domain.CountryDetail, 0, len(records))
	for _, rec := range records {
		countries = append(countries, mapCountry(rec))
	}
	return countries, nil
}

func (c *Client) FetchByCode(ctx context.Context, code string) (*domain.CountryDetail, error) {
	url := fmt.Sprintf("%s/alpha/%s?%s", c.baseURL, code, fieldsParam)
	records, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrCountryNotFound
	}

	country := mapCountry(records[0])
	return &country, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]countryResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build directory request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrCountryNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory returned status %d", resp.StatusCode)
	}

	var records []countryResponse
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode directory response: %w", err)
	}
	return records, nil
}

func mapCountry(rec countryResponse) domain.CountryDetail {
	capital := domain.UnknownField
	if len(rec.Capital) > 0 && rec.Capital[0] != "" {
		capital = rec.Capital[0]
	}

	subregion := rec.Subregion
	if subregion == "" {
		subregion = domain.UnknownField
	}

	flag := rec.Flags.PNG
	if flag == "" {
		flag = rec.Flags.SVG
	}

	return domain.CountryDetail{
		Code:         rec.CCA3,
		Name:         rec.Name.Common,
		OfficialName: rec.Name.Official,
		Capital:      capital,
		Region:       rec.Region,
		Subregion:    subregion,
		Flag:         flag,
	}
}
