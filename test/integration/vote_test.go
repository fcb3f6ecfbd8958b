package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func votePayload(email, code, country string) []byte {
	body, _ := json.Marshal(map[string]string{
		"name":        "Integration Voter",
		"email":       email,
		"countryCode": code,
		"countryName": country,
		"flag":        "https://flagcdn.com/w320/br.png",
	})
	return body
}

func postVote(t *testing.T, app *TestApp, payload []byte) *http.Response {
	t.Helper()
	resp, err := app.Client.Post(app.Server.URL+"/api/v1/votes", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func TestCreateVoteAndDuplicate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp := postVote(t, app, votePayload("jane@example.com", "BRA", "Brazil"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Message string `json:"message"`
		Data    struct {
			Email string `json:"email"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.Equal(t, "jane@example.com", created.Data.Email)

	// Same email with different casing must conflict, not insert.
	resp = postVote(t, app, votePayload("JANE@Example.COM", "ITA", "Italy"))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	var count int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM votes").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestConcurrentDuplicateVotesOneWinner(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	const attempts = 10
	payload := votePayload("race@example.com", "JPN", "Japan")

	statuses := make(chan int, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := app.Client.Post(app.Server.URL+"/api/v1/votes", "application/json", bytes.NewReader(payload))
			if err != nil {
				statuses <- 0
				return
			}
			resp.Body.Close()
			statuses <- resp.StatusCode
		}()
	}
	wg.Wait()
	close(statuses)

	created, conflicted := 0, 0
	for status := range statuses {
		switch status {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicted++
		default:
			t.Fatalf("unexpected status %d", status)
		}
	}

	assert.Equal(t, 1, created, "exactly one concurrent submission may win")
	assert.Equal(t, attempts-1, conflicted)

	var count int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM votes WHERE email = 'race@example.com'").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestCreateVoteValidation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	body, _ := json.Marshal(map[string]string{
		"name":        "X",
		"email":       "nope",
		"countryCode": "Brazil",
		"countryName": "B",
		"flag":        "::not-a-url::",
	})
	resp := postVote(t, app, body)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var payload struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	assert.Contains(t, payload.Fields, "email")
	assert.Contains(t, payload.Fields, "countryCode")

	var count int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM votes").Scan(&count))
	assert.Equal(t, 0, count, "rejected submissions must not write")
}

func TestCheckEmailRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp, err := app.Client.Get(app.Server.URL + "/api/v1/votes/check?email=jane@example.com")
	require.NoError(t, err)
	var check struct {
		HasVoted bool `json:"hasVoted"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&check))
	resp.Body.Close()
	assert.False(t, check.HasVoted)

	resp = postVote(t, app, votePayload("jane@example.com", "BRA", "Brazil"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err = app.Client.Get(app.Server.URL + "/api/v1/votes/check?email=Jane@EXAMPLE.com")
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&check))
	resp.Body.Close()
	assert.True(t, check.HasVoted)
}

func TestListVotesNewestFirst(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		resp := postVote(t, app, votePayload(email, "BRA", "Brazil"))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp, err := app.Client.Get(app.Server.URL + "/api/v1/votes")
	require.NoError(t, err)
	var listing struct {
		Count int `json:"count"`
		Data  []struct {
			Email string `json:"email"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listing))
	resp.Body.Close()

	require.Equal(t, 3, listing.Count)
	assert.Equal(t, "c@example.com", listing.Data[0].Email)
	assert.Equal(t, "a@example.com", listing.Data[2].Email)
}
