package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	stdhttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/countryvote/api/internal/adapters/cache/memory"
	"github.com/countryvote/api/internal/adapters/directory/restcountries"
	handler "github.com/countryvote/api/internal/adapters/handler/http"
	repo "github.com/countryvote/api/internal/adapters/repository/postgres"
	"github.com/countryvote/api/internal/core/ports"
	"github.com/countryvote/api/internal/core/services"
)

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *stdhttp.Client
	Directory   *httptest.Server
	Countries   ports.CountryService
	DBContainer testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

type directoryCountry struct {
	Common    string
	Official  string
	Code      string
	Capital   []string
	Region    string
	Subregion string
}

var directoryCountries = []directoryCountry{
	{Common: "Brazil", Official: "Federative Republic of Brazil", Code: "BRA", Capital: []string{"Brasília"}, Region: "Americas", Subregion: "South America"},
	{Common: "Argentina", Official: "Argentine Republic", Code: "ARG", Capital: []string{"Buenos Aires"}, Region: "Americas", Subregion: "South America"},
	{Common: "Italy", Official: "Italian Republic", Code: "ITA", Capital: []string{"Rome"}, Region: "Europe", Subregion: "Southern Europe"},
	{Common: "Japan", Official: "Japan", Code: "JPN", Capital: []string{"Tokyo"}, Region: "Asia", Subregion: "Eastern Asia"},
	{Common: "Madagascar", Official: "Republic of Madagascar", Code: "MDG", Capital: []string{"Antananarivo"}, Region: "Africa", Subregion: "Eastern Africa"},
	{Common: "Antarctica", Official: "Antarctica", Code: "ATA", Capital: []string{}, Region: "Antarctic", Subregion: ""},
}

// newDirectoryServer stands in for the REST Countries API so integration
// tests never leave the machine.
func newDirectoryServer() *httptest.Server {
	toPayload := func(c directoryCountry) map[string]any {
		return map[string]any{
			"name":      map[string]any{"common": c.Common, "official": c.Official},
			"cca3":      c.Code,
			"capital":   c.Capital,
			"region":    c.Region,
			"subregion": c.Subregion,
			"flags":     map[string]any{"png": "https://flagcdn.com/w320/" + strings.ToLower(c.Code) + ".png"},
		}
	}

	mux := stdhttp.NewServeMux()
	mux.HandleFunc("/all", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		payload := make([]map[string]any, 0, len(directoryCountries))
		for _, c := range directoryCountries {
			payload = append(payload, toPayload(c))
		}
		json.NewEncoder(w).Encode(payload)
	})
	mux.HandleFunc("/alpha/", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		code := strings.TrimPrefix(r.URL.Path, "/alpha/")
		for _, c := range directoryCountries {
			if c.Code == code {
				json.NewEncoder(w).Encode([]map[string]any{toPayload(c)})
				return
			}
		}
		stdhttp.Error(w, `{"status":404,"message":"Not Found"}`, stdhttp.StatusNotFound)
	})

	return httptest.NewServer(mux)
}

func setupTestApp(t *testing.T) *TestApp {
	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	err = applyMigrations(db)
	require.NoError(t, err)

	directoryServer := newDirectoryServer()

	cache := memory.NewCache()
	directory := restcountries.NewClient(directoryServer.URL)

	voteRepo := repo.NewVoteRepository(db)
	countrySvc := services.NewCountryService(directory, cache)
	rankingSvc := services.NewRankingService(voteRepo, countrySvc, cache)
	voteSvc := services.NewVoteService(voteRepo, rankingSvc)
	statsSvc := services.NewStatsService(voteRepo, countrySvc)

	router := handler.NewHandler(
		handler.NewVoteHandler(voteSvc, rankingSvc),
		handler.NewCountryHandler(countrySvc),
		handler.NewStatsHandler(statsSvc),
		handler.NewHealthHandler(db, countrySvc),
		[]string{"*"},
	)

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		Directory:   directoryServer,
		Countries:   countrySvc,
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.Directory.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}
