package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/countryvote/api/internal/adapters/cache/memory"
	"github.com/countryvote/api/internal/adapters/directory/restcountries"
	"github.com/countryvote/api/internal/adapters/handler/http"
	"github.com/countryvote/api/internal/adapters/repository/postgres"
	"github.com/countryvote/api/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	cache := memory.NewCache()
	directory := restcountries.NewClient(os.Getenv("COUNTRIES_API_URL"))

	voteRepo := postgres.NewVoteRepository(db)
	countrySvc := services.NewCountryService(directory, cache)
	rankingSvc := services.NewRankingService(voteRepo, countrySvc, cache)
	voteSvc := services.NewVoteService(voteRepo, rankingSvc)
	statsSvc := services.NewStatsService(voteRepo, countrySvc)

	handler := http.NewHandler(
		http.NewVoteHandler(voteSvc, rankingSvc),
		http.NewCountryHandler(countrySvc),
		http.NewStatsHandler(statsSvc),
		http.NewHealthHandler(db, countrySvc),
		allowedOrigins(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	server := &stdhttp.Server{Addr: "0.0.0.0:" + port, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func allowedOrigins() []string {
	raw := os.Getenv("CORS_ALLOWED_ORIGINS")
	if raw == "" {
		return []string{"*"}
	}
	return strings.Split(raw, ",")
}

func dbConnString() string {
	dbName, user, password, host, port := dbConfig()
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}

func dbConfig() (dbName string, user string, password string, host string, port string) {
	dbName = os.Getenv("POSTGRES_DB")
	user = os.Getenv("POSTGRES_USER")
	password = os.Getenv("POSTGRES_PASSWORD")
	host = os.Getenv("POSTGRES_HOST")
	port = os.Getenv("POSTGRES_PORT")
	return
}
