package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/impressmydate/backend/internal/config"
	"github.com/impressmydate/backend/internal/database"
	"github.com/impressmydate/backend/internal/handler"
	"github.com/impressmydate/backend/internal/planner"
	"github.com/impressmydate/backend/internal/queue"
	"github.com/impressmydate/backend/internal/repository"
	"github.com/impressmydate/backend/internal/router"
	queuepub "github.com/impressmydate/backend/internal/service"
	"github.com/impressmydate/backend/internal/yelp"
)

func main() {
	// Missing .env is fine in production; config comes from real env vars.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: without it rate limiting and caching are skipped.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	sessions := repository.NewSessionRepo(db)
	options := repository.NewOptionRepo(db)
	itineraries := repository.NewItineraryRepo(db)
	profiles := repository.NewProfileRepo(db)

	venues := yelp.NewClient(cfg.YelpBaseURL, cfg.YelpAPIKey, cfg.YelpTimeout)
	orch := planner.NewOrchestrator(venues, sessions, options, itineraries, queuepub.Events{})

	// Background consumer: confirmation log plus cleanup of option rows
	// left behind by confirmed or reset sessions.
	go func() {
		if err := queue.StartConsumers(options); err != nil {
			log.Printf("queue consumers stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAPI(e, router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, users, tokens),
		Plan:      handler.NewPlanHandler(orch, profiles),
		Itinerary: handler.NewItineraryHandler(itineraries),
		Profile:   handler.NewProfileHandler(profiles),
	}, cfg.JWTSecret, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
