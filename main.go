package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"postboard-server/cache"
	"postboard-server/db"
	"postboard-server/handlers"
)

const defaultPageCacheTTL = 20 * time.Second

func main() {
	if level, err := log.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}

	err := db.Connect()
	if err != nil {
		log.Fatal("Error initializing database: ", err)
	}

	err = db.MigrationsUp()
	if err != nil {
		log.Fatal("Error running migrations: ", err)
	}

	// The home feed page cache is optional; without redis every read goes to
	// the database.
	if redisHost := os.Getenv("REDIS_HOST"); redisHost != "" {
		ttl := defaultPageCacheTTL
		if seconds, err := strconv.Atoi(os.Getenv("PAGE_CACHE_TTL_SECONDS")); err == nil && seconds > 0 {
			ttl = time.Duration(seconds) * time.Second
		}

		redisPort := os.Getenv("REDIS_PORT")
		if redisPort == "" {
			redisPort = "6379"
		}

		handlers.Pages = cache.NewPagesCache(
			&redis.Options{Addr: redisHost + ":" + redisPort},
			ttl,
		)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8088"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: routes(),
	}

	go func() {
		log.Println("Started server on port " + port)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server: ", err)
		}
	}()

	sigTermChan := make(chan os.Signal, 1)
	signal.Notify(sigTermChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigTermChan

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down server: %v\n", err)
	}
}
