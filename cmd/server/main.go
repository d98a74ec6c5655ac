package main

import (
	"flag"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/benbeisheim/minimax-chess/internal/controller"
	"github.com/benbeisheim/minimax-chess/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// Flags (env fallbacks).
	addr := flag.String("addr", getenv("CHESS_ADDR", ":3000"), "listen address")
	origins := flag.String("origins", getenv("CHESS_ORIGINS", "http://localhost:5173"), "comma-separated allowed origins")
	engineDepth := flag.Int("engine-depth", getenvInt("CHESS_ENGINE_DEPTH", 2), "plies the engine searches when replying")
	hintDepth := flag.Int("hint-depth", getenvInt("CHESS_HINT_DEPTH", 3), "plies searched for a hint")
	timeControl := flag.Duration("time-control", getenvDuration("CHESS_TIME_CONTROL", 0), "time per side, 0 for untimed")
	flag.Parse()

	if *engineDepth < 1 || *hintDepth < 1 {
		log.Fatalf("search depths must be at least 1 (engine=%d hint=%d)", *engineDepth, *hintDepth)
	}

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     *origins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	gameManager := service.NewGameManager(service.Config{
		EngineDepth: *engineDepth,
		HintDepth:   *hintDepth,
		TimeControl: *timeControl,
	}, service.MinimaxSuggester{})
	gameService := service.NewGameService(gameManager)

	controller.RegisterRoutes(app, gameService, splitList(*origins))

	log.Printf("HTTP listening on %s (engine depth %d, hint depth %d)", *addr, *engineDepth, *hintDepth)
	log.Fatal(app.Listen(*addr))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			log.Fatalf("%s: %v", key, err)
		}
		return n
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			log.Fatalf("%s: %v", key, err)
		}
		return d
	}
	return def
}
