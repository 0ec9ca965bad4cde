package main

import (
	"context"
	"log"
	"net/http"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/cabogame/cabo/internal/auth"
	"github.com/cabogame/cabo/internal/config"
	"github.com/cabogame/cabo/internal/game"
	"github.com/cabogame/cabo/internal/handlers"
	"github.com/cabogame/cabo/internal/journal"
	"github.com/cabogame/cabo/internal/middleware"
)

func main() {
	auth.Init()

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	// Action journal is optional; rooms run without it when Redis is absent.
	var jrnl *journal.Publisher
	if addr := config.GetEnv("REDIS_ADDR", ""); addr != "" {
		var err error
		jrnl, err = journal.Connect(addr, config.GetEnvInt("REDIS_DB", 0), config.GetEnv("JOURNAL_QUEUE_NAME", ""))
		if err != nil {
			logger.Warnf("journal disabled: %v", err)
			jrnl = nil
		}
	}

	rules := game.DefaultHouseRules()
	rules.AllowDrawFromDiscardPile = config.GetEnvBool("ALLOW_DISCARD_DRAWS", rules.AllowDrawFromDiscardPile)
	rules.AllowMatchDiscard = config.GetEnvBool("ALLOW_MATCH_DISCARD", rules.AllowMatchDiscard)
	rules.SimpleKing = config.GetEnvBool("SIMPLE_KING", rules.SimpleKing)
	rules.IncludeJokers = config.GetEnvBool("INCLUDE_JOKERS", rules.IncludeJokers)
	rules.TurnTimerSec = config.GetEnvInt("TURN_TIMER_SEC", rules.TurnTimerSec)
	rules.DealtWindowSec = config.GetEnvInt("DEALT_WINDOW_SEC", rules.DealtWindowSec)

	rs := handlers.NewRoomServer(context.Background(), logger, jrnl, rules)

	mux := http.NewServeMux()
	mux.Handle("/rooms/create", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.CreateRoomHandler(rs),
	)))
	mux.Handle("/rooms/ws/", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.RoomWSHandler(logger, rs),
	)))

	addr := config.ListenAddr()
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
