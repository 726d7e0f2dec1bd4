package main

import (
	"github.com/wfunc/triviaserver/config"
	"github.com/wfunc/triviaserver/game"
	"github.com/wfunc/triviaserver/logger"
	"github.com/wfunc/triviaserver/matchmaker"
	"github.com/wfunc/triviaserver/monitor"
	"github.com/wfunc/triviaserver/question"
	"github.com/wfunc/triviaserver/server"
)

func main() {
	// Initialize logger
	logger.Init()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize monitoring
	mon := monitor.NewMonitor("triviaserver")
	mon.StartServer(cfg.Server.MetricsAddress)

	// Initialize question provider with fetch instrumentation
	provider := monitor.NewInstrumentedProvider(
		question.NewOpenTDBProvider(cfg.Question.APIURL, cfg.Question.HTTPTimeout),
		mon,
	)

	// Initialize game engine and matchmaker
	engine := game.NewEngine(provider, cfg.Game.RoundDuration)
	m := matchmaker.New(cfg.Game.PlayersPerGame, engine, mon)

	// Initialize game server
	gameServer := server.NewGameServer(cfg.Server.HTTPAddress, cfg.Server.RPCAddress, m, mon)

	// Start server
	logger.Log.Infof("Starting trivia server on %s (quorum=%d, round duration=%s)",
		cfg.Server.HTTPAddress, cfg.Game.PlayersPerGame, cfg.Game.RoundDuration)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}
