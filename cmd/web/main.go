package main

import (
	"log"
	"net/http"
	"os"

	"github.com/minaorangina/taboo/config"
	"github.com/minaorangina/taboo/engine"
	"github.com/minaorangina/taboo/server"
	"github.com/minaorangina/taboo/store"
)

func main() {
	logger := log.New(os.Stderr, "taboo ", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(err)
	}

	pool, err := cfg.Pool(logger)
	if err != nil {
		logger.Fatal(err)
	}

	factory := func(id string) *engine.Device {
		return engine.NewDevice(id, engine.NewShell(engine.ShellOpts{
			Pool:       pool,
			NewRand:    cfg.Rand,
			TurnLength: cfg.TurnLength,
			Logger:     logger,
		}))
	}

	s := server.NewServer(store.NewInMemoryDeviceStore(), factory, server.ServerOpts{
		TickRate:  cfg.TickRate,
		Logger:    logger,
		AccessLog: os.Stdout,
	})

	logger.Printf("Listening on %s...", cfg.Addr)
	logger.Fatal(http.ListenAndServe(cfg.Addr, s))
}
