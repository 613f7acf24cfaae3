package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/fritzgwapo0907/to-do-server/config"
	"github.com/fritzgwapo0907/to-do-server/database"
	"github.com/fritzgwapo0907/to-do-server/handlers"
	"github.com/fritzgwapo0907/to-do-server/middleware"
	"github.com/fritzgwapo0907/to-do-server/store"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	listenAddr := flag.String("listen", "", "listen address (overrides config)")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("loading config", "err", err)
	}
	if *listenAddr != "" {
		cfg.ListenAddr = *listenAddr
	}
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("connecting to database", "driver", cfg.Database.Driver, "err", err)
	}
	defer db.Close()
	logger.Info("connected to database", "driver", cfg.Database.Driver)

	if err := database.Migrate(db, cfg.Database.Driver); err != nil {
		logger.Fatal("migrating schema", "err", err)
	}

	st := store.New(db, cfg.QueryTimeout())
	h := handlers.New(st, logger)

	router := mux.NewRouter()
	router.Use(middleware.RequestLogger(logger))
	h.Routes(router)

	logger.Info("server listening", "addr", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, router); err != nil {
		logger.Fatal("server exited", "err", err)
	}
}
