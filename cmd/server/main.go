package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/fnb-control/api/internal/config"
	"github.com/fnb-control/api/internal/pos"
	"github.com/fnb-control/api/internal/router"
	"github.com/fnb-control/api/internal/store"
	"github.com/fnb-control/api/internal/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	st := store.New(cfg.DataDir)

	ledger, err := st.LoadLedger()
	if err != nil {
		log.Fatalf("load ledger: %v", err)
	}
	catalog := store.SeedCatalog()
	history, err := st.LoadHistory(catalog)
	if err != nil {
		log.Fatalf("load sales history: %v", err)
	}
	state := pos.NewState(ledger, catalog, history)
	log.Printf("Loaded %d ingredients and %d sales records from %s",
		len(ledger.Rows()), history.Len(), cfg.DataDir)

	hub := ws.NewHub()
	go hub.Run()

	r := router.New(cfg, state, st, hub)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal(err)
	}
}
