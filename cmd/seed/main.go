package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/fnb-control/api/internal/pos"
	"github.com/fnb-control/api/internal/store"
)

func main() {
	// CLI flags
	dir := flag.String("dir", "", "Data directory for the CSV files")
	force := flag.Bool("force", false, "Overwrite existing data files")
	flag.Parse()

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file")
	}

	// Fall back to environment, then to the default
	if *dir == "" {
		*dir = os.Getenv("DATA_DIR")
	}
	if *dir == "" {
		*dir = "data"
	}

	st := store.New(*dir)
	if !*force {
		for _, path := range []string{st.LedgerPath(), st.SalesPath()} {
			if _, err := os.Stat(path); err == nil {
				log.Fatalf("%s already exists; re-run with -force to overwrite", path)
			}
		}
	}

	catalog := store.SeedCatalog()

	ledger := pos.NewLedger()
	if err := ledger.Replace(store.SeedLedger()); err != nil {
		log.Fatalf("build seed ledger: %v", err)
	}
	if err := st.SaveLedger(ledger); err != nil {
		log.Fatalf("write %s: %v", st.LedgerPath(), err)
	}

	history := pos.NewHistory()
	for _, rec := range store.SeedHistory(catalog) {
		history.Append(rec)
	}
	if err := st.SaveHistory(history, catalog); err != nil {
		log.Fatalf("write %s: %v", st.SalesPath(), err)
	}

	log.Printf("Seeded %d ingredients and %d sales records into %s",
		len(ledger.Rows()), history.Len(), *dir)
}
