// Command schedsim-server serves a read-only JSON API over simulation runs
// persisted by schedsim --db.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/mdub555/schedsim/internal/api"
	"github.com/mdub555/schedsim/internal/store"
)

func main() {
	var (
		dbPath = flag.String("db", "schedsim.db", "path to the SQLite database file")
		port   = flag.String("port", "8080", "port to serve the API on")
	)
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0o755); err != nil {
		log.Fatalf("failed to create database directory: %v", err)
	}

	log.Printf("connecting to database at %s", *dbPath)
	db, err := store.Open(*dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	repo := store.NewRepository(db)

	log.Printf("starting schedsim API server on port %s", *port)
	server := api.NewServer(repo, *port)
	if err := server.Start(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
