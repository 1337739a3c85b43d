package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"vetchat/internal/config"
	"vetchat/internal/engine"
	"vetchat/internal/patients"
	"vetchat/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	host := flag.String("host", cfg.Server.Host, "listen host")
	port := flag.Int("port", cfg.Server.Port, "listen port")
	dbPath := flag.String("db", cfg.Database.Path, "clinic database path")
	flag.Parse()

	path := *dbPath
	if path == "" {
		path, err = patients.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving database path: %v\n", err)
			os.Exit(1)
		}
	}

	store, err := patients.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Seed(); err != nil {
		fmt.Fprintf(os.Stderr, "Error seeding database: %v\n", err)
		os.Exit(1)
	}

	srv := server.New(engine.New(store), store)
	srv.LogRequests = cfg.Server.LogRequests
	if err := srv.Start(*host, *port); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting server: %v\n", err)
		os.Exit(1)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Printf("[vetchatd] shutting down")
	if err := srv.Stop(); err != nil {
		log.Printf("[vetchatd] shutdown error: %v", err)
	}
}
