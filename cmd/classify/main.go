package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"tg-moderator/internal/classifier"
	"tg-moderator/internal/config"
)

// Small helper to check a classifier setup from the command line.
func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to configuration file")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatal("Usage: classify [-config path] <message>")
	}
	message := flag.Arg(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	cl, err := classifier.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create classifier: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	toxic, err := cl.Classify(ctx, message)
	if err != nil {
		log.Fatalf("Classification failed: %v", err)
	}

	fmt.Println(toxic)
}
