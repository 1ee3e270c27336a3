package main

import (
	"context"
	"log"

	"study-buddy-be/internal/bootstrap"
	"study-buddy-be/internal/config"
	"study-buddy-be/internal/server"
	"study-buddy-be/internal/tracer"
)

func main() {
	// 1. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Load Configuration
	cfg := config.Load()

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()

	// 4. Initialize and run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
