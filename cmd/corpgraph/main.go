package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/obriclabs/corpgraph/internal/config"
	"github.com/obriclabs/corpgraph/internal/graph"
	"github.com/obriclabs/corpgraph/internal/handlers"
	"github.com/obriclabs/corpgraph/internal/observability"
	"github.com/obriclabs/corpgraph/internal/platform/logger"
	"github.com/obriclabs/corpgraph/internal/platform/neo4jdb"
	"github.com/obriclabs/corpgraph/internal/platform/openai"
	"github.com/obriclabs/corpgraph/internal/server"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "corpgraph",
		Environment: cfg.LogMode,
		Version:     version,
	})
	if shutdownOTel != nil {
		defer func() {
			shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownOTel(shCtx); err != nil {
				log.Warn("otel shutdown failed", "error", err)
			}
		}()
	}

	client, err := neo4jdb.New(cfg.Neo4j, log)
	if err != nil {
		log.Fatal("neo4j client init failed", "error", err)
	}
	if err := client.Connect(ctx); err != nil {
		log.Fatal("neo4j connect failed", "error", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Close(closeCtx); err != nil {
			log.Warn("neo4j close failed", "error", err)
		}
	}()

	embedder, err := openai.New(cfg.OpenAI, log)
	if err != nil {
		log.Fatal("openai client init failed", "error", err)
	}

	entities := graph.NewEntityEngine(client, log)
	neighbourhood := graph.NewNeighbourhoodEngine(client, log)
	paths := graph.NewPathEngine(client, log)
	relationships := graph.NewRelationshipEngine(client, log)
	people := graph.NewPersonEngine(client, log)

	router := server.NewRouter(server.Handlers{
		Entity:       handlers.NewEntityHandler(entities, embedder, log),
		Path:         handlers.NewPathHandler(paths, neighbourhood, log),
		Relationship: handlers.NewRelationshipHandler(relationships, log),
		Person:       handlers.NewPersonHandler(people, log),
	}, cfg.LogMode)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("server exited", "error", err)
	}
}
