// Command vectorsync rebuilds the dense and sparse indexes of one
// organization and prints the batch result as JSON.
//
//	vectorsync -org 6f1c0e0a-3f7e-4d5c-9a55-2b7c8f0d1e42
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/discovery/v1/catalog"
	"github.com/Aleph-Alpha/discovery/v1/config"
	"github.com/Aleph-Alpha/discovery/v1/embedding"
	"github.com/Aleph-Alpha/discovery/v1/logger"
	"github.com/Aleph-Alpha/discovery/v1/postgres"
	"github.com/Aleph-Alpha/discovery/v1/qdrant"
	"github.com/Aleph-Alpha/discovery/v1/sparseembedding"
	"github.com/Aleph-Alpha/discovery/v1/tracer"
	"github.com/Aleph-Alpha/discovery/v1/vectorsync"
)

func main() {
	org := flag.String("org", "", "organization id whose products are indexed")
	flag.Parse()

	orgID, err := uuid.Parse(*org)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -org %q: %v\n", *org, err)
		os.Exit(2)
	}

	var (
		pipeline *vectorsync.Pipeline
		log      logger.Logger
	)
	app := fx.New(
		fx.NopLogger,
		config.FXModule,
		logger.FXModule,
		tracer.FXModule,
		postgres.FXModule,
		fx.Provide(
			catalog.NewGormStore,
			func(s *catalog.GormStore) catalog.Store { return s },
		),
		qdrant.FXModule,
		embedding.FXModule,
		sparseembedding.FXModule,
		vectorsync.FXModule,
		fx.Populate(&pipeline, &log),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}

	result := pipeline.UpsertProducts(ctx, orgID)

	if err := app.Stop(context.Background()); err != nil {
		log.Error("shutdown failed", err, nil)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "encode result: %v\n", err)
		os.Exit(1)
	}
	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}
