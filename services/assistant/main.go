// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/AleutianAI/shopglow/services/assistant/observability"
	"github.com/AleutianAI/shopglow/services/assistant/routes"
	"github.com/AleutianAI/shopglow/services/catalog"
	"github.com/AleutianAI/shopglow/services/llm"
	"github.com/AleutianAI/shopglow/services/violet"

	"github.com/AleutianAI/shopglow/services/assistant/datatypes"

	// --- OpenTelemetry imports ---
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func initTracer() (func(context.Context), error) {
	ctx := context.Background()

	otelEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otelEndpoint == "" {
		otelEndpoint = "shopglow-otel-collector:4317"
	}
	conn, err := grpc.NewClient(otelEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String("assistant-service")))
	if err != nil {
		return nil, err
	}
	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.
		TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}, nil
}

func main() {
	port := os.Getenv("ASSISTANT_PORT")
	if port == "" {
		port = "12310"
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// --- Init the tracer ---
	cleanup, err := initTracer()
	if err != nil {
		log.Fatalf("failed to setup the OTLP tracer: %v", err)
	}
	defer cleanup(context.Background())

	observability.InitMetrics(prometheus.DefaultRegisterer)

	// --- Catalog store ---
	var store catalog.Store
	dbPath := os.Getenv("CATALOG_DB_PATH")
	if dbPath != "" {
		sqliteStore, err := catalog.NewSQLiteStore(dbPath)
		if err != nil {
			log.Fatalf("FATAL: Could not open the catalog database: %v", err)
		}
		defer sqliteStore.Close()
		store = sqliteStore
		slog.Info("Using SQLite catalog store", "path", dbPath)
	} else {
		slog.Info("CATALOG_DB_PATH not set. Running with an empty in-memory catalog.")
		store = catalog.NewMemoryStore()
	}

	// --- Generation backend ---
	// The backend is optional: without a key the responder serves its
	// documented offline replies and never attempts a network call.
	var llmClient llm.LLMClient
	if client, err := llm.NewOpenAIClient(); err != nil {
		slog.Warn("No generation backend configured. Serving offline replies.", "error", err)
	} else {
		llmClient = client
		slog.Info("Using OpenAI LLM backend")
	}

	registry := datatypes.NewSessionRegistry()
	assembler := violet.NewContextAssembler(store)
	responder := violet.NewResponder(llmClient, assembler)

	router := gin.Default()
	router.Use(otelgin.Middleware("assistant-service"))

	routes.SetupRoutes(router, registry, responder)

	log.Println("Starting the assistant server on port ", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
