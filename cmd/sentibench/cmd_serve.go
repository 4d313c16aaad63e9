// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/AleutianAI/sentibench/services/backend/config"
	"github.com/AleutianAI/sentibench/services/backend/dispatch"
	"github.com/AleutianAI/sentibench/services/backend/routes"
)

// initTracer sets up OTLP trace export when a collector endpoint is
// configured. Without OTEL_EXPORTER_OTLP_ENDPOINT the service runs
// untraced rather than failing startup.
func initTracer() (func(context.Context), error) {
	ctx := context.Background()

	otelEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otelEndpoint == "" {
		return func(context.Context) {}, nil
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
		resource.WithAttributes(semconv.ServiceNameKey.String("sentibench-backend")))
	if err != nil {
		return nil, err
	}
	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}, nil
}

func runServeCommand(cmd *cobra.Command, args []string) error {
	settings := config.Load()

	cleanup, err := initTracer()
	if err != nil {
		return fmt.Errorf("setting up the OTLP tracer: %w", err)
	}
	defer cleanup(context.Background())

	registry := prometheus.NewRegistry()
	metrics := dispatch.NewMetrics(registry)
	resolver := dispatch.NewResolver(settings.ServerlessEndpoint, settings.ClusterEndpoint)
	dispatcher := dispatch.NewDispatcher(resolver, metrics, dispatch.Config{
		MaxRetries:        settings.MaxRetries,
		InitialBackoff:    settings.InitialBackoff,
		RequestTimeout:    settings.RequestTimeout,
		BackoffMultiplier: 1.5,
	})

	if !settings.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("sentibench-backend"))

	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	routes.SetupRoutes(router, dispatcher, settings, metricsHandler)

	addr := fmt.Sprintf("%s:%d", settings.Host, settings.Port)
	slog.Info("starting backend service", "addr", addr,
		"serverless_configured", settings.ServerlessEndpoint != "",
		"cluster_configured", settings.ClusterEndpoint != "")
	return router.Run(addr)
}
