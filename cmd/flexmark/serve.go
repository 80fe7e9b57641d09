package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/aretw0/flexmark"
	"github.com/aretw0/flexmark/internal/cli"
	"github.com/aretw0/flexmark/internal/presentation/tui"
	httpAdapter "github.com/aretw0/flexmark/pkg/adapters/http"
	"github.com/aretw0/flexmark/pkg/cache"
	rediscache "github.com/aretw0/flexmark/pkg/cache/redis"
	"github.com/aretw0/flexmark/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP render server",
	Long:  `Starts an HTTP server exposing POST /render, GET /healthz, GET /openapi.yaml and GET /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		file, logger := setup(cmd)
		port, _ := cmd.Flags().GetString("port")
		redisURL, _ := cmd.Flags().GetString("redis")
		cacheSize, _ := cmd.Flags().GetInt("cache-size")
		cacheTTL, _ := cmd.Flags().GetDuration("cache-ttl")
		maxBody, _ := cmd.Flags().GetInt64("max-body")

		metrics := observability.NewMetrics()
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		if err := metrics.Register(reg); err != nil {
			fmt.Fprintf(os.Stderr, "Error registering metrics: %v\n", err)
			os.Exit(1)
		}

		engine, err := cli.NewEngine(cli.EngineOptions{Config: file, Logger: logger, Hooks: metrics.Hooks()})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		var store cache.Cache
		switch {
		case redisURL != "":
			rc, err := rediscache.NewFromURL(redisURL, rediscache.WithTTL(cacheTTL))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error configuring redis: %v\n", err)
				os.Exit(1)
			}
			defer rc.Close()

			pingCtx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
			err = rc.Ping(pingCtx)
			cancel()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error connecting to redis: %v\n", err)
				os.Exit(1)
			}
			store = rc
		case cacheSize > 0:
			store = cache.NewMemory(cacheSize)
		}

		opts := []httpAdapter.Option{
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetrics(metrics, reg),
			httpAdapter.WithMaxBodyBytes(maxBody),
		}
		if store != nil {
			opts = append(opts, httpAdapter.WithCache(store))
		}
		handler, err := httpAdapter.NewHandler(engine, opts...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		tui.PrintBanner(cmd.OutOrStdout(), termenv.ColorProfile(), flexmark.Version)

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting flexmark server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("flexmark server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis URL for the render cache (e.g. redis://localhost:6379/0)")
	serveCmd.Flags().Int("cache-size", 1024, "Entries kept by the in-memory render cache; 0 disables it")
	serveCmd.Flags().Duration("cache-ttl", time.Hour, "Expiry of Redis cache entries")
	serveCmd.Flags().Int64("max-body", httpAdapter.DefaultMaxBodyBytes, "Largest accepted /render body in bytes; 0 disables the limit")
}
