package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/quorumkey/wallet-custody-backend/common"
	"github.com/quorumkey/wallet-custody-backend/custody"
	"github.com/quorumkey/wallet-custody-backend/httpserver"
	"github.com/quorumkey/wallet-custody-backend/interfaces"
	"github.com/quorumkey/wallet-custody-backend/storage"
	"github.com/quorumkey/wallet-custody-backend/wallet"
	"github.com/urfave/cli/v2"
)

var flags []cli.Flag = []cli.Flag{
	&cli.StringFlag{
		Name:  "listen-addr",
		Value: "127.0.0.1:8080",
		Usage: "address to listen on for API",
	},
	&cli.StringFlag{
		Name:  "metrics-addr",
		Value: "127.0.0.1:8090",
		Usage: "address to listen on for Prometheus metrics",
	},
	&cli.StringSliceFlag{
		Name:  "storage-uri",
		Value: cli.NewStringSlice("file:///var/lib/custody/documents"),
		Usage: "document store URI, repeatable for replicated storage (file://, s3://, ipfs://, vault://, memory://)",
	},
	&cli.BoolFlag{
		Name:  "log-json",
		Value: false,
		Usage: "log in JSON format",
	},
	&cli.BoolFlag{
		Name:  "log-debug",
		Value: false,
		Usage: "log debug messages",
	},
	&cli.BoolFlag{
		Name:  "log-uid",
		Value: false,
		Usage: "generate a uuid and add to all log messages",
	},
	&cli.StringFlag{
		Name:  "log-service",
		Value: common.PackageName,
		Usage: "add 'service' tag to logs",
	},
	&cli.BoolFlag{
		Name:  "pprof",
		Value: false,
		Usage: "enable pprof debug endpoint",
	},
	&cli.Int64Flag{
		Name:  "drain-seconds",
		Value: 45,
		Usage: "seconds to wait in drain HTTP request",
	},
}

func main() {
	app := &cli.App{
		Name:  "custodyserver",
		Usage: "Serve the threshold wallet-custody API",
		Flags: flags,
		Action: func(cCtx *cli.Context) error {
			listenAddr := cCtx.String("listen-addr")
			metricsAddr := cCtx.String("metrics-addr")
			storageURIs := cCtx.StringSlice("storage-uri")
			logJSON := cCtx.Bool("log-json")
			logDebug := cCtx.Bool("log-debug")
			logUID := cCtx.Bool("log-uid")
			logService := cCtx.String("log-service")
			enablePprof := cCtx.Bool("pprof")
			drainDuration := time.Duration(cCtx.Int64("drain-seconds")) * time.Second

			logger := common.SetupLogger(&common.LoggingOpts{
				Debug:   logDebug,
				JSON:    logJSON,
				Service: logService,
				Version: common.Version,
			})

			if logUID {
				id := uuid.Must(uuid.NewRandom())
				logger = logger.With("uid", id.String())
			}

			locations := make([]interfaces.DocumentStoreLocation, 0, len(storageURIs))
			for _, uri := range storageURIs {
				location, err := interfaces.NewDocumentStoreLocation(uri)
				if err != nil {
					logger.Error("Invalid storage URI", "err", err, "uri", uri)
					return err
				}
				locations = append(locations, location)
			}

			storeFactory := storage.NewStoreFactory(logger)
			store, err := storeFactory.CreateMultiStore(locations)
			if err != nil {
				logger.Error("Failed to create document stores", "err", err)
				return err
			}
			logger.Info("Document stores ready", "location", store.LocationURI())

			service := custody.NewService(store, wallet.NewGenerator(), logger)

			cfg := &httpserver.HTTPServerConfig{
				ListenAddr:               listenAddr,
				MetricsAddr:              metricsAddr,
				Log:                      logger,
				EnablePprof:              enablePprof,
				DrainDuration:            drainDuration,
				GracefulShutdownDuration: 30 * time.Second,
				ReadTimeout:              60 * time.Second,
				WriteTimeout:             30 * time.Second,
			}

			server, err := httpserver.New(cfg, httpserver.NewHandler(service, logger))
			if err != nil {
				logger.Error("Failed to create server", "err", err)
				return err
			}

			logger.Info("Starting server")
			server.RunInBackground()

			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)

			logger.Info("Server is running, press Ctrl+C to stop")
			<-exit
			logger.Info("Shutdown signal received")

			server.Shutdown()
			logger.Info("Server shutdown complete")

			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(fmt.Errorf("custodyserver: %w", err))
	}
}
