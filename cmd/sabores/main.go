package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sabores/internal/client"
	"sabores/internal/config"
	"sabores/internal/devicestore"
	"sabores/internal/infrastructure/logger"
)

var Version = "dev"

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var serverURL, devicePath, logLevel string

	rootCmd := &cobra.Command{
		Use:           "sabores",
		Short:         "Sabores de Zissou - orders from the terminal",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if serverURL != "" {
				cfg.Client.ServerURL = serverURL
			}
			if devicePath != "" {
				cfg.Client.DeviceStorePath = devicePath
			}
			if logLevel == "" {
				logLevel = "warn"
			}

			zapLogger, err := logger.NewConsole(logLevel)
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}

			a.cfg = cfg
			a.logger = zapLogger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Storefront API base URL (default from SABORES_SERVER_URL)")
	rootCmd.PersistentFlags().StringVar(&devicePath, "device-store", "", "Path of the device backup database (default from DEVICE_STORE_PATH)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(orderCmd(a))
	rootCmd.AddCommand(localCmd(a))
	rootCmd.AddCommand(loginCmd(a))

	return rootCmd
}

func (a *app) openDevice(ctx context.Context) (*devicestore.LocalOrderStorage, *sql.DB, error) {
	storage, db, err := devicestore.Open(ctx, a.cfg.Client.DeviceStorePath, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("opening device store: %w", err)
	}
	return storage, db, nil
}

func (a *app) newClient(device client.DeviceStore) *client.OrderClient {
	return client.NewOrderClient(a.cfg.Client, device, a.logger.Named("client"))
}
