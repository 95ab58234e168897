package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/ovira/internal/api"
	"github.com/terraincognita07/ovira/internal/config"
	"github.com/terraincognita07/ovira/internal/logger"
	"github.com/terraincognita07/ovira/internal/memstore"
	"github.com/terraincognita07/ovira/internal/store"
)

const defaultTokenTTL = 30 * 24 * time.Hour

func tokenCmd() *cobra.Command {
	var (
		userID string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for a user id",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			token, err := api.IssueToken(cfg.SecretKey, userID, time.Now(), ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id to embed in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", defaultTokenTTL, "token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func seedDemoCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "seed-demo",
		Short: "Write two weeks of demo logs for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.StoreDriver == config.StoreMemory {
				return errors.New("seed-demo needs a persistent store; the memory store is seeded by DEMO_SEED on serve")
			}

			dataStore, err := openStore(cfg, logger.NewNop())
			if err != nil {
				return err
			}
			defer dataStore.Close()

			count, err := seedDemoLogs(cmd.Context(), dataStore, userID, time.Now().In(cfg.Location()))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d demo logs for %s\n", count, userID)
			return err
		},
	}

	cmd.Flags().StringVar(&userID, "user", memstore.DemoUserID, "user id that receives the demo logs")
	return cmd
}

// seedDemoLogs skips users that already have logs so restarts do not duplicate the demo data.
func seedDemoLogs(ctx context.Context, dataStore store.Store, userID string, today time.Time) (int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, errors.New("user id is required")
	}

	existing, err := dataStore.ListRecent(ctx, userID, 1)
	if err != nil {
		return 0, fmt.Errorf("check existing logs: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	count, err := memstore.Seed(ctx, dataStore, userID, today, memstore.DemoSeedKey)
	if err != nil {
		return count, fmt.Errorf("seed demo logs: %w", err)
	}
	return count, nil
}
