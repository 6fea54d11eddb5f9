// Command universe-node runs an asset universe as a long-lived process:
// it allocates the slot table, periodically digests and snapshots it,
// and exits cleanly on SIGINT/SIGTERM, snapshotting one last time before
// shutdown.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/synnergy-network/asset-universe/cmd/cli"
	"github.com/synnergy-network/asset-universe/core"
	appconfig "github.com/synnergy-network/asset-universe/pkg/config"
	"github.com/synnergy-network/asset-universe/pkg/utils"
)

func main() {
	root := &cobra.Command{Use: "universe-node"}
	root.AddCommand(serveCmd())
	root.AddCommand(cli.IssueCmd())
	root.AddCommand(cli.TransferCmd())
	root.AddCommand(cli.QueryCmd())
	root.AddCommand(cli.EpochCmd())
	root.AddCommand(cli.SnapshotCmd())
	if err := root.Execute(); err != nil {
		logrus.WithError(err).Error("universe-node exited with error")
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var env string
	var capacityShift int
	var snapshotEvery time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "run the asset universe daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appconfig.Load(env)
			if err != nil {
				return utils.Wrap(err, "load config")
			}
			level, err := logrus.ParseLevel(utils.EnvOrDefault("LOG_LEVEL", cfg.Logging.Level))
			if err == nil {
				logrus.SetLevel(level)
			}

			shift := capacityShift
			if shift == 0 {
				shift = cfg.Universe.CapacityShift
			}
			var capacity uint32
			if shift > 0 {
				capacity = uint32(1) << uint(shift)
			}

			u, err := core.New(core.Config{
				Capacity:    capacity,
				Persistence: core.NewFilePersistence(cfg.Universe.SnapshotDir),
			})
			if err != nil {
				return utils.Wrap(err, "allocate universe")
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ticker := time.NewTicker(snapshotEvery)
			defer ticker.Stop()

			logrus.WithFields(logrus.Fields{"capacity": u.Capacity()}).Info("universe-node serving")
			for {
				select {
				case <-ctx.Done():
					logrus.Info("universe-node shutting down, writing final snapshot")
					return u.Snapshot()
				case <-ticker.C:
					digest := u.Digest()
					if err := u.Snapshot(); err != nil {
						logrus.WithError(err).Error("periodic snapshot failed")
						continue
					}
					logrus.WithFields(logrus.Fields{"digest": digest}).Debug("periodic digest/snapshot complete")
				}
			}
		},
	}

	cmd.Flags().StringVar(&env, "env", "", "configuration environment overlay name")
	cmd.Flags().IntVar(&capacityShift, "capacity-shift", 0, "log2 of the slot table capacity (overrides config)")
	cmd.Flags().DurationVar(&snapshotEvery, "snapshot-interval", time.Minute, "how often to digest and snapshot the table")

	return cmd
}
