// Package cli implements the universe-cli subcommands used to issue and
// transfer assets, run queries, trigger end-of-epoch compaction, and
// manage snapshots against a locally loaded asset universe. There is no
// network daemon to dial: wire/RPC delivery is outside this module's
// scope, so the CLI operates directly on a Universe backed by a
// snapshot directory, loading the snapshot named by --epoch on start and
// saving on every mutating command.
package cli

import (
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/synnergy-network/asset-universe/core"
	"github.com/synnergy-network/asset-universe/pkg/utils"
)

var initOnce sync.Once

// initEnvironment loads a .env file (if present) and sets the logrus
// level from LOG_LEVEL, once per process. Subcommands call this before
// touching viper-sourced configuration.
func initEnvironment() {
	initOnce.Do(func() {
		_ = godotenv.Load()
		if lvl := utils.EnvOrDefault("LOG_LEVEL", ""); lvl != "" {
			if parsed, err := logrus.ParseLevel(lvl); err == nil {
				logrus.SetLevel(parsed)
			}
		}
		viper.SetEnvPrefix("UNIVERSE")
		viper.AutomaticEnv()
	})
}

// snapshotDir resolves the snapshot directory from UNIVERSE_SNAPSHOT_DIR,
// falling back to the current directory.
func snapshotDir() string {
	return utils.EnvOrDefault("UNIVERSE_SNAPSHOT_DIR", ".")
}

// capacity resolves the table capacity from UNIVERSE_CAPACITY_SHIFT. It
// returns zero when the shift is unset or not positive, which core.New
// treats as core.DefaultCapacity.
func capacity() uint32 {
	shift := utils.EnvOrDefaultInt("UNIVERSE_CAPACITY_SHIFT", 0)
	if shift <= 0 {
		return 0
	}
	return uint32(1) << uint(shift)
}

// openUniverse allocates a universe over the configured snapshot
// directory and, when epoch >= 0, loads that epoch's snapshot into it.
func openUniverse(epoch int) (*core.Universe, error) {
	initEnvironment()
	u, err := core.New(core.Config{
		Capacity:    capacity(),
		Persistence: core.NewFilePersistence(snapshotDir()),
	})
	if err != nil {
		return nil, utils.Wrap(err, "allocate universe")
	}
	if epoch >= 0 {
		if err := u.LoadSnapshot(epoch); err != nil {
			return nil, utils.Wrap(err, "load snapshot")
		}
	}
	return u, nil
}

// parsePublicKey decodes a hex-encoded 32-byte public key.
func parsePublicKey(s string) (core.PublicKey, error) {
	var pk core.PublicKey
	raw, err := hex.DecodeString(s)
	if err != nil {
		return pk, fmt.Errorf("invalid public key hex: %w", err)
	}
	if len(raw) != len(pk) {
		return pk, fmt.Errorf("public key must be %d bytes, got %d", len(pk), len(raw))
	}
	copy(pk[:], raw)
	return pk, nil
}
