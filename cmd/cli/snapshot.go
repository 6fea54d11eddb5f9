package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/synnergy-network/asset-universe/core"
)

// SnapshotCmd returns the "snapshot" subcommand, which reports the
// digest of a loaded snapshot without mutating it.
func SnapshotCmd() *cobra.Command {
	var epoch int

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "print the Merkle digest of a snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if epoch < 0 {
				return fmt.Errorf("snapshot requires an existing --epoch snapshot to load")
			}

			u, err := openUniverse(epoch)
			if err != nil {
				return err
			}

			digest := u.Digest()
			fmt.Printf("epoch=%d digest=%x name=%s\n", u.Epoch(), digest, core.SnapshotName(epoch))
			return nil
		},
	}

	cmd.Flags().IntVar(&epoch, "epoch", -1, "snapshot epoch to load and digest")
	_ = cmd.MarkFlagRequired("epoch")

	return cmd
}
