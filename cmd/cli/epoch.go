package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/synnergy-network/asset-universe/core"
)

// EpochCmd returns the "epoch" subcommand, which loads a snapshot, runs
// end-of-epoch compaction, and writes the compacted snapshot back out.
func EpochCmd() *cobra.Command {
	var epoch int

	cmd := &cobra.Command{
		Use:   "epoch",
		Short: "compact the table at the end of an epoch",
		RunE: func(cmd *cobra.Command, args []string) error {
			if epoch < 0 {
				return fmt.Errorf("epoch requires an existing --epoch snapshot to load")
			}

			u, err := openUniverse(epoch)
			if err != nil {
				return err
			}

			scratch := make([]core.Slot, u.Capacity())
			if err := u.EndEpoch(scratch); err != nil {
				return err
			}
			if err := u.Snapshot(); err != nil {
				return err
			}

			logrus.WithField("new_epoch", u.Epoch()).Info("end-of-epoch compaction complete")
			fmt.Printf("new_epoch=%d\n", u.Epoch())
			return nil
		},
	}

	cmd.Flags().IntVar(&epoch, "epoch", -1, "snapshot epoch to load and compact")
	_ = cmd.MarkFlagRequired("epoch")

	return cmd
}
