package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// TransferCmd returns the "transfer" subcommand, which moves shares from
// a holding identified by its ownership/possession slot indices to a
// new owner, and writes the resulting snapshot.
func TransferCmd() *cobra.Command {
	var srcOwnershipIdx, srcPossessionIdx uint32
	var destinationHex string
	var shares int64
	var epoch int

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "transfer shares to a new owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			destination, err := parsePublicKey(destinationHex)
			if err != nil {
				return err
			}
			if epoch < 0 {
				return fmt.Errorf("transfer requires an existing --epoch snapshot to load")
			}

			u, err := openUniverse(epoch)
			if err != nil {
				return err
			}

			dstOwnershipIdx, dstPossessionIdx, err := u.TransferShareOwnershipAndPossession(srcOwnershipIdx, srcPossessionIdx, destination, shares, true)
			if err != nil {
				return err
			}
			if err := u.Snapshot(); err != nil {
				return err
			}

			logrus.WithFields(logrus.Fields{
				"dst_ownership":  dstOwnershipIdx,
				"dst_possession": dstPossessionIdx,
			}).Info("shares transferred")
			fmt.Printf("dst_ownership=%d dst_possession=%d\n", dstOwnershipIdx, dstPossessionIdx)
			return nil
		},
	}

	cmd.Flags().Uint32Var(&srcOwnershipIdx, "src-ownership", 0, "source ownership slot index")
	cmd.Flags().Uint32Var(&srcPossessionIdx, "src-possession", 0, "source possession slot index")
	cmd.Flags().StringVar(&destinationHex, "to", "", "hex-encoded 32-byte destination public key")
	cmd.Flags().Int64Var(&shares, "shares", 0, "number of shares to transfer")
	cmd.Flags().IntVar(&epoch, "epoch", -1, "snapshot epoch to load and transfer against")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("epoch")

	return cmd
}
