package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// IssueCmd returns the "issue" subcommand, which issues a new asset to
// an issuer's public key and writes the resulting snapshot.
func IssueCmd() *cobra.Command {
	var issuerHex, name, unit string
	var decimals int8
	var shares int64
	var managingContractIndex uint16
	var epoch int

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "issue a new asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			issuer, err := parsePublicKey(issuerHex)
			if err != nil {
				return err
			}
			var nameBytes, unitBytes [7]byte
			copy(nameBytes[:], name)
			copy(unitBytes[:], unit)
			var unitSigned [7]int8
			for i, b := range unitBytes {
				unitSigned[i] = int8(b)
			}

			u, err := openUniverse(epoch)
			if err != nil {
				return err
			}

			issuanceIdx, ownershipIdx, possessionIdx, err := u.IssueAsset(issuer, nameBytes, decimals, unitSigned, shares, managingContractIndex)
			if err != nil {
				return err
			}
			if err := u.Snapshot(); err != nil {
				return err
			}

			logrus.WithFields(logrus.Fields{
				"issuance":   issuanceIdx,
				"ownership":  ownershipIdx,
				"possession": possessionIdx,
			}).Info("asset issued")
			fmt.Printf("issuance=%d ownership=%d possession=%d\n", issuanceIdx, ownershipIdx, possessionIdx)
			return nil
		},
	}

	cmd.Flags().StringVar(&issuerHex, "issuer", "", "hex-encoded 32-byte issuer public key")
	cmd.Flags().StringVar(&name, "name", "", "asset name (up to 7 bytes)")
	cmd.Flags().StringVar(&unit, "unit", "", "unit of measurement (up to 7 bytes)")
	cmd.Flags().Int8Var(&decimals, "decimals", 0, "number of decimal places")
	cmd.Flags().Int64Var(&shares, "shares", 0, "number of shares to issue")
	cmd.Flags().Uint16Var(&managingContractIndex, "contract-index", 0, "managing contract index")
	cmd.Flags().IntVar(&epoch, "epoch", -1, "snapshot epoch to load before issuing (-1 for a fresh table)")
	_ = cmd.MarkFlagRequired("issuer")

	return cmd
}
