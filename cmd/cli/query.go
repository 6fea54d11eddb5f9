package cli

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/synnergy-network/asset-universe/core"
)

// newCorrelationID derives a wire-sized correlation ID from a freshly
// generated UUID (its first four bytes), so repeated invocations of the
// CLI against the same snapshot are unlikely to collide in a shared
// Responder's bookkeeping.
func newCorrelationID() uint32 {
	id := uuid.New()
	return binary.LittleEndian.Uint32(id[:4])
}

// stdoutResponder is a core.Responder that prints each response's raw
// payload to stdout; the CLI has no peer connection to deliver to.
type stdoutResponder struct{}

func (stdoutResponder) EnqueueResponse(peer core.Peer, payload []byte, msgType uint8, correlationID uint32) error {
	if msgType == core.MsgEndResponse {
		fmt.Println("-- end --")
		return nil
	}
	fmt.Printf("type=%d correlation=%d payload=%x\n", msgType, correlationID, payload)
	return nil
}

// QueryCmd returns the "query" subcommand, which runs one of the three
// read-only asset queries against a loaded snapshot.
func QueryCmd() *cobra.Command {
	var pkHex string
	var kind string
	var epoch int
	var tick uint32

	cmd := &cobra.Command{
		Use:   "query",
		Short: "query issued, owned, or possessed assets for a public key",
		RunE: func(cmd *cobra.Command, args []string) error {
			pk, err := parsePublicKey(pkHex)
			if err != nil {
				return err
			}
			if epoch < 0 {
				return fmt.Errorf("query requires an existing --epoch snapshot to load")
			}

			u, err := openUniverse(epoch)
			if err != nil {
				return err
			}

			r := stdoutResponder{}
			correlationID := newCorrelationID()
			switch kind {
			case "issued":
				return u.HandleRequestIssuedAssets(nil, correlationID, tick, pk, r)
			case "owned":
				return u.HandleRequestOwnedAssets(nil, correlationID, tick, pk, r)
			case "possessed":
				return u.HandleRequestPossessedAssets(nil, correlationID, tick, pk, r)
			default:
				return fmt.Errorf("unknown query kind %q (want issued, owned, or possessed)", kind)
			}
		},
	}

	cmd.Flags().StringVar(&pkHex, "key", "", "hex-encoded 32-byte public key")
	cmd.Flags().StringVar(&kind, "kind", "issued", "issued, owned, or possessed")
	cmd.Flags().IntVar(&epoch, "epoch", -1, "snapshot epoch to load and query against")
	cmd.Flags().Uint32Var(&tick, "tick", 0, "tick value to stamp responses with")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("epoch")

	return cmd
}
