package securaledger

import (
	"github.com/pierreleocadie/SecuraLedger/internal/client"
	"github.com/pierreleocadie/SecuraLedger/internal/ledger"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var txCmd = &cobra.Command{
	Use:   "tx [public key] [private key] [recipient] [data]",
	Short: "Authorize, then add a transaction to the user's block",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := openNode()
		if err != nil {
			return err
		}
		defer n.Close()

		if err := authorize(cmd, n.Client, args[0], args[1]); err != nil {
			return err
		}
		return addTransaction(cmd, n.Client, args[0], args[2], args[3])
	},
}

// addTransaction reports a missing block to the operator without failing.
func addTransaction(cmd *cobra.Command, c *client.Client, publicKey, recipient, data string) error {
	err := c.AddTransaction(publicKey, recipient, data)
	if errors.Is(err, ledger.ErrBlockNotFound) {
		pterm.Warning.WithWriter(cmd.OutOrStdout()).Println("Block not found.")
		return nil
	}
	if err != nil {
		return err
	}

	pterm.Success.WithWriter(cmd.OutOrStdout()).Println("Transaction added.")
	return nil
}
