package securaledger

import (
	"fmt"

	"github.com/pierreleocadie/SecuraLedger/internal/client"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Print the whole chain",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := openNode()
		if err != nil {
			return err
		}
		defer n.Close()

		return view(cmd, n.Client)
	},
}

// view prints the chain verbatim: transaction data is not run through pterm's
// color tag parser.
func view(cmd *cobra.Command, c *client.Client) error {
	chain, err := c.ViewBlockchain()
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), chain)
	return err
}
