package securaledger

import (
	"github.com/pierreleocadie/SecuraLedger/internal/client"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var errInvalidKey = errors.New("invalid key")

var authorizeCmd = &cobra.Command{
	Use:   "authorize [public key] [private key]",
	Short: "Check a private key against a registered user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := openNode()
		if err != nil {
			return err
		}
		defer n.Close()

		return authorize(cmd, n.Client, args[0], args[1])
	},
}

func authorize(cmd *cobra.Command, c *client.Client, publicKey, privateKey string) error {
	ok, err := c.AuthorizeUser(publicKey, privateKey)
	if err != nil {
		return err
	}
	if !ok {
		pterm.Error.WithWriter(cmd.OutOrStdout()).Println("Invalid key.")
		return errInvalidKey
	}

	pterm.Success.WithWriter(cmd.OutOrStdout()).Println("Authorization successful.")
	return nil
}
