package securaledger

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	demoRecipient = "recipient_address"
	demoData      = "Transaction data"
)

const privateKeyPrompt = "Enter your private key to authorize"

// promptPrivateKey asks the operator to type the private key back. Input that
// is not a terminal, such as a pipe, is read as a single line.
func promptPrivateKey(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return pterm.DefaultInteractiveTextInput.WithDefaultText(privateKeyPrompt).Show()
	}

	pterm.Fprintln(cmd.OutOrStdout(), privateKeyPrompt+":")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", errors.Wrap(err, "error reading private key")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Register, authorize, add one transaction and print the chain",
	Long: `demo runs the whole flow once: it registers a user, asks for the private key
it just printed, and on success adds a transaction to ` + demoRecipient + ` before
printing the chain.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := openNode()
		if err != nil {
			return err
		}
		defer n.Close()

		publicKey, privateKey, err := n.Client.RegisterUser()
		if err != nil {
			return err
		}
		printRegistration(cmd, publicKey, privateKey)

		supplied, err := promptPrivateKey(cmd)
		if err != nil {
			return err
		}

		if err := authorize(cmd, n.Client, publicKey, supplied); err != nil {
			return err
		}
		if err := addTransaction(cmd, n.Client, publicKey, demoRecipient, demoData); err != nil {
			return err
		}
		return view(cmd, n.Client)
	},
}
