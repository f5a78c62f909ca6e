package securaledger

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new user and append its block",
	Args:  cobra.NoArgs,
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
		return nil
	},
}

func printRegistration(cmd *cobra.Command, publicKey, privateKey string) {
	out := cmd.OutOrStdout()
	pterm.Success.WithWriter(out).Println("User registered")
	pterm.Info.WithWriter(out).Printfln("Your public key: %s", publicKey)
	pterm.Warning.WithWriter(out).Printfln("Your private key: %s", privateKey)
	pterm.Fprintln(out, "Keep the private key: it is shown only once and is required to authorize.")
}
