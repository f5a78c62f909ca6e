package securaledger

import (
	"fmt"
	"os"
	"strings"

	ipfsLog "github.com/ipfs/go-log/v2"
	"github.com/pierreleocadie/SecuraLedger/internal/config"
	"github.com/pierreleocadie/SecuraLedger/internal/node"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var log = ipfsLog.Logger("securaledger")

var RootCmd = &cobra.Command{
	Use:   "securaledger",
	Short: "Hash-linked ledger of users and transactions",
	Long: `securaledger registers users as blocks of a hash-linked chain and records
their transactions. The chain and the private keys live in two JSON documents.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return node.SetupLogger(cfg.LogLevel)
	},
}

// loadConfig reads the yaml file named by --config, then applies the flags
// and SECURALEDGER_* environment variables on top of it.
func loadConfig() (*config.Config, error) {
	cfg, err := node.LoadConfig(viper.GetString("config"), log)
	if err != nil {
		return nil, err
	}

	if viper.IsSet("data-dir") {
		cfg.DataDir = viper.GetString("data-dir")
	}
	if viper.IsSet("backend") {
		cfg.Backend = viper.GetString("backend")
	}
	if viper.IsSet("log-level") {
		cfg.LogLevel = viper.GetString("log-level")
	}
	if viper.IsSet("key-scheme") {
		cfg.KeyScheme = viper.GetString("key-scheme")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openNode builds the ledger components for one command run.
func openNode() (*node.Node, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return node.Initialize(log, cfg)
}

func init() {
	RootCmd.PersistentFlags().StringP("config", "c", "", "path to the yaml config file")
	RootCmd.PersistentFlags().StringP("data-dir", "d", config.DataDir, "directory holding the ledger documents")
	RootCmd.PersistentFlags().StringP("backend", "b", config.BackendFile,
		fmt.Sprintf("storage backend (%s|%s|%s)", config.BackendFile, config.BackendLevelDB, config.BackendPebble))
	RootCmd.PersistentFlags().StringP("log-level", "l", config.LogLevel, "set log level (debug|info|warn|error)")
	RootCmd.PersistentFlags().String("key-scheme", "rsa", "key pair scheme for new users (rsa|ed25519)")
	if err := viper.BindPFlags(RootCmd.PersistentFlags()); err != nil {
		log.Errorln("Failed to bind rootCmd flags", err)
	}

	RootCmd.SilenceUsage = true
	RootCmd.SilenceErrors = true

	viper.SetEnvPrefix("securaledger")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	RootCmd.AddCommand(registerCmd)
	RootCmd.AddCommand(authorizeCmd)
	RootCmd.AddCommand(txCmd)
	RootCmd.AddCommand(viewCmd)
	RootCmd.AddCommand(demoCmd)
	RootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Errorln("An error occurred:", err)
		os.Exit(1)
	}
}
