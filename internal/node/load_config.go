package node

import (
	"fmt"

	ipfsLog "github.com/ipfs/go-log/v2"
	"github.com/pierreleocadie/SecuraLedger/internal/config"
)

// LoadConfig loads the yaml config file, or the defaults when the path is empty.
func LoadConfig(yamlConfigFilePath string, log *ipfsLog.ZapEventLogger) (*config.Config, error) {
	if yamlConfigFilePath == "" {
		log.Debugln("No config file given, using defaults")
	}

	cfg, err := config.LoadConfig(yamlConfigFilePath)
	if err != nil {
		log.Errorln("Error loading config file : ", err)
		return nil, fmt.Errorf("error loading config file : %w", err)
	}

	return cfg, nil
}

// SetupLogger applies the configured level to every ledger logger.
func SetupLogger(level string) error {
	lvl, err := ipfsLog.LevelFromString(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %s", level)
	}
	ipfsLog.SetAllLoggers(lvl)
	return nil
}
