package node

import (
	"fmt"
	"os"

	ipfsLog "github.com/ipfs/go-log/v2"
	"github.com/pierreleocadie/SecuraLedger/internal/config"
	"github.com/pierreleocadie/SecuraLedger/pkg/utils"
)

// CreateDataDirectory makes sure the directory holding the ledger documents exists.
func CreateDataDirectory(log *ipfsLog.ZapEventLogger, cfg *config.Config) (string, error) {
	dataDir, err := utils.SanitizePath(cfg.DataDir)
	if err != nil {
		log.Errorln("Error sanitizing the data directory path : ", err)
		return "", err
	}

	if err := os.MkdirAll(dataDir, os.FileMode(cfg.DirRights)); err != nil {
		log.Errorf("Error creating the data directory : %v", err)
		return "", fmt.Errorf("error creating the data directory : %w", err)
	}

	return dataDir, nil
}
