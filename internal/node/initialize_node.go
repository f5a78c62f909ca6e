package node

import (
	"io"
	"os"

	ipfsLog "github.com/ipfs/go-log/v2"
	"github.com/pierreleocadie/SecuraLedger/internal/client"
	"github.com/pierreleocadie/SecuraLedger/internal/config"
	"github.com/pierreleocadie/SecuraLedger/internal/keystore"
	"github.com/pierreleocadie/SecuraLedger/internal/ledger"
	"github.com/pierreleocadie/SecuraLedger/internal/storage"
	"github.com/pierreleocadie/SecuraLedger/pkg/utils"
)

// Node holds the components built from one configuration.
type Node struct {
	Client   *client.Client
	Ledger   *ledger.Ledger
	KeyStore *keystore.KeyStore

	closer io.Closer
}

// Initialize opens the configured backend and wires the key store, the ledger
// and the client on top of it. Close must be called once done.
func Initialize(log *ipfsLog.ZapEventLogger, cfg *config.Config) (*Node, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dataDir, err := CreateDataDirectory(log, cfg)
	if err != nil {
		return nil, err
	}

	chainStore, keyStore, closer, err := openStores(log, cfg, dataDir)
	if err != nil {
		return nil, err
	}

	keys := keystore.NewKeyStore(ipfsLog.Logger("keystore"), keyStore, cfg.KeyScheme, cfg.KeyBits)
	l := ledger.NewLedger(ipfsLog.Logger("ledger"), chainStore)

	log.Debugf("Node initialized with the %s backend in %s", cfg.Backend, dataDir)
	return &Node{
		Client:   client.NewClient(ipfsLog.Logger("client"), keys, l),
		Ledger:   l,
		KeyStore: keys,
		closer:   closer,
	}, nil
}

// Close releases the backend.
func (n *Node) Close() error {
	if n.closer == nil {
		return nil
	}
	return n.closer.Close()
}

func openStores(log *ipfsLog.ZapEventLogger, cfg *config.Config, dataDir string) (storage.Store, storage.Store, io.Closer, error) {
	storeLog := ipfsLog.Logger("storage")

	chainPath, err := utils.DocumentPath(dataDir, cfg.BlockchainFile)
	if err != nil {
		return nil, nil, nil, err
	}
	keysPath, err := utils.DocumentPath(dataDir, cfg.PrivateKeysFile)
	if err != nil {
		return nil, nil, nil, err
	}

	switch cfg.Backend {
	case config.BackendPebble, config.BackendLevelDB:
		dbPath, err := utils.DocumentPath(dataDir, cfg.DatabaseDir)
		if err != nil {
			return nil, nil, nil, err
		}

		if cfg.Backend == config.BackendPebble {
			db, err := storage.OpenPebbleDB(storeLog, dbPath)
			if err != nil {
				return nil, nil, nil, err
			}
			return storage.NewPebbleStore(storeLog, db, cfg.BlockchainFile),
				storage.NewPebbleStore(storeLog, db, cfg.PrivateKeysFile),
				db, nil
		}

		db, err := storage.OpenLevelDB(storeLog, dbPath)
		if err != nil {
			return nil, nil, nil, err
		}
		return storage.NewLevelDBStore(storeLog, db, cfg.BlockchainFile),
			storage.NewLevelDBStore(storeLog, db, cfg.PrivateKeysFile),
			db, nil
	default:
		perm := os.FileMode(cfg.FileRights)
		log.Debugln("Using flat file documents in", dataDir)
		return storage.NewFileStore(storeLog, chainPath, perm),
			storage.NewFileStore(storeLog, keysPath, perm),
			nil, nil
	}
}
