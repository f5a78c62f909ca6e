package node

import (
	"path/filepath"
	"testing"

	ipfsLog "github.com/ipfs/go-log/v2"
	"github.com/pierreleocadie/SecuraLedger/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var log = ipfsLog.Logger("node_test")

func testConfig(t *testing.T, backend string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.DataDir = filepath.Join(t.TempDir(), "data")
	cfg.Backend = backend
	return cfg
}

func TestInitializeBackends(t *testing.T) {
	for _, backend := range []string{config.BackendFile, config.BackendPebble, config.BackendLevelDB} {
		t.Run(backend, func(t *testing.T) {
			cfg := testConfig(t, backend)

			n, err := Initialize(log, cfg)
			require.NoError(t, err)

			publicKey, privateKey, err := n.Client.RegisterUser()
			require.NoError(t, err)
			require.NoError(t, n.Close())

			// state survives a restart
			n, err = Initialize(log, cfg)
			require.NoError(t, err)
			defer n.Close()

			ok, err := n.Client.AuthorizeUser(publicKey, privateKey)
			require.NoError(t, err)
			assert.True(t, ok)

			b, err := n.Ledger.FindBlock(publicKey)
			require.NoError(t, err)
			assert.Equal(t, "0", b.PreviousHash)
		})
	}
}

func TestInitializeFileBackendLayout(t *testing.T) {
	cfg := testConfig(t, config.BackendFile)

	n, err := Initialize(log, cfg)
	require.NoError(t, err)
	defer n.Close()

	_, _, err = n.Client.RegisterUser()
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(cfg.DataDir, config.BlockchainFile))
	assert.FileExists(t, filepath.Join(cfg.DataDir, config.PrivateKeysFile))
}

func TestInitializeInvalidConfig(t *testing.T) {
	cfg := testConfig(t, "sqlite")

	_, err := Initialize(log, cfg)
	assert.ErrorContains(t, err, "invalid backend")
}

func TestSetupLogger(t *testing.T) {
	assert.NoError(t, SetupLogger("debug"))
	assert.NoError(t, SetupLogger("info"))
	assert.Error(t, SetupLogger("verbose"))
}

func TestInitializeRejectsNestedDocument(t *testing.T) {
	cfg := testConfig(t, config.BackendFile)
	cfg.BlockchainFile = "../blockchain.json"

	_, err := Initialize(log, cfg)
	assert.ErrorContains(t, err, "invalid document name")
}
