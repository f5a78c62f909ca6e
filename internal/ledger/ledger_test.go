package ledger

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	ipfsLog "github.com/ipfs/go-log/v2"
	"github.com/pierreleocadie/SecuraLedger/internal/core/block"
	"github.com/pierreleocadie/SecuraLedger/internal/core/transaction"
	"github.com/pierreleocadie/SecuraLedger/internal/storage"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var log = ipfsLog.Logger("ledger_test")

func newTestLedger() (*Ledger, *storage.MemoryStore) {
	store := storage.NewMemoryStore("blockchain.json")
	return NewLedger(log, store), store
}

func TestLoadEmpty(t *testing.T) {
	l, _ := newTestLedger()

	chain, err := l.Load()
	require.NoError(t, err)
	assert.NotNil(t, chain)
	assert.Empty(t, chain)
}

func TestAppendLinksBlocks(t *testing.T) {
	l, _ := newTestLedger()

	addresses := []string{"addr1", "addr2", "addr3", "addr4"}
	for _, addr := range addresses {
		_, err := l.Append(addr)
		require.NoError(t, err)
	}

	chain, err := l.Load()
	require.NoError(t, err)
	require.Len(t, chain, len(addresses))

	assert.Equal(t, block.GenesisPrevHash, chain[0].PreviousHash)
	for i := range chain {
		assert.Equal(t, addresses[i], chain[i].Address)
		assert.Empty(t, chain[i].Transactions)
		if i > 0 {
			assert.Equal(t, block.ComputeHash(chain[i-1]), chain[i].PreviousHash, "block %d", i)
		}
	}
}

func TestAppendReturnsBlock(t *testing.T) {
	l, _ := newTestLedger()

	first, err := l.Append("addr1")
	require.NoError(t, err)
	assert.Equal(t, block.NewBlock("addr1", block.GenesisPrevHash), first)

	second, err := l.Append("addr2")
	require.NoError(t, err)
	assert.Equal(t, block.ComputeHash(first), second.PreviousHash)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	l, _ := newTestLedger()

	first := block.NewBlock("addr1", block.GenesisPrevHash)
	first.AddTransaction(transaction.NewTransaction("addr1", "bob", "hello"))
	chain := []block.Block{first, block.NewBlock("addr2", block.ComputeHash(first))}

	require.NoError(t, l.Save(chain))
	loaded, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, chain, loaded)
}

func TestFindBlock(t *testing.T) {
	l, _ := newTestLedger()

	_, err := l.FindBlock("addr1")
	assert.True(t, errors.Is(err, ErrBlockNotFound))

	_, err = l.Append("addr1")
	require.NoError(t, err)
	_, err = l.Append("addr2")
	require.NoError(t, err)

	b, err := l.FindBlock("addr2")
	require.NoError(t, err)
	assert.Equal(t, "addr2", b.Address)

	_, err = l.FindBlock("addr3")
	assert.True(t, errors.Is(err, ErrBlockNotFound))
}

func TestDuplicateAddressFirstMatchWins(t *testing.T) {
	l, _ := newTestLedger()

	for _, addr := range []string{"dup", "other", "dup"} {
		_, err := l.Append(addr)
		require.NoError(t, err)
	}

	require.NoError(t, l.AddTransaction("dup", "bob", "hello"))

	chain, err := l.Load()
	require.NoError(t, err)
	require.Len(t, chain, 3)
	assert.Len(t, chain[0].Transactions, 1)
	assert.Empty(t, chain[2].Transactions)

	b, err := l.FindBlock("dup")
	require.NoError(t, err)
	assert.Equal(t, block.GenesisPrevHash, b.PreviousHash)
}

func TestAddTransaction(t *testing.T) {
	l, _ := newTestLedger()

	_, err := l.Append("addr1")
	require.NoError(t, err)
	_, err = l.Append("addr2")
	require.NoError(t, err)
	before, err := l.Load()
	require.NoError(t, err)

	require.NoError(t, l.AddTransaction("addr1", "bob", "hello"))
	require.NoError(t, l.AddTransaction("addr1", "carol", "world"))

	chain, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, []transaction.Transaction{
		{Sender: "addr1", Recipient: "bob", Data: "hello"},
		{Sender: "addr1", Recipient: "carol", Data: "world"},
	}, chain[0].Transactions)
	assert.Equal(t, before[1], chain[1])

	// links are not recomputed when an earlier block changes
	assert.Equal(t, block.ComputeHash(before[0]), chain[1].PreviousHash)
	assert.NotEqual(t, block.ComputeHash(chain[0]), chain[1].PreviousHash)
}

func TestAddTransactionUnknownAddress(t *testing.T) {
	l, store := newTestLedger()

	_, err := l.Append("addr1")
	require.NoError(t, err)
	before, err := store.Load()
	require.NoError(t, err)

	err = l.AddTransaction("unknown", "bob", "hello")
	assert.True(t, errors.Is(err, ErrBlockNotFound))

	after, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestAddTransactionEmptyChain(t *testing.T) {
	l, store := newTestLedger()

	err := l.AddTransaction("addr1", "bob", "hello")
	assert.True(t, errors.Is(err, ErrBlockNotFound))

	_, err = store.Load()
	assert.True(t, errors.Is(err, storage.ErrNotExist), "nothing must be written")
}

func TestCorruptedChain(t *testing.T) {
	for _, doc := range []string{"not json", `{"Address": "addr1"}`, `[{"Address": 12}]`} {
		l, store := newTestLedger()
		require.NoError(t, store.Save([]byte(doc)))

		_, err := l.Load()
		assert.True(t, errors.Is(err, storage.ErrDataCorruption), "%q: got %v", doc, err)

		_, err = l.Append("addr1")
		assert.True(t, errors.Is(err, storage.ErrDataCorruption), "%q: got %v", doc, err)

		err = l.AddTransaction("addr1", "bob", "hello")
		assert.True(t, errors.Is(err, storage.ErrDataCorruption), "%q: got %v", doc, err)

		data, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, doc, string(data))
	}
}

func TestLedgerOnFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blockchain.json")
	l := NewLedger(log, storage.NewFileStore(log, path, 0600))

	_, err := l.Append("addr1")
	require.NoError(t, err)
	require.NoError(t, l.AddTransaction("addr1", "bob", "hello"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[
  {
    "Address": "addr1",
    "Transactions": [
      {
        "Sender": "addr1",
        "Recipient": "bob",
        "Data": "hello"
      }
    ],
    "PreviousHash": "0"
  }
]`, string(data))

	// a fresh ledger over the same file sees the same chain
	reopened := NewLedger(log, storage.NewFileStore(log, path, 0600))
	b, err := reopened.FindBlock("addr1")
	require.NoError(t, err)
	assert.Len(t, b.Transactions, 1)
}

func TestAppendLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blockchain.json")
	l := NewLedger(log, storage.NewFileStore(log, path, 0600))

	// another store on the same document holds the lock
	unlock, err := storage.NewFileStore(log, path, 0600).Lock()
	require.NoError(t, err)

	_, err = l.Append("addr1")
	assert.True(t, errors.Is(err, storage.ErrLocked), "got %v", err)
	assert.NoFileExists(t, path)

	unlock()
	_, err = l.Append("addr1")
	require.NoError(t, err)
}

const crashedHolderEnv = "LEDGER_TEST_CRASHED_HOLDER"

// TestCrashedLockHolder is run as a child process by
// TestAppendAfterHolderCrash. It exits in the middle of a cycle, with the
// lock still taken.
func TestCrashedLockHolder(t *testing.T) {
	path := os.Getenv(crashedHolderEnv)
	if path == "" {
		t.Skip("only runs as a child process")
	}

	if _, err := storage.NewFileStore(log, path, 0600).Lock(); err != nil {
		os.Exit(1)
	}
	os.Exit(0)
}

func TestAppendAfterHolderCrash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blockchain.json")
	l := NewLedger(log, storage.NewFileStore(log, path, 0600))
	_, err := l.Append("addr1")
	require.NoError(t, err)

	cmd := exec.Command(os.Args[0], "-test.run=^TestCrashedLockHolder$")
	cmd.Env = append(os.Environ(), crashedHolderEnv+"="+path)
	require.NoError(t, cmd.Run())

	_, err = l.Append("addr2")
	require.NoError(t, err)

	chain, err := l.Load()
	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Equal(t, block.ComputeHash(chain[0]), chain[1].PreviousHash)

	require.NoError(t, l.AddTransaction("addr1", "bob", "hello"))
}

func TestRender(t *testing.T) {
	l, _ := newTestLedger()

	out, err := l.Render()
	require.NoError(t, err)
	assert.Empty(t, out)

	first, err := l.Append("addr1")
	require.NoError(t, err)
	_, err = l.Append("addr2")
	require.NoError(t, err)
	require.NoError(t, l.AddTransaction("addr1", "bob", "hello"))

	out, err = l.Render()
	require.NoError(t, err)
	assert.Equal(t, "Block addr1:\n"+
		"  - Transaction: from addr1 to bob, data: hello\n"+
		"  Previous hash: 0\n"+
		"Block addr2:\n"+
		"  Previous hash: "+block.ComputeHash(first)+"\n", out)
}
