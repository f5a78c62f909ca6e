// Package ledger owns the chain of blocks: one block per address, each linked
// to the hash of its predecessor, persisted as a single JSON document.
//
// Every operation is a load-mutate-save cycle over the whole document. The
// link of block i is computed when block i is appended; adding a transaction
// to an earlier block later changes that block's hash without touching the
// links that follow it.
package ledger

import (
	ipfsLog "github.com/ipfs/go-log/v2"
	"github.com/pierreleocadie/SecuraLedger/internal/core/block"
	"github.com/pierreleocadie/SecuraLedger/internal/core/transaction"
	"github.com/pierreleocadie/SecuraLedger/internal/storage"
	"github.com/pkg/errors"
)

// ErrBlockNotFound is returned when no block carries the requested address.
var ErrBlockNotFound = errors.New("block not found")

// Ledger appends blocks to and reads blocks from a chain kept in a Store.
type Ledger struct {
	store storage.Store
	log   *ipfsLog.ZapEventLogger
}

// NewLedger returns a ledger over the chain document held by store.
func NewLedger(log *ipfsLog.ZapEventLogger, store storage.Store) *Ledger {
	return &Ledger{
		store: store,
		log:   log,
	}
}

// Load reads the persisted chain. A chain that was never saved is empty.
func (l *Ledger) Load() ([]block.Block, error) {
	data, err := l.store.Load()
	if errors.Is(err, storage.ErrNotExist) {
		l.log.Debugln("No chain persisted yet")
		return []block.Block{}, nil
	}
	if err != nil {
		return nil, err
	}

	chain, err := block.DeserializeChain(data)
	if err != nil {
		l.log.Errorln("Error deserializing chain", err)
		return nil, storage.Corrupted(l.store.Name(), err)
	}
	if chain == nil {
		chain = []block.Block{}
	}

	l.log.Debugf("Chain loaded, %d blocks", len(chain))
	return chain, nil
}

// Save overwrites the persisted chain.
func (l *Ledger) Save(chain []block.Block) error {
	data, err := block.SerializeChain(chain)
	if err != nil {
		return errors.Wrap(err, "error serializing chain")
	}

	if err := l.store.Save(data); err != nil {
		return err
	}

	l.log.Debugf("Chain saved, %d blocks", len(chain))
	return nil
}

// Append adds an empty block for address at the end of the chain, linked to
// the hash of the current last block.
func (l *Ledger) Append(address string) (block.Block, error) {
	unlock, err := l.store.Lock()
	if err != nil {
		return block.Block{}, err
	}
	defer unlock()

	chain, err := l.Load()
	if err != nil {
		return block.Block{}, err
	}

	prevHash := block.GenesisPrevHash
	if len(chain) > 0 {
		prevHash = block.ComputeHash(chain[len(chain)-1])
	}

	newBlock := block.NewBlock(address, prevHash)
	chain = append(chain, newBlock)

	if err := l.Save(chain); err != nil {
		return block.Block{}, err
	}

	if newBlock.IsGenesisBlock() {
		l.log.Infof("Genesis block appended for %s", address)
	} else {
		l.log.Infof("Block %d appended, previous hash %s", len(chain)-1, prevHash)
	}
	return newBlock, nil
}

// FindBlock returns the first block whose address matches.
func (l *Ledger) FindBlock(address string) (block.Block, error) {
	chain, err := l.Load()
	if err != nil {
		return block.Block{}, err
	}

	i := findBlock(chain, address)
	if i < 0 {
		return block.Block{}, ErrBlockNotFound
	}
	return chain[i], nil
}

// AddTransaction appends {address, recipient, data} to the first block of
// address. The chain is left untouched when there is no such block.
func (l *Ledger) AddTransaction(address, recipient, data string) error {
	unlock, err := l.store.Lock()
	if err != nil {
		return err
	}
	defer unlock()

	chain, err := l.Load()
	if err != nil {
		return err
	}

	i := findBlock(chain, address)
	if i < 0 {
		l.log.Warnln("No block found for address", address)
		return ErrBlockNotFound
	}

	chain[i].AddTransaction(transaction.NewTransaction(address, recipient, data))
	if err := l.Save(chain); err != nil {
		return err
	}

	l.log.Infof("Transaction added to block %d", i)
	return nil
}

// findBlock returns the index of the first block of address, or -1.
func findBlock(chain []block.Block, address string) int {
	for i, b := range chain {
		if b.Address == address {
			return i
		}
	}
	return -1
}
