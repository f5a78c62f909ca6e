package block

import (
	"bytes"
	"encoding/json"

	"github.com/pierreleocadie/SecuraLedger/internal/core/transaction"
)

// GenesisPrevHash is the previous hash of the first block of every chain.
const GenesisPrevHash = "0"

// Block is the ledger entry of one address. Field order is part of the hash.
type Block struct {
	Address      string                    `json:"Address"`
	Transactions []transaction.Transaction `json:"Transactions"`
	PreviousHash string                    `json:"PreviousHash"`
}

// NewBlock creates an empty block for the address, chained to prevBlockHash.
func NewBlock(address, prevBlockHash string) Block {
	return Block{
		Address:      address,
		Transactions: []transaction.Transaction{},
		PreviousHash: prevBlockHash,
	}
}

// AddTransaction appends a transaction to the block.
func (b *Block) AddTransaction(tx transaction.Transaction) {
	b.Transactions = append(b.Transactions, tx)
}

// IsGenesisBlock checks if the block is the first block of a chain
func (b Block) IsGenesisBlock() bool {
	return b.PreviousHash == GenesisPrevHash
}

// normalize makes an empty transaction list serialize as [] instead of null.
func (b Block) normalize() Block {
	if b.Transactions == nil {
		b.Transactions = []transaction.Transaction{}
	}
	return b
}

// Serialize converts the block into its canonical compact JSON form. A Block
// holds only strings, so the error is always nil; it is kept for symmetry
// with SerializeChain.
func (b Block) Serialize() ([]byte, error) {
	return encode(b.normalize(), false)
}

// SerializeChain converts the chain into the indented JSON document stored on disk.
func SerializeChain(chain []Block) ([]byte, error) {
	normalized := make([]Block, len(chain))
	for i, b := range chain {
		normalized[i] = b.normalize()
	}
	return encode(normalized, true)
}

// DeserializeChain converts a stored chain document back into blocks.
func DeserializeChain(data []byte) ([]Block, error) {
	var chain []Block
	if err := json.Unmarshal(data, &chain); err != nil {
		return nil, err
	}

	for i := range chain {
		chain[i] = chain[i].normalize()
	}
	return chain, nil
}

// encode marshals v without HTML escaping and without the trailing newline
// added by json.Encoder.
func encode(v any, indent bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}

	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
