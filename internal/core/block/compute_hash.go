package block

import (
	"crypto/sha256"
	"encoding/hex"
)

// ComputeHash returns the SHA-256 of the canonical serialization of the block
// as 64 lowercase hex characters. Append and any later check of PreviousHash
// must both go through this function.
func ComputeHash(b Block) string {
	data, err := b.Serialize()
	if err != nil {
		// unreachable, see Serialize
		panic(err)
	}

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
