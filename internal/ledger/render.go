package ledger

import (
	"fmt"
	"io"
	"strings"

	"github.com/pierreleocadie/SecuraLedger/internal/core/block"
)

// Render returns the chain in its human readable form.
func (l *Ledger) Render() (string, error) {
	var sb strings.Builder
	if err := l.RenderTo(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderTo writes the chain in its human readable form to w.
func (l *Ledger) RenderTo(w io.Writer) error {
	chain, err := l.Load()
	if err != nil {
		return err
	}

	for _, b := range chain {
		if err := renderBlock(w, b); err != nil {
			return err
		}
	}
	return nil
}

func renderBlock(w io.Writer, b block.Block) error {
	if _, err := fmt.Fprintf(w, "Block %s:\n", b.Address); err != nil {
		return err
	}
	for _, tx := range b.Transactions {
		if _, err := fmt.Fprintf(w, "  - Transaction: from %s to %s, data: %s\n", tx.Sender, tx.Recipient, tx.Data); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "  Previous hash: %s\n", b.PreviousHash)
	return err
}
