package transaction

// Transaction moves opaque data from the owner of a block to a recipient.
// It has no identity of its own and is never modified once appended.
type Transaction struct {
	Sender    string `json:"Sender"`
	Recipient string `json:"Recipient"`
	Data      string `json:"Data"`
}

// NewTransaction creates a transaction sent by the given address.
func NewTransaction(sender, recipient, data string) Transaction {
	return Transaction{
		Sender:    sender,
		Recipient: recipient,
		Data:      data,
	}
}
