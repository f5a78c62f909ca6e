// Package client sequences the key store and the ledger into the four user
// facing operations: register, authorize, transact and view.
package client

import (
	ipfsLog "github.com/ipfs/go-log/v2"
	"github.com/pierreleocadie/SecuraLedger/internal/keystore"
	"github.com/pierreleocadie/SecuraLedger/internal/ledger"
)

// Client runs the user operations against one key store and one ledger.
type Client struct {
	keys   *keystore.KeyStore
	ledger *ledger.Ledger
	log    *ipfsLog.ZapEventLogger
}

// NewClient returns a client over keys and l.
func NewClient(log *ipfsLog.ZapEventLogger, keys *keystore.KeyStore, l *ledger.Ledger) *Client {
	return &Client{
		keys:   keys,
		ledger: l,
		log:    log,
	}
}

// RegisterUser creates a key pair, records the private key under the public
// key and appends a block for it. The private key is not retrievable from the
// returned public key afterwards; the caller must hand it to the user.
func (c *Client) RegisterUser() (publicKey string, privateKey string, err error) {
	privateKey, publicKey, err = c.keys.GenerateKeyPair()
	if err != nil {
		return "", "", err
	}

	if err := c.keys.SavePrivateKey(publicKey, privateKey); err != nil {
		return "", "", err
	}

	if _, err := c.ledger.Append(publicKey); err != nil {
		return "", "", err
	}

	c.log.Infoln("User registered")
	return publicKey, privateKey, nil
}

// AuthorizeUser checks privateKey against the key recorded for publicKey.
func (c *Client) AuthorizeUser(publicKey, privateKey string) (bool, error) {
	ok, err := c.keys.Authorize(publicKey, privateKey)
	if err != nil {
		return false, err
	}

	if ok {
		c.log.Infoln("Authorization succeeded")
	} else {
		c.log.Warnln("Authorization failed")
	}
	return ok, nil
}

// AddTransaction records a transaction from publicKey. It returns
// ledger.ErrBlockNotFound when publicKey has no block.
func (c *Client) AddTransaction(publicKey, recipient, data string) error {
	return c.ledger.AddTransaction(publicKey, recipient, data)
}

// ViewBlockchain renders the whole chain.
func (c *Client) ViewBlockchain() (string, error) {
	return c.ledger.Render()
}
