// Package keystore keeps the private key of every registered address and
// answers authorization queries against it.
package keystore

import (
	"encoding/json"

	ipfsLog "github.com/ipfs/go-log/v2"
	"github.com/pierreleocadie/SecuraLedger/internal/storage"
	"github.com/pierreleocadie/SecuraLedger/pkg/keypair"
	"github.com/pkg/errors"
)

// KeyStore maps addresses (public keys) to private keys.
type KeyStore struct {
	store  storage.Store
	log    *ipfsLog.ZapEventLogger
	scheme string
	bits   int
}

// NewKeyStore returns a key store persisted in store. New key pairs use
// scheme and, for RSA, bits.
func NewKeyStore(log *ipfsLog.ZapEventLogger, store storage.Store, scheme string, bits int) *KeyStore {
	return &KeyStore{
		store:  store,
		log:    log,
		scheme: scheme,
		bits:   bits,
	}
}

// GenerateKeyPair returns a fresh key pair as Base64 encoded DER strings.
func (ks *KeyStore) GenerateKeyPair() (privateKey string, publicKey string, err error) {
	keyPair, err := keypair.New(ks.scheme, ks.bits)
	if err != nil {
		ks.log.Errorln("Error generating key pair:", err)
		return "", "", err
	}

	privateKey, err = keyPair.PrivateKeyString()
	if err != nil {
		return "", "", err
	}
	publicKey, err = keyPair.PublicKeyString()
	if err != nil {
		return "", "", err
	}

	ks.log.Debugln("New key pair generated with scheme", keyPair.Scheme())
	return privateKey, publicKey, nil
}

// SavePrivateKey sets the private key of address, overwriting any previous
// value, and rewrites the whole registry.
func (ks *KeyStore) SavePrivateKey(address, privateKey string) error {
	unlock, err := ks.store.Lock()
	if err != nil {
		return err
	}
	defer unlock()

	keys, err := ks.load()
	if err != nil {
		return err
	}

	keys[address] = privateKey

	data, err := json.MarshalIndent(keys, "", "  ")
	if err != nil {
		return errors.Wrap(err, "error serializing private keys")
	}
	if err := ks.store.Save(data); err != nil {
		return err
	}

	ks.log.Debugf("Private key saved, %d addresses registered", len(keys))
	return nil
}

// Authorize reports whether suppliedPrivateKey is exactly the key saved for
// address. A missing registry or an unknown address is not an error.
func (ks *KeyStore) Authorize(address, suppliedPrivateKey string) (bool, error) {
	keys, err := ks.load()
	if err != nil {
		return false, err
	}

	privateKey, ok := keys[address]
	if !ok {
		ks.log.Debugln("Address not registered")
		return false, nil
	}

	return privateKey == suppliedPrivateKey, nil
}

// load returns the registry, empty if it was never saved.
func (ks *KeyStore) load() (map[string]string, error) {
	data, err := ks.store.Load()
	if errors.Is(err, storage.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, err
	}

	var keys map[string]string
	if err := json.Unmarshal(data, &keys); err != nil {
		ks.log.Errorln("Error deserializing private keys", err)
		return nil, storage.Corrupted(ks.store.Name(), err)
	}
	if keys == nil {
		keys = make(map[string]string)
	}

	return keys, nil
}
