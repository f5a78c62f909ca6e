// Package keypair provides utilities for generating and exporting the key pairs
// that identify ledger users.
package keypair

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"fmt"
)

const (
	SchemeRSA     = "rsa"
	SchemeEd25519 = "ed25519"

	// DefaultRSABits matches the key size of the ledgers this tool reads. It is
	// far too small for anything but teaching.
	DefaultRSABits = 512
)

// KeyPair represents the interface to interact with a user key pair.
type KeyPair interface {
	Scheme() string
	PrivateKeyToBytes() ([]byte, error)
	PublicKeyToBytes() ([]byte, error)
	PrivateKeyString() (string, error)
	PublicKeyString() (string, error)
}

// New generates a key pair for the given scheme. bits is only used by the RSA scheme.
func New(scheme string, bits int) (KeyPair, error) {
	switch scheme {
	case SchemeRSA, "":
		return NewRSAKeyPair(bits)
	case SchemeEd25519:
		return NewEd25519KeyPair()
	default:
		return nil, fmt.Errorf("unknown key scheme %q", scheme)
	}
}

// rsaKeyPair is a struct that encapsulates an RSA private and public key pair.
type rsaKeyPair struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
}

// NewRSAKeyPair initializes a new RSA key pair with a modulus of the given size.
// A non-positive size falls back to DefaultRSABits.
func NewRSAKeyPair(bits int) (KeyPair, error) {
	if bits <= 0 {
		bits = DefaultRSABits
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %d-bit RSA key: %w", bits, err)
	}

	return &rsaKeyPair{
		privateKey: privateKey,
		publicKey:  &privateKey.PublicKey,
	}, nil
}

func (keyPair *rsaKeyPair) Scheme() string {
	return SchemeRSA
}

// PrivateKeyToBytes returns the PKCS #1 DER form of the private key.
func (keyPair *rsaKeyPair) PrivateKeyToBytes() ([]byte, error) {
	return x509.MarshalPKCS1PrivateKey(keyPair.privateKey), nil
}

// PublicKeyToBytes returns the PKCS #1 DER form of the public key.
func (keyPair *rsaKeyPair) PublicKeyToBytes() ([]byte, error) {
	return x509.MarshalPKCS1PublicKey(keyPair.publicKey), nil
}

func (keyPair *rsaKeyPair) PrivateKeyString() (string, error) {
	return encode(keyPair.PrivateKeyToBytes)
}

func (keyPair *rsaKeyPair) PublicKeyString() (string, error) {
	return encode(keyPair.PublicKeyToBytes)
}

type ed25519KeyPair struct {
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey
}

// NewEd25519KeyPair initializes a new Ed25519 key pair.
func NewEd25519KeyPair() (KeyPair, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Ed25519 key: %w", err)
	}

	return &ed25519KeyPair{
		privateKey: privateKey,
		publicKey:  publicKey,
	}, nil
}

func (keyPair *ed25519KeyPair) Scheme() string {
	return SchemeEd25519
}

// PrivateKeyToBytes returns the PKCS #8 DER form of the private key.
func (keyPair *ed25519KeyPair) PrivateKeyToBytes() ([]byte, error) {
	return x509.MarshalPKCS8PrivateKey(keyPair.privateKey)
}

// PublicKeyToBytes returns the PKIX DER form of the public key.
func (keyPair *ed25519KeyPair) PublicKeyToBytes() ([]byte, error) {
	return x509.MarshalPKIXPublicKey(keyPair.publicKey)
}

func (keyPair *ed25519KeyPair) PrivateKeyString() (string, error) {
	return encode(keyPair.PrivateKeyToBytes)
}

func (keyPair *ed25519KeyPair) PublicKeyString() (string, error) {
	return encode(keyPair.PublicKeyToBytes)
}

// encode converts the bytes produced by keyFunc into standard Base64.
func encode(keyFunc func() ([]byte, error)) (string, error) {
	keyBytes, err := keyFunc()
	if err != nil {
		return "", fmt.Errorf("failed to marshal key to bytes: %w", err)
	}

	return base64.StdEncoding.EncodeToString(keyBytes), nil
}
