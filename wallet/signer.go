package wallet

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base32"
	"fmt"
)

// Signer produces signatures for canonical transaction bytes. The actual
// cryptography lives outside the SDK (a connected wallet, a hardware key, a
// remote relay); the SDK only moves opaque bytes.
type Signer interface {
	Address() string
	Sign(ctx context.Context, payload []byte) ([]byte, error)
}

// LocalSigner is an in-process ed25519 signer, suitable for tests and
// scripted deployments. Production callers bring their own Signer.
type LocalSigner struct {
	priv ed25519.PrivateKey
	addr string
}

// GenerateLocalSigner creates a fresh keypair.
func GenerateLocalSigner() (*LocalSigner, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return &LocalSigner{priv: priv, addr: encodeAddress(pub)}, nil
}

// NewLocalSigner wraps an existing ed25519 private key.
func NewLocalSigner(priv ed25519.PrivateKey) (*LocalSigner, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid private key length %d", len(priv))
	}
	pub := priv.Public().(ed25519.PublicKey)
	return &LocalSigner{priv: priv, addr: encodeAddress(pub)}, nil
}

func (s *LocalSigner) Address() string { return s.addr }

func (s *LocalSigner) Sign(_ context.Context, payload []byte) ([]byte, error) {
	return ed25519.Sign(s.priv, payload), nil
}

func encodeAddress(pub ed25519.PublicKey) string {
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(pub)
}
