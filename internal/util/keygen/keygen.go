package keygen

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"golang.org/x/crypto/ssh"
)

// Algorithm names accepted by Generate.
const (
	AlgorithmRSA     = "rsa"
	AlgorithmED25519 = "ed25519"
)

// DefaultRSABits is the key size used when Generate is asked for RSA.
const DefaultRSABits = 4096

// KeyPair holds a key pair in ready-to-use formats.
type KeyPair struct {
	// PrivateKey is the PEM-encoded private key.
	PrivateKey []byte
	// PublicKey is the public key in OpenSSH authorized_keys format.
	PublicKey []byte
	// Fingerprint is the SHA256 fingerprint of the public key.
	Fingerprint string
}

// Generate creates a key pair using the named algorithm.
func Generate(algorithm string) (*KeyPair, error) {
	switch algorithm {
	case AlgorithmRSA, "":
		return GenerateRSAKeyPair(DefaultRSABits)
	case AlgorithmED25519:
		return GenerateED25519KeyPair()
	default:
		return nil, fmt.Errorf("unsupported key algorithm %q (want %s or %s)", algorithm, AlgorithmRSA, AlgorithmED25519)
	}
}

// GenerateRSAKeyPair generates a new RSA key pair with the specified bit size.
// EC2 requires at least 2048 bits for imported RSA keys.
func GenerateRSAKeyPair(bits int) (*KeyPair, error) {
	if bits < 2048 {
		return nil, fmt.Errorf("RSA key size %d is below the 2048 bit minimum", bits)
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA private key: %w", err)
	}
	if err := privateKey.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate RSA private key: %w", err)
	}

	privateKeyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})

	pub, err := ssh.NewPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH public key: %w", err)
	}

	return &KeyPair{
		PrivateKey:  privateKeyPEM,
		PublicKey:   ssh.MarshalAuthorizedKey(pub),
		Fingerprint: ssh.FingerprintSHA256(pub),
	}, nil
}

// GenerateED25519KeyPair generates a new ed25519 key pair. The private key
// is written in the OpenSSH private key format.
func GenerateED25519KeyPair() (*KeyPair, error) {
	pubKey, privKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ed25519 key: %w", err)
	}

	block, err := ssh.MarshalPrivateKey(privKey, "")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ed25519 private key: %w", err)
	}

	pub, err := ssh.NewPublicKey(pubKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH public key: %w", err)
	}

	return &KeyPair{
		PrivateKey:  pem.EncodeToMemory(block),
		PublicKey:   ssh.MarshalAuthorizedKey(pub),
		Fingerprint: ssh.FingerprintSHA256(pub),
	}, nil
}
