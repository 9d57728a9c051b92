// Package token resolves and holds the Vault token.
//
// Resolution order: explicit configuration, then the VAULT_TOKEN environment
// variable, then the OS keyring entry written by "vaultkv login". Once
// resolved, the token lives in a memguard enclave so it is encrypted at rest
// in process memory and decrypted only for the duration of a request.
package token

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/awnumar/memguard"
	"github.com/zalando/go-keyring"
)

const (
	// keyringService identifies vaultkv entries in the OS keyring.
	keyringService = "vaultkv"
	keyringAccount = "vault-token"
)

// ErrNoToken is returned when no token can be found anywhere.
var ErrNoToken = errors.New("no vault token found in config, VAULT_TOKEN, or the OS keyring")

// Source resolves the Vault token once and serves it from protected memory
// afterwards. Safe for concurrent use.
type Source struct {
	configured string

	mu      sync.Mutex
	enclave *memguard.Enclave
}

// NewSource creates a Source. configured may be empty, in which case the
// environment and the OS keyring are consulted on first use.
func NewSource(configured string) *Source {
	return &Source{configured: configured}
}

// Token returns the resolved token. The first call resolves and seals it;
// later calls decrypt the sealed copy.
func (s *Source) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.enclave == nil {
		raw, err := s.resolve()
		if err != nil {
			return "", err
		}
		// NewEnclave wipes the input buffer after sealing.
		s.enclave = memguard.NewEnclave([]byte(raw))
	}

	buf, err := s.enclave.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open token enclave: %w", err)
	}
	defer buf.Destroy()

	return string(buf.Bytes()), nil
}

func (s *Source) resolve() (string, error) {
	if s.configured != "" {
		return s.configured, nil
	}

	if token := os.Getenv("VAULT_TOKEN"); token != "" {
		return token, nil
	}

	token, err := keyring.Get(keyringService, keyringAccount)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("failed to read token from keyring: %w", err)
	}

	return token, nil
}

// Store writes the token to the OS keyring for later sessions.
func Store(token string) error {
	if token == "" {
		return errors.New("refusing to store an empty token")
	}
	if err := keyring.Set(keyringService, keyringAccount, token); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	return nil
}

// Clear removes the stored token from the OS keyring. Clearing an absent
// entry is not an error.
func Clear() error {
	err := keyring.Delete(keyringService, keyringAccount)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to remove token from keyring: %w", err)
	}
	return nil
}
