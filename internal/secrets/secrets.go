// Package secrets stores tool credentials in the operating system keyring
// and injects them into tool environments.
package secrets

import (
	"errors"
	"fmt"
	"slices"

	"github.com/99designs/keyring"
)

// ServiceName is the keyring service under which toolrun stores secrets.
const ServiceName = "toolrun"

// ErrNotFound is returned when a secret is not in the store.
var ErrNotFound = errors.New("secret not found")

// Store abstracts secret storage backends.
type Store interface {
	// Set stores a secret, replacing any previous value.
	Set(name, value string) error

	// Get retrieves a secret. Returns ErrNotFound if it does not exist.
	Get(name string) (string, error)

	// Delete removes a secret. Returns nil if it does not exist.
	Delete(name string) error

	// Names lists the stored secret names in sorted order.
	Names() ([]string, error)
}

// KeyringStore is a Store backed by a keyring.Keyring.
type KeyringStore struct {
	ring keyring.Keyring
}

// Open opens the system keyring for service. backends limits the keyring
// backends tried; empty means all available ones.
func Open(service string, backends ...keyring.BackendType) (*KeyringStore, error) {
	if service == "" {
		service = ServiceName
	}
	ring, err := keyring.Open(keyring.Config{
		ServiceName:     service,
		AllowedBackends: backends,
	})
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	return NewKeyringStore(ring), nil
}

// NewKeyringStore wraps an open keyring.
func NewKeyringStore(ring keyring.Keyring) *KeyringStore {
	return &KeyringStore{ring: ring}
}

// Set implements Store.
func (s *KeyringStore) Set(name, value string) error {
	if name == "" {
		return errors.New("secret name is required")
	}
	return s.ring.Set(keyring.Item{
		Key:   name,
		Data:  []byte(value),
		Label: "toolrun - " + name,
	})
}

// Get implements Store.
func (s *KeyringStore) Get(name string) (string, error) {
	item, err := s.ring.Get(name)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("get secret %s: %w", name, err)
	}
	return string(item.Data), nil
}

// Delete implements Store.
func (s *KeyringStore) Delete(name string) error {
	err := s.ring.Remove(name)
	if err == nil || errors.Is(err, keyring.ErrKeyNotFound) {
		return nil
	}
	return fmt.Errorf("delete secret %s: %w", name, err)
}

// Names implements Store.
func (s *KeyringStore) Names() ([]string, error) {
	keys, err := s.ring.Keys()
	if err != nil {
		return nil, fmt.Errorf("list secrets: %w", err)
	}
	slices.Sort(keys)
	return keys, nil
}

// Environment reads the named secrets and returns them as environment
// variables of the same name. All missing names are reported together.
func Environment(store Store, names []string) (map[string]string, error) {
	if len(names) == 0 {
		return nil, nil
	}

	env := make(map[string]string, len(names))
	var errs []error
	for _, name := range names {
		value, err := store.Get(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		env[name] = value
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return env, nil
}
