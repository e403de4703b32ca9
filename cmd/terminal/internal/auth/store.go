// Package auth keeps terminal accounts in a plain CSV file of
// (identifier, secret) rows. Secrets are stored as given.
package auth

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	ErrEmptyCredentials   = errors.New("auth: identifier and secret are required")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
)

type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Authenticate reports whether a row matches id and secret exactly. A
// missing file holds no accounts.
func (s *Store) Authenticate(id, secret string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("open credentials: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("read credentials: %w", err)
		}
		if len(rec) >= 2 && rec[0] == id && rec[1] == secret {
			return true, nil
		}
	}
}

// Verify is Authenticate folded into one error.
func (s *Store) Verify(id, secret string) error {
	ok, err := s.Authenticate(id, secret)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCredentials
	}
	return nil
}

// Register appends a row. Duplicate identifiers are not checked.
func (s *Store) Register(id, secret string) error {
	if id == "" || secret == "" {
		return ErrEmptyCredentials
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open credentials: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{id, secret}); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush credentials: %w", err)
	}
	return nil
}
