package core

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// IdentityStore maps client identifiers to display names.
// Names are not required to be unique.
type IdentityStore struct {
	names map[ClientID]string
}

// NewIdentityStore returns an empty identity store.
func NewIdentityStore() *IdentityStore {
	return &IdentityStore{names: make(map[ClientID]string)}
}

// SetName records name for id. An empty name is rejected with ErrValidation
// and leaves any previous name in place.
func (s *IdentityStore) SetName(id ClientID, name string) error {
	if err := validate.Var(name, "required"); err != nil {
		return fmt.Errorf("%w: username is required", ErrValidation)
	}
	s.names[id] = name
	return nil
}

// Name returns the display name recorded for id.
func (s *IdentityStore) Name(id ClientID) (string, bool) {
	name, ok := s.names[id]
	return name, ok
}

// Remove forgets the name recorded for id.
func (s *IdentityStore) Remove(id ClientID) {
	delete(s.names, id)
}

// Len returns the number of clients with a recorded name.
func (s *IdentityStore) Len() int {
	return len(s.names)
}
