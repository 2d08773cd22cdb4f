package repository

import (
	"errors"

	"github.com/oksasatya/go-user-registry/internal/domain/entity"
)

// ErrNotFound is returned by lookups when no user has the given ID.
var ErrNotFound = errors.New("not found")

// UserRepository defines the storage operations for users.
// List returns users in insertion order. Update and Delete on an unknown ID
// are no-ops.
type UserRepository interface {
	List() ([]entity.User, error)
	GetByID(id string) (*entity.User, error)
	Create(u *entity.User) error
	Update(u *entity.User) error
	Delete(id string) error
}
