package memory

import (
	"strconv"
	"sync"
	"time"

	"github.com/oksasatya/go-user-registry/internal/domain/entity"
	"github.com/oksasatya/go-user-registry/internal/domain/repository"
)

// UserRepository keeps users in process memory. Contents are lost when the
// process exits.
type UserRepository struct {
	mu     sync.RWMutex
	users  []entity.User
	lastID int64
	now    func() time.Time
}

func NewUserRepository() *UserRepository {
	return &UserRepository{now: time.Now}
}

func (r *UserRepository) List() ([]entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	u := r.users[i]
	return &u, nil
}

// Create assigns the next ID and timestamps, then appends u.
func (r *UserRepository) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	now := r.now()
	u.ID = strconv.FormatInt(r.lastID, 10)
	u.CreatedAt = now
	u.UpdatedAt = now
	r.users = append(r.users, *u)
	return nil
}

func (r *UserRepository) Update(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(u.ID)
	if i < 0 {
		return nil
	}
	stored := &r.users[i]
	stored.FirstName = u.FirstName
	stored.LastName = u.LastName
	stored.Email = u.Email
	stored.Age = u.Age
	stored.Bio = u.Bio
	stored.UpdatedAt = r.now()

	u.CreatedAt = stored.CreatedAt
	u.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *UserRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil
	}
	r.users = append(r.users[:i], r.users[i+1:]...)
	return nil
}

// indexOf must be called with mu held.
func (r *UserRepository) indexOf(id string) int {
	for i := range r.users {
		if r.users[i].ID == id {
			return i
		}
	}
	return -1
}

var _ repository.UserRepository = (*UserRepository)(nil)
