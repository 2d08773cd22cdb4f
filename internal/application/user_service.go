package application

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"

	"github.com/oksasatya/go-user-registry/internal/domain/entity"
	repo "github.com/oksasatya/go-user-registry/internal/domain/repository"
	"github.com/oksasatya/go-user-registry/pkg/validation"
)

var ErrUserNotFound = errors.New("user not found")

// ValidationError is returned when a candidate breaks one or more rules.
// Candidate holds the sanitized submitted values for echoing back.
type ValidationError struct {
	Candidate  Candidate
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	return "invalid user: " + strings.Join(e.Violations.Messages(), " ")
}

// Stats exposes write counters under /debug/vars.
var Stats = expvar.NewMap("users")

type Service struct {
	Repo     repo.UserRepository
	Validate *validator.Validate
	Logger   *logrus.Logger
	Events   EventPublisher

	// UniqueEmailOnUpdate also checks email uniqueness on update, ignoring
	// the user being updated. Off by default: only create checks it.
	UniqueEmailOnUpdate bool
}

func NewService(repo repo.UserRepository, v *validator.Validate, logger *logrus.Logger, events EventPublisher, uniqueEmailOnUpdate bool) *Service {
	return &Service{
		Repo:                repo,
		Validate:            v,
		Logger:              logger,
		Events:              events,
		UniqueEmailOnUpdate: uniqueEmailOnUpdate,
	}
}

func (s *Service) List(ctx context.Context) ([]entity.User, error) {
	users, err := s.Repo.List()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *Service) Get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return u, nil
}

// Check sanitizes in and evaluates the field rules. When checkUnique is set
// the normalized email must not belong to any user other than excludeID.
func (s *Service) Check(ctx context.Context, in Candidate, excludeID string, checkUnique bool) (Candidate, validation.Violations, error) {
	c := in.Sanitize()
	violations := validation.Check(s.Validate, userRules, c.values())
	if len(violations.For(FieldEmail)) == 0 {
		c.Email = NormalizeEmail(c.Email)
	}

	if checkUnique && c.Email != "" {
		users, err := s.Repo.List()
		if err != nil {
			return c, nil, fmt.Errorf("check email: %w", err)
		}
		for _, u := range users {
			if u.ID != excludeID && u.Email == c.Email {
				violations = append(violations, validation.Violation{Field: FieldEmail, Message: MsgEmailInUse})
				break
			}
		}
	}
	return c, violations, nil
}

func (s *Service) Create(ctx context.Context, in Candidate) (*entity.User, error) {
	c, violations, err := s.Check(ctx, in, "", true)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		Stats.Add("rejected", 1)
		return nil, &ValidationError{Candidate: c, Violations: violations}
	}

	u := &entity.User{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Age:       c.AgeValue(),
		Bio:       c.Bio,
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	Stats.Add("created", 1)
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user created")
	}
	s.publish(ctx, EventUserCreated, u.ID, u.Email)
	return u, nil
}

func (s *Service) Update(ctx context.Context, id string, in Candidate) (*entity.User, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c, violations, err := s.Check(ctx, in, current.ID, s.UniqueEmailOnUpdate)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		Stats.Add("rejected", 1)
		return nil, &ValidationError{Candidate: c, Violations: violations}
	}

	u := &entity.User{
		ID:        current.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Age:       c.AgeValue(),
		Bio:       c.Bio,
	}
	if err := s.Repo.Update(u); err != nil {
		return nil, fmt.Errorf("update user %s: %w", id, err)
	}
	Stats.Add("updated", 1)
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user updated")
	}
	s.publish(ctx, EventUserUpdated, u.ID, u.Email)
	return u, nil
}

// Delete removes the user if present. Unknown IDs are not an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	existing, err := s.Repo.GetByID(id)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	if err := s.Repo.Delete(id); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	if existing == nil {
		return nil
	}
	Stats.Add("deleted", 1)
	if s.Logger != nil {
		s.Logger.WithField("user_id", id).Info("user deleted")
	}
	s.publish(ctx, EventUserDeleted, existing.ID, existing.Email)
	return nil
}

// SearchQuery filters are optional; empty values do not filter.
type SearchQuery struct {
	Name  string `form:"name" json:"name"`
	Email string `form:"email" json:"email"`
}

// Search keeps users whose first or last name contains Name and whose email
// contains Email, ignoring case. Both filters apply when both are set.
func (s *Service) Search(ctx context.Context, q SearchQuery) ([]entity.User, error) {
	users, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	Stats.Add("searches", 1)

	fold := cases.Fold()
	name := fold.String(q.Name)
	email := fold.String(q.Email)

	out := make([]entity.User, 0, len(users))
	for _, u := range users {
		if name != "" &&
			!strings.Contains(fold.String(u.FirstName), name) &&
			!strings.Contains(fold.String(u.LastName), name) {
			continue
		}
		if email != "" && !strings.Contains(fold.String(u.Email), email) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *Service) publish(ctx context.Context, typ, userID, email string) {
	if s.Events == nil {
		return
	}
	ev := UserEvent{Type: typ, UserID: userID, Email: email, OccurredAt: time.Now().UTC()}
	if err := s.Events.PublishJSON(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"user_id": userID, "event": typ}).Warn("publish user event failed")
	}
}
