package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/go-user-registry/internal/application"
)

// Record is one entry of a seed file.
type Record struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Age       int    `json:"age"`
	Bio       string `json:"bio"`
}

func (r Record) candidate() userapp.Candidate {
	return userapp.Candidate{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Age:       strconv.Itoa(r.Age),
		Bio:       r.Bio,
	}
}

// Result counts what happened to the records of a seed file.
type Result struct {
	Created int
	Skipped int
}

// LoadFile reads a JSON array of users from path and creates each one.
func LoadFile(ctx context.Context, svc *userapp.Service, logger *logrus.Logger, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open seed file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(ctx, svc, logger, f)
}

// Load creates users from r through the regular create path, so every rule
// applies. Rejected records are logged and skipped.
func Load(ctx context.Context, svc *userapp.Service, logger *logrus.Logger, r io.Reader) (Result, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return Result{}, fmt.Errorf("decode seed file: %w", err)
	}

	var res Result
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		u, err := svc.Create(ctx, rec.candidate())
		var verr *userapp.ValidationError
		switch {
		case errors.As(err, &verr):
			res.Skipped++
			if logger != nil {
				logger.WithFields(logrus.Fields{
					"index":      i,
					"email":      rec.Email,
					"violations": verr.Violations.Messages(),
				}).Warn("seed record rejected")
			}
		case err != nil:
			return res, fmt.Errorf("seed record %d: %w", i, err)
		default:
			res.Created++
			if logger != nil {
				logger.WithField("user_id", u.ID).Debug("seed record created")
			}
		}
	}
	return res, nil
}
