package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/dbx"
	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/repomanager"
)

// maxPublicIDAttempts bounds the retries when a generated public id
// collides with an existing one.
const maxPublicIDAttempts = 3

type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Registration carries the fields of a new user.
type Registration struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UserUpdate carries name changes. Empty fields are left untouched.
type UserUpdate struct {
	FirstName string
	LastName  string
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	log         logging.Logger
	newPublicID func() (string, error)
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher, log logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		log:         log.With("module", "users"),
		newPublicID: common.GeneratePublicID,
	}
}

// Register creates a user and returns it without the password hash.
func (s *UserService) Register(ctx context.Context, r Registration) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, r.Email)
	switch {
	case err == nil:
		return nil, common.ErrorAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	hash, err := s.hasher.Hash(r.Password)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxPublicIDAttempts; attempt++ {
		publicID, err := s.newPublicID()
		if err != nil {
			return nil, fmt.Errorf("error generating public id: %w", err)
		}

		user, err := repo.Create(ctx, &models.User{
			PublicID:          publicID,
			Email:             r.Email,
			EncryptedPassword: hash,
			FirstName:         r.FirstName,
			LastName:          r.LastName,
		})
		if err == nil {
			s.log.Info(ctx, "user registered", "public_id", user.PublicID)
			return user.WithoutPassword(), nil
		}
		if !errors.Is(err, common.ErrorDuplicatePublicID) {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return nil, common.ErrorAlreadyExists
			}
			return nil, fmt.Errorf("error creating user: %w", err)
		}
		s.log.Warn(ctx, "public id collision", "attempt", attempt)
	}

	return nil, fmt.Errorf("%w: no free public id after %d attempts", common.ErrorInternal, maxPublicIDAttempts)
}

// Authenticate returns the user with the password hash, for credential
// checks only.
func (s *UserService) Authenticate(ctx context.Context, email string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByEmail(ctx, email)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return user.WithoutPassword(), nil
}

func (s *UserService) GetByPublicID(ctx context.Context, publicID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	return user.WithoutPassword(), nil
}

// Update applies the non-empty fields of u to the user and returns the
// stored result.
func (s *UserService) Update(ctx context.Context, publicID string, u UserUpdate) (*models.User, error) {
	var updated *models.User

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err := repo.GetByPublicID(ctx, publicID)
		if err != nil {
			return err
		}

		if u.FirstName != "" {
			user.FirstName = u.FirstName
		}
		if u.LastName != "" {
			user.LastName = u.LastName
		}

		if err := repo.Update(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated.WithoutPassword(), nil
}

func (s *UserService) Delete(ctx context.Context, publicID string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err := repo.GetByPublicID(ctx, publicID)
		if err != nil {
			return err
		}
		return repo.Delete(ctx, user.ID)
	})
	if err != nil {
		return err
	}

	s.log.Info(ctx, "user deleted", "public_id", publicID)
	return nil
}

// List returns one page of users in creation order. page is 1-based;
// zero or negative values select the first page.
func (s *UserService) List(ctx context.Context, page, pageSize int) ([]*models.User, error) {
	if pageSize < 1 {
		return nil, fmt.Errorf("%w: page size must be positive", common.ErrorValidation)
	}
	if page > 0 {
		page--
	} else {
		page = 0
	}
	if page > math.MaxInt/pageSize {
		return []*models.User{}, nil
	}

	users, err := s.repomanager.Users(s.db).List(ctx, page*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	result := make([]*models.User, 0, len(users))
	for _, u := range users {
		result = append(result, u.WithoutPassword())
	}
	return result, nil
}
