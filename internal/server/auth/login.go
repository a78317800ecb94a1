package auth

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
)

// Directory looks up a user together with the password hash.
type Directory interface {
	Authenticate(ctx context.Context, email string) (*models.User, error)
}

type PasswordComparer interface {
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(subject string, ttl time.Duration) (string, error)
}

// Authenticator exchanges credentials for a bearer token.
type Authenticator struct {
	directory Directory
	hasher    PasswordComparer
	tokens    TokenIssuer
	ttl       time.Duration
}

func NewAuthenticator(directory Directory, hasher PasswordComparer, tokens TokenIssuer, ttl time.Duration) *Authenticator {
	return &Authenticator{directory: directory, hasher: hasher, tokens: tokens, ttl: ttl}
}

// Login returns a token for email and the user's public id. Unknown email
// and wrong password both yield common.ErrorUnauthorized, unwrapped, so
// callers cannot tell them apart.
func (a *Authenticator) Login(ctx context.Context, email, password string) (token string, publicID string, err error) {
	user, err := a.directory.Authenticate(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", "", common.ErrorUnauthorized
		}
		return "", "", err
	}

	if err := a.hasher.Compare(user.EncryptedPassword, password); err != nil {
		if errors.Is(err, ErrPasswordMismatch) {
			return "", "", common.ErrorUnauthorized
		}
		return "", "", err
	}

	token, err = a.tokens.Issue(user.Email, a.ttl)
	if err != nil {
		return "", "", err
	}

	return token, user.PublicID, nil
}
