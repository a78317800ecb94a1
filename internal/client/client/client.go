package client

import (
	"context"

	"github.com/dmitrijs2005/userkeeper/internal/client/models"
)

type Client interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, r models.Registration) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Logout()
	Session() *models.Session
	GetUser(ctx context.Context, publicID string) (*models.User, error)
	ListUsers(ctx context.Context, page, limit int) ([]models.User, error)
	UpdateUser(ctx context.Context, publicID, firstName, lastName string) (*models.User, error)
	DeleteUser(ctx context.Context, publicID string) error
}
