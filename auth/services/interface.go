package services

import (
	"context"

	"github.com/rashikbuksh/Synaptech-Backend/auth/models"
)

// AuthService defines signin and the login-state operations of an auth user
type AuthService interface {
	// Signin checks the credentials of the user with that email and issues a token.
	Signin(ctx context.Context, req models.SigninRequest) (*models.SigninResponse, error)

	// CanAccess returns the access list of an auth user.
	CanAccess(ctx context.Context, uuid string) (interface{}, error)

	// SetCanAccess replaces the access list; returns the auth user uuid.
	SetCanAccess(ctx context.Context, uuid string, canAccess interface{}) (string, error)

	// SetStatus enables or disables signin; returns the auth user uuid.
	SetStatus(ctx context.Context, uuid string, status interface{}) (string, error)

	// ChangePassword stores a new hashed password; returns the user uuid.
	ChangePassword(ctx context.Context, uuid string, req models.PasswordRequest) (string, error)
}
