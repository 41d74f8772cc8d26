package app

import (
	"context"

	"github.com/CrestNiraj12/rivalsnexus/domain"
)

// AccountService talks to the account REST API.
type AccountService interface {
	// Register creates an account.
	Register(ctx context.Context, reg domain.Registration) (domain.Account, error)

	// Login verifies credentials and returns the account with a session token.
	Login(ctx context.Context, email, password string) (domain.Account, string, error)

	// ListUsers returns every account. Used by the admin panel.
	ListUsers(ctx context.Context) ([]domain.Account, error)

	// GetUser fetches one account.
	GetUser(ctx context.Context, id string) (domain.Account, error)

	// UpdateProfile saves profile fields of the logged-in account.
	UpdateProfile(ctx context.Context, id string, patch domain.ProfilePatch) (domain.Account, error)

	// Ban suspends an account for minutes. The acting admin is sent as headers.
	Ban(ctx context.Context, admin domain.Registered, id string, minutes int) (domain.Account, error)

	// Unban lifts a ban.
	Unban(ctx context.Context, admin domain.Registered, id string) (domain.Account, error)

	// DeleteUser removes an account. Admin only.
	DeleteUser(ctx context.Context, admin domain.Registered, id string) error
}
