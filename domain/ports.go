package domain

import "context"

// UserRecord is a stored account including its password hash.
type UserRecord struct {
	Account
	PasswordHash string
}

// UserRepository persists accounts for the account API.
type UserRepository interface {
	// Create stores rec and assigns rec.ID and rec.CreatedAt. Returns
	// ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, rec *UserRecord) error

	// FindByEmail returns ErrNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*UserRecord, error)

	// FindByID returns ErrNotFound when no account matches.
	FindByID(ctx context.Context, id string) (*UserRecord, error)

	// List returns every account, oldest first.
	List(ctx context.Context) ([]UserRecord, error)

	// Save replaces the stored record with rec.
	Save(ctx context.Context, rec *UserRecord) error

	// Delete returns ErrNotFound when no account matches.
	Delete(ctx context.Context, id string) error
}

// Mailer sends account notifications.
type Mailer interface {
	SendWelcome(ctx context.Context, acct Account) error
}
