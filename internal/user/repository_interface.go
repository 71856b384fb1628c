package user

import "context"

// Repository stores trainers and admins in one table; role tells them apart.
type Repository interface {
	Create(ctx context.Context, name, email, passwordHash, role string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	// UpdateIBAN replaces the live IBAN; nil clears it. Snapshots taken by
	// earlier settlements are not touched.
	UpdateIBAN(ctx context.Context, id int, iban *string) (*User, error)
}
