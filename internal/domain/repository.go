package domain

import "context"

// UserRepository defines access methods for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// SubmissionRepository persists submission aggregates. Create must increment
// the owning user's generated-images counter in the same transaction as the
// insert: either both writes land or neither does.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *Submission, quota int) error
	GetByID(ctx context.Context, id string) (*Submission, error)
	ListByUser(ctx context.Context, userID string) ([]Submission, error)
	Delete(ctx context.Context, id string) error
}
