package domain

import "time"

// User represents an account within the platform. GeneratedImages counts
// completed submissions and gates new generations against the configured
// quota before any upstream call is made.
type User struct {
	ID              string
	Email           string
	Name            string
	GeneratedImages int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CanGenerate reports whether the user is still below the generation quota.
func (u User) CanGenerate(quota int) bool {
	return u.GeneratedImages < quota
}
