package domain

import (
	"context"
	"time"
)

// User represents a user entity in the system.
// A user can write articles, favorite and bookmark them, and follow other users.
type User struct {
	ID        int64     // Unique identifier
	Email     string    // Unique email
	Username  string    // Login username (unique)
	Bio       string    // Short biography
	Image     string    // Avatar URL
	Password  string    // Hashed password, opaque to this service
	Followers int64     // Number of users following this user
	Followee  int64     // Number of users this user follows
	CreatedAt time.Time // Account creation timestamp
	UpdatedAt time.Time // Last profile update timestamp
}

// Profile is the public, viewer relative view of a user.
type Profile struct {
	ID        int64
	Username  string
	Bio       string
	Image     string
	Followers int64
	Followee  int64
	Following bool // whether the viewer follows this user
}

// ToProfile drops the private fields of u.
func (u User) ToProfile() Profile {
	return Profile{
		ID:        u.ID,
		Username:  u.Username,
		Bio:       u.Bio,
		Image:     u.Image,
		Followers: u.Followers,
		Followee:  u.Followee,
	}
}

// UserRepository defines the contract for user data persistence.
type UserRepository interface {
	// GetByID retrieves a user by their ID.
	// Returns ErrNotFound if the user doesn't exist.
	GetByID(ctx context.Context, id int64) (User, error)

	// GetByUsername retrieves a user by their username.
	// Returns ErrNotFound if the user doesn't exist.
	GetByUsername(ctx context.Context, username string) (User, error)

	GetByIDs(ctx context.Context, userIDs []int64) ([]User, error)

	// Insert creates a new user account.
	// Backfills the ID in the provided User object upon success.
	Insert(ctx context.Context, u *User) error

	// Search matches username or bio case-insensitively.
	Search(ctx context.Context, text string, limit int) ([]User, error)
}

// ProfileUsecase defines the business logic contract for profiles and the follow graph.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, username string, viewerID int64) (Profile, error)
	SearchProfiles(ctx context.Context, text string, viewerID int64) ([]Profile, error)

	// ToggleFollow returns ErrInvalidInput when viewer and target are the same user.
	ToggleFollow(ctx context.Context, viewerID int64, username string, add bool) (Profile, error)
}
