package types

import "github.com/pageza/recipeshare/backend/internal/models"

// User is the wire representation of a user. The password is never part of it.
type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// Profile is the wire representation of a profile
type Profile struct {
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
}

// UserDetail is a user with its nested profile
type UserDetail struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Profile  Profile `json:"profile"`
}

// NewUser serializes a user without its profile
func NewUser(u *models.User) User {
	return User{ID: u.ID, Username: u.Username}
}

// NewUserDetail serializes a user and its profile. A missing profile is rendered empty.
func NewUserDetail(u *models.User) UserDetail {
	out := UserDetail{ID: u.ID, Username: u.Username}
	if u.Profile != nil {
		out.Profile = Profile{
			DisplayName: u.Profile.DisplayName,
			Bio:         u.Profile.Bio,
		}
	}
	return out
}
