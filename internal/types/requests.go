package types

// RegisterRequest represents the request body for creating a user
type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Password string `json:"password" binding:"required,max=128"`
}

// TokenRequest exchanges credentials for a token pair
type TokenRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest exchanges a refresh token for a new access token
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// TokenPair is returned by the token endpoint
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AccessToken is returned by the refresh endpoint
type AccessToken struct {
	Access string `json:"access"`
}

// ProfileInput is the writable part of a profile. Nil fields are left unchanged.
type ProfileInput struct {
	DisplayName *string `json:"display_name" binding:"omitempty,max=100"`
	Bio         *string `json:"bio"`
}

// UpdateUserRequest updates the nested profile of a user. Username is read-only and
// any value sent for it is ignored.
type UpdateUserRequest struct {
	Profile *ProfileInput `json:"profile"`
}
