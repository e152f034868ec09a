package dto

// CreateUserRequest creates an operator account.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Mail     string `json:"mail" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role,omitempty"`
}

// UpdateUserRequest edits an operator account.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Mail     *string `json:"mail,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
}

// UpdateUserStateRequest flips an account between active and inactive.
type UpdateUserStateRequest struct {
	State *bool `json:"state" binding:"required"`
}
