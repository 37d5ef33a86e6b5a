package dto

import (
	"time"

	"github.com/google/uuid"

	identityDomain "github.com/allisson/credvault/internal/identity/domain"
)

// AuthResponse contains the result of registration or login.
// SECURITY: The token is only returned once and must be saved securely;
// the server keeps nothing but its digest.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// CreateUserResponse represents the result of admin user creation.
// SECURITY: Token carries the user's plain bearer token and is only
// returned at creation time.
type CreateUserResponse struct {
	UserResponse
	Token string `json:"token"`
}

// UserResponse represents a user in API responses. Password and token
// digests never appear here.
type UserResponse struct {
	ID          string              `json:"id"`
	Username    string              `json:"username"`
	Email       string              `json:"email"`
	IsAdmin     bool                `json:"is_admin"`
	PrivilegeID *uuid.UUID          `json:"privilege_id,omitempty"`
	Privilege   *PrivilegeResponse  `json:"privilege,omitempty"`
	SecretIDs   []uuid.UUID         `json:"system_passwords,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// PrivilegeResponse represents a privilege in API responses.
type PrivilegeResponse struct {
	ID          string    `json:"id"`
	PrivID      int       `json:"priv_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MapUserToResponse converts a domain user to an API response.
func MapUserToResponse(user *identityDomain.User) UserResponse {
	resp := UserResponse{
		ID:          user.ID.String(),
		Username:    user.Username,
		Email:       user.Email,
		IsAdmin:     user.IsAdmin,
		PrivilegeID: user.PrivilegeID,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
	if user.Privilege != nil {
		privilege := MapPrivilegeToResponse(user.Privilege)
		resp.Privilege = &privilege
	}
	for _, secret := range user.Secrets {
		resp.SecretIDs = append(resp.SecretIDs, secret.ID)
	}
	return resp
}

// MapUserToCreateResponse converts a freshly created user and its plain
// token to an API response.
func MapUserToCreateResponse(user *identityDomain.User, token string) CreateUserResponse {
	return CreateUserResponse{
		UserResponse: MapUserToResponse(user),
		Token:        token,
	}
}

// ListUsersResponse represents a paginated list of users in API responses.
type ListUsersResponse struct {
	Data []UserResponse `json:"data"`
}

// MapUsersToListResponse converts a slice of domain users to a list API
// response.
func MapUsersToListResponse(users []*identityDomain.User) ListUsersResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, MapUserToResponse(user))
	}
	return ListUsersResponse{Data: responses}
}

// MapPrivilegeToResponse converts a domain privilege to an API response.
func MapPrivilegeToResponse(privilege *identityDomain.Privilege) PrivilegeResponse {
	return PrivilegeResponse{
		ID:          privilege.ID.String(),
		PrivID:      privilege.PrivID,
		Name:        privilege.Name,
		Description: privilege.Description,
		CreatedAt:   privilege.CreatedAt,
		UpdatedAt:   privilege.UpdatedAt,
	}
}

// ListPrivilegesResponse represents a paginated list of privileges in API
// responses.
type ListPrivilegesResponse struct {
	Data []PrivilegeResponse `json:"data"`
}

// MapPrivilegesToListResponse converts a slice of domain privileges to a
// list API response.
func MapPrivilegesToListResponse(privileges []*identityDomain.Privilege) ListPrivilegesResponse {
	responses := make([]PrivilegeResponse, 0, len(privileges))
	for _, privilege := range privileges {
		responses = append(responses, MapPrivilegeToResponse(privilege))
	}
	return ListPrivilegesResponse{Data: responses}
}
