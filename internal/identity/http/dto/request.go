// Package dto provides data transfer objects for the identity HTTP layer.
package dto

import (
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	identityUseCase "github.com/allisson/credvault/internal/identity/usecase"
	appValidation "github.com/allisson/credvault/internal/validation"
)

// RegisterRequest contains the parameters for self-service registration.
type RegisterRequest struct {
	Username             string `json:"username"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// Validate checks if the register request is valid. passwordMinLength is the
// configured minimum login password length.
func (r *RegisterRequest) Validate(passwordMinLength int) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			appValidation.NotBlank,
			validation.Length(3, 255),
			appValidation.Username,
		),
		validation.Field(&r.Email,
			validation.Required,
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(passwordMinLength, 128),
		),
		validation.Field(&r.PasswordConfirmation,
			validation.Required,
		),
	)
}

// ToRegisterInput converts the request to a use case input.
func (r *RegisterRequest) ToRegisterInput() identityUseCase.RegisterInput {
	return identityUseCase.RegisterInput{
		Username:             r.Username,
		Email:                r.Email,
		Password:             r.Password,
		PasswordConfirmation: r.PasswordConfirmation,
	}
}

// LoginRequest contains the parameters for login. Credential accepts either
// a username or an email address.
type LoginRequest struct {
	Credential string `json:"credential"`
	Password   string `json:"password"`
}

// Validate checks if the login request is valid.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Credential, validation.Required, appValidation.NotBlank),
		validation.Field(&r.Password, validation.Required),
	)
}

// CreateUserRequest contains the parameters for admin user creation.
type CreateUserRequest struct {
	Username             string      `json:"username"`
	Email                string      `json:"email"`
	Password             string      `json:"password"`
	PasswordConfirmation string      `json:"password_confirmation"`
	IsAdmin              bool        `json:"is_admin"`
	PrivilegeID          *uuid.UUID  `json:"privilege_id"`
	SecretIDs            []uuid.UUID `json:"system_passwords"`
}

// Validate checks if the create user request is valid.
func (r *CreateUserRequest) Validate(passwordMinLength int) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			appValidation.NotBlank,
			validation.Length(3, 255),
			appValidation.Username,
		),
		validation.Field(&r.Email,
			validation.Required,
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(passwordMinLength, 128),
		),
		validation.Field(&r.PasswordConfirmation,
			validation.Required,
		),
	)
}

// ToCreateUserInput converts the request to a use case input.
func (r *CreateUserRequest) ToCreateUserInput() identityUseCase.CreateUserInput {
	return identityUseCase.CreateUserInput{
		Username:             r.Username,
		Email:                r.Email,
		Password:             r.Password,
		PasswordConfirmation: r.PasswordConfirmation,
		IsAdmin:              r.IsAdmin,
		PrivilegeID:          r.PrivilegeID,
		SecretIDs:            r.SecretIDs,
	}
}

// UpdateUserRequest contains the parameters for a partial user update.
// Absent fields are left unchanged; a present system_passwords array
// reconciles the user's assignments to exactly that set.
type UpdateUserRequest struct {
	Username             *string      `json:"username"`
	Email                *string      `json:"email"`
	Password             *string      `json:"password"`
	PasswordConfirmation *string      `json:"password_confirmation"`
	IsAdmin              *bool        `json:"is_admin"`
	PrivilegeID          *uuid.UUID   `json:"privilege_id"`
	SecretIDs            *[]uuid.UUID `json:"system_passwords"`
}

// Validate checks if the update user request is valid.
func (r *UpdateUserRequest) Validate(passwordMinLength int) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			appValidation.NotBlank,
			validation.Length(3, 255),
			appValidation.Username,
		),
		validation.Field(&r.Email,
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255),
		),
		validation.Field(&r.Password,
			validation.Length(passwordMinLength, 128),
		),
	)
}

// ToUpdateUserInput converts the request to a use case input.
func (r *UpdateUserRequest) ToUpdateUserInput() identityUseCase.UpdateUserInput {
	return identityUseCase.UpdateUserInput{
		Username:             r.Username,
		Email:                r.Email,
		Password:             r.Password,
		PasswordConfirmation: r.PasswordConfirmation,
		IsAdmin:              r.IsAdmin,
		PrivilegeID:          r.PrivilegeID,
		SecretIDs:            r.SecretIDs,
	}
}

// CreatePrivilegeRequest contains the parameters for creating a privilege.
type CreatePrivilegeRequest struct {
	PrivID      int    `json:"priv_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate checks if the create privilege request is valid.
func (r *CreatePrivilegeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.PrivID, validation.Required, validation.Min(1)),
		validation.Field(&r.Name,
			validation.Required,
			appValidation.NotBlank,
			validation.Length(2, 255),
		),
		validation.Field(&r.Description, validation.Length(0, 1000)),
	)
}

// ToCreatePrivilegeInput converts the request to a use case input.
func (r *CreatePrivilegeRequest) ToCreatePrivilegeInput() identityUseCase.CreatePrivilegeInput {
	return identityUseCase.CreatePrivilegeInput{
		PrivID:      r.PrivID,
		Name:        r.Name,
		Description: r.Description,
	}
}

// UpdatePrivilegeRequest contains the parameters for a partial privilege
// update.
type UpdatePrivilegeRequest struct {
	PrivID      *int    `json:"priv_id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Validate checks if the update privilege request is valid.
func (r *UpdatePrivilegeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.PrivID, validation.Min(1)),
		validation.Field(&r.Name,
			appValidation.NotBlank,
			validation.Length(2, 255),
		),
		validation.Field(&r.Description, validation.Length(0, 1000)),
	)
}

// ToUpdatePrivilegeInput converts the request to a use case input.
func (r *UpdatePrivilegeRequest) ToUpdatePrivilegeInput() identityUseCase.UpdatePrivilegeInput {
	return identityUseCase.UpdatePrivilegeInput{
		PrivID:      r.PrivID,
		Name:        r.Name,
		Description: r.Description,
	}
}
