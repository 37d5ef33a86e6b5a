// Package dto provides data transfer objects for the vault HTTP layer.
package dto

import (
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	appValidation "github.com/allisson/credvault/internal/validation"
	vaultUseCase "github.com/allisson/credvault/internal/vault/usecase"
)

// CreatePolicyRequest contains the parameters for creating a password policy.
type CreatePolicyRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	RegexPattern string `json:"regex_pattern"`
	Expiration   *int   `json:"expiration"`
}

// Validate checks if the create policy request is valid.
func (r *CreatePolicyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			appValidation.NotBlank,
			validation.Length(2, 255),
		),
		validation.Field(&r.Description, validation.Length(0, 1000)),
		validation.Field(&r.RegexPattern,
			validation.Required,
			validation.Length(1, 1000),
			appValidation.ValidRegex,
		),
		validation.Field(&r.Expiration, validation.Min(1)),
	)
}

// ToCreatePolicyInput converts the request to a use case input.
func (r *CreatePolicyRequest) ToCreatePolicyInput() vaultUseCase.CreatePolicyInput {
	return vaultUseCase.CreatePolicyInput{
		Name:         r.Name,
		Description:  r.Description,
		RegexPattern: r.RegexPattern,
		Expiration:   r.Expiration,
	}
}

// UpdatePolicyRequest contains the parameters for a partial policy update.
// Absent fields are left unchanged.
type UpdatePolicyRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	RegexPattern *string `json:"regex_pattern"`
	Expiration   *int    `json:"expiration"`
}

// Validate checks if the update policy request is valid.
func (r *UpdatePolicyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			appValidation.NotBlank,
			validation.Length(2, 255),
		),
		validation.Field(&r.Description, validation.Length(0, 1000)),
		validation.Field(&r.RegexPattern,
			validation.Length(1, 1000),
			appValidation.ValidRegex,
		),
		validation.Field(&r.Expiration, validation.Min(1)),
	)
}

// ToUpdatePolicyInput converts the request to a use case input.
func (r *UpdatePolicyRequest) ToUpdatePolicyInput() vaultUseCase.UpdatePolicyInput {
	return vaultUseCase.UpdatePolicyInput{
		Name:         r.Name,
		Description:  r.Description,
		RegexPattern: r.RegexPattern,
		Expiration:   r.Expiration,
	}
}

// CreateCategoryRequest contains the parameters for creating a password
// category.
type CreateCategoryRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PolicyID    uuid.UUID `json:"password_policy_id"`
}

// Validate checks if the create category request is valid.
func (r *CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			appValidation.NotBlank,
			validation.Length(2, 255),
		),
		validation.Field(&r.Description, validation.Length(0, 1000)),
		validation.Field(&r.PolicyID, validation.By(notNilUUID)),
	)
}

// ToCreateCategoryInput converts the request to a use case input.
func (r *CreateCategoryRequest) ToCreateCategoryInput() vaultUseCase.CreateCategoryInput {
	return vaultUseCase.CreateCategoryInput{
		Name:        r.Name,
		Description: r.Description,
		PolicyID:    r.PolicyID,
	}
}

// UpdateCategoryRequest contains the parameters for a partial category
// update. Absent fields are left unchanged.
type UpdateCategoryRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	PolicyID    *uuid.UUID `json:"password_policy_id"`
}

// Validate checks if the update category request is valid.
func (r *UpdateCategoryRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			appValidation.NotBlank,
			validation.Length(2, 255),
		),
		validation.Field(&r.Description, validation.Length(0, 1000)),
	)
}

// ToUpdateCategoryInput converts the request to a use case input.
func (r *UpdateCategoryRequest) ToUpdateCategoryInput() vaultUseCase.UpdateCategoryInput {
	return vaultUseCase.UpdateCategoryInput{
		Name:        r.Name,
		Description: r.Description,
		PolicyID:    r.PolicyID,
	}
}

// CreateSecretRequest contains the parameters for creating a system password.
type CreateSecretRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Password    string    `json:"password"`
	CategoryID  uuid.UUID `json:"category_id"`
}

// Validate checks if the create secret request is valid. passwordMinLength is
// the configured minimum plaintext length, applied before any policy check.
func (r *CreateSecretRequest) Validate(passwordMinLength int) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			appValidation.NotBlank,
			validation.Length(2, 255),
		),
		validation.Field(&r.Description, validation.Length(0, 1000)),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(passwordMinLength, 1024),
		),
		validation.Field(&r.CategoryID, validation.By(notNilUUID)),
	)
}

// ToCreateSecretInput converts the request to a use case input.
func (r *CreateSecretRequest) ToCreateSecretInput() vaultUseCase.CreateSecretInput {
	return vaultUseCase.CreateSecretInput{
		Name:        r.Name,
		Description: r.Description,
		Password:    r.Password,
		CategoryID:  r.CategoryID,
	}
}

// UpdateSecretRequest contains the parameters for a partial system password
// update. Absent fields are left unchanged. A present password is checked
// against the effective category's policy before it is hashed.
type UpdateSecretRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Password    *string    `json:"password"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

// Validate checks if the update secret request is valid.
func (r *UpdateSecretRequest) Validate(passwordMinLength int) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			appValidation.NotBlank,
			validation.Length(2, 255),
		),
		validation.Field(&r.Description, validation.Length(0, 1000)),
		validation.Field(&r.Password, validation.Length(passwordMinLength, 1024)),
	)
}

// ToUpdateSecretInput converts the request to a use case input.
func (r *UpdateSecretRequest) ToUpdateSecretInput() vaultUseCase.UpdateSecretInput {
	return vaultUseCase.UpdateSecretInput{
		Name:        r.Name,
		Description: r.Description,
		Password:    r.Password,
		CategoryID:  r.CategoryID,
	}
}

// notNilUUID rejects the zero UUID, which json decoding produces for a
// missing field.
func notNilUUID(value interface{}) error {
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return validation.NewError("validation_uuid_required", "must be a valid non-zero UUID")
	}
	return nil
}
