package dto

import (
	"time"

	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// PolicyResponse represents a password policy in API responses.
type PolicyResponse struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description,omitempty"`
	RegexPattern string             `json:"regex_pattern"`
	Expiration   *int               `json:"expiration,omitempty"`
	Categories   []CategoryResponse `json:"password_categories,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// MapPolicyToResponse converts a domain policy to an API response.
func MapPolicyToResponse(policy *vaultDomain.Policy) PolicyResponse {
	resp := PolicyResponse{
		ID:           policy.ID.String(),
		Name:         policy.Name,
		Description:  policy.Description,
		RegexPattern: policy.RegexPattern,
		Expiration:   policy.Expiration,
		CreatedAt:    policy.CreatedAt,
		UpdatedAt:    policy.UpdatedAt,
	}
	for _, category := range policy.Categories {
		resp.Categories = append(resp.Categories, MapCategoryToResponse(category))
	}
	return resp
}

// ListPoliciesResponse represents a paginated list of policies in API
// responses.
type ListPoliciesResponse struct {
	Data []PolicyResponse `json:"data"`
}

// MapPoliciesToListResponse converts a slice of domain policies to a list
// API response.
func MapPoliciesToListResponse(policies []*vaultDomain.Policy) ListPoliciesResponse {
	responses := make([]PolicyResponse, 0, len(policies))
	for _, policy := range policies {
		responses = append(responses, MapPolicyToResponse(policy))
	}
	return ListPoliciesResponse{Data: responses}
}

// CategoryResponse represents a password category in API responses.
type CategoryResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	PolicyID    string           `json:"password_policy_id"`
	Policy      *PolicyResponse  `json:"password_policy,omitempty"`
	Secrets     []SecretResponse `json:"system_passwords,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// MapCategoryToResponse converts a domain category to an API response.
func MapCategoryToResponse(category *vaultDomain.Category) CategoryResponse {
	resp := CategoryResponse{
		ID:          category.ID.String(),
		Name:        category.Name,
		Description: category.Description,
		PolicyID:    category.PolicyID.String(),
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
	if category.Policy != nil {
		policy := MapPolicyToResponse(category.Policy)
		resp.Policy = &policy
	}
	for _, secret := range category.Secrets {
		resp.Secrets = append(resp.Secrets, MapSecretToResponse(secret))
	}
	return resp
}

// ListCategoriesResponse represents a paginated list of categories in API
// responses.
type ListCategoriesResponse struct {
	Data []CategoryResponse `json:"data"`
}

// MapCategoriesToListResponse converts a slice of domain categories to a
// list API response.
func MapCategoriesToListResponse(categories []*vaultDomain.Category) ListCategoriesResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, MapCategoryToResponse(category))
	}
	return ListCategoriesResponse{Data: responses}
}

// SecretResponse represents a system password in API responses. The stored
// hash never appears here.
type SecretResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	CategoryID  string            `json:"category_id"`
	Category    *CategoryResponse `json:"category,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// MapSecretToResponse converts a domain system password to an API response.
func MapSecretToResponse(secret *vaultDomain.Secret) SecretResponse {
	resp := SecretResponse{
		ID:          secret.ID.String(),
		Name:        secret.Name,
		Description: secret.Description,
		CategoryID:  secret.CategoryID.String(),
		CreatedAt:   secret.CreatedAt,
		UpdatedAt:   secret.UpdatedAt,
	}
	if secret.Category != nil {
		category := MapCategoryToResponse(secret.Category)
		resp.Category = &category
	}
	return resp
}

// ListSecretsResponse represents a paginated list of system passwords in API
// responses.
type ListSecretsResponse struct {
	Data []SecretResponse `json:"data"`
}

// MapSecretsToListResponse converts a slice of domain system passwords to a
// list API response.
func MapSecretsToListResponse(secrets []*vaultDomain.Secret) ListSecretsResponse {
	responses := make([]SecretResponse, 0, len(secrets))
	for _, secret := range secrets {
		responses = append(responses, MapSecretToResponse(secret))
	}
	return ListSecretsResponse{Data: responses}
}
