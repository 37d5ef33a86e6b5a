package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
	"github.com/allisson/credvault/internal/vault/http/dto"
	"github.com/allisson/credvault/internal/vault/http/mocks"
)

// createTestContext builds a gin context with an optional JSON body.
func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}

	c.Request = httptest.NewRequest(method, path, reader)
	c.Request.Header.Set("Content-Type", "application/json")

	return c, w
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPolicyHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockUseCase := new(mocks.MockPolicyUseCase)
		handler := NewPolicyHandler(mockUseCase, testLogger())

		policyID := uuid.Must(uuid.NewV7())
		policy := &vaultDomain.Policy{
			ID:           policyID,
			Name:         "digits-required",
			RegexPattern: "[0-9]",
		}

		request := dto.CreatePolicyRequest{Name: "digits-required", RegexPattern: "[0-9]"}
		mockUseCase.On("Create", mock.Anything, request.ToCreatePolicyInput()).
			Return(policy, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/password-policies", request)
		handler.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.PolicyResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, policyID.String(), response.ID)
		assert.Equal(t, "[0-9]", response.RegexPattern)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidRegexRejectedByValidation", func(t *testing.T) {
		mockUseCase := new(mocks.MockPolicyUseCase)
		handler := NewPolicyHandler(mockUseCase, testLogger())

		request := dto.CreatePolicyRequest{Name: "broken", RegexPattern: "[0-9"}
		c, w := createTestContext(http.MethodPost, "/v1/password-policies", request)
		handler.Create(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "validation_error", response["error"])
		mockUseCase.AssertNotCalled(t, "Create")
	})

	t.Run("Error_DuplicateName", func(t *testing.T) {
		mockUseCase := new(mocks.MockPolicyUseCase)
		handler := NewPolicyHandler(mockUseCase, testLogger())

		request := dto.CreatePolicyRequest{Name: "digits-required", RegexPattern: "[0-9]"}
		mockUseCase.On("Create", mock.Anything, mock.Anything).
			Return(nil, vaultDomain.ErrPolicyNameTaken).Once()

		c, w := createTestContext(http.MethodPost, "/v1/password-policies", request)
		handler.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Error_MissingRegexPattern", func(t *testing.T) {
		mockUseCase := new(mocks.MockPolicyUseCase)
		handler := NewPolicyHandler(mockUseCase, testLogger())

		request := dto.CreatePolicyRequest{Name: "digits-required"}
		c, w := createTestContext(http.MethodPost, "/v1/password-policies", request)
		handler.Create(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Create")
	})

	t.Run("Error_DescriptionTooLong", func(t *testing.T) {
		mockUseCase := new(mocks.MockPolicyUseCase)
		handler := NewPolicyHandler(mockUseCase, testLogger())

		request := dto.CreatePolicyRequest{
			Name:         "digits-required",
			Description:  strings.Repeat("x", 1001),
			RegexPattern: "[0-9]",
		}
		c, w := createTestContext(http.MethodPost, "/v1/password-policies", request)
		handler.Create(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Create")
	})
}

func TestPolicyHandler_Get(t *testing.T) {
	t.Run("Success_EmbedsCategories", func(t *testing.T) {
		mockUseCase := new(mocks.MockPolicyUseCase)
		handler := NewPolicyHandler(mockUseCase, testLogger())

		policyID := uuid.Must(uuid.NewV7())
		policy := &vaultDomain.Policy{
			ID:   policyID,
			Name: "digits-required",
			Categories: []*vaultDomain.Category{
				{ID: uuid.Must(uuid.NewV7()), Name: "databases", PolicyID: policyID},
			},
		}

		mockUseCase.On("Get", mock.Anything, policyID).Return(policy, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/password-policies/"+policyID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: policyID.String()}}
		handler.Get(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.PolicyResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Categories, 1)
		assert.Equal(t, "databases", response.Categories[0].Name)
	})

	t.Run("Error_InvalidUUID", func(t *testing.T) {
		mockUseCase := new(mocks.MockPolicyUseCase)
		handler := NewPolicyHandler(mockUseCase, testLogger())

		c, w := createTestContext(http.MethodGet, "/v1/password-policies/invalid-uuid", nil)
		c.Params = gin.Params{{Key: "id", Value: "invalid-uuid"}}
		handler.Get(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Get")
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		mockUseCase := new(mocks.MockPolicyUseCase)
		handler := NewPolicyHandler(mockUseCase, testLogger())

		policyID := uuid.Must(uuid.NewV7())
		mockUseCase.On("Get", mock.Anything, policyID).
			Return(nil, vaultDomain.ErrPolicyNotFound).Once()

		c, w := createTestContext(http.MethodGet, "/v1/password-policies/"+policyID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: policyID.String()}}
		handler.Get(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPolicyHandler_List(t *testing.T) {
	t.Run("Success_CustomPagination", func(t *testing.T) {
		mockUseCase := new(mocks.MockPolicyUseCase)
		handler := NewPolicyHandler(mockUseCase, testLogger())

		policies := []*vaultDomain.Policy{
			{ID: uuid.Must(uuid.NewV7()), Name: "digits-required"},
		}
		mockUseCase.On("List", mock.Anything, 10, 20).Return(policies, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/password-policies?offset=10&limit=20", nil)
		handler.List(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListPoliciesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Data, 1)
	})

	t.Run("Error_InvalidOffset", func(t *testing.T) {
		mockUseCase := new(mocks.MockPolicyUseCase)
		handler := NewPolicyHandler(mockUseCase, testLogger())

		c, w := createTestContext(http.MethodGet, "/v1/password-policies?offset=-1", nil)
		handler.List(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "List")
	})
}

func TestPolicyHandler_Update(t *testing.T) {
	t.Run("Success_PartialUpdate", func(t *testing.T) {
		mockUseCase := new(mocks.MockPolicyUseCase)
		handler := NewPolicyHandler(mockUseCase, testLogger())

		policyID := uuid.Must(uuid.NewV7())
		newPattern := "[A-Z]"
		policy := &vaultDomain.Policy{ID: policyID, Name: "digits-required", RegexPattern: newPattern}

		request := dto.UpdatePolicyRequest{RegexPattern: &newPattern}
		mockUseCase.On("Update", mock.Anything, policyID, request.ToUpdatePolicyInput()).
			Return(policy, nil).Once()

		c, w := createTestContext(http.MethodPatch, "/v1/password-policies/"+policyID.String(), request)
		c.Params = gin.Params{{Key: "id", Value: policyID.String()}}
		handler.Update(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.PolicyResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, newPattern, response.RegexPattern)
	})

	t.Run("Error_InvalidRegex", func(t *testing.T) {
		mockUseCase := new(mocks.MockPolicyUseCase)
		handler := NewPolicyHandler(mockUseCase, testLogger())

		policyID := uuid.Must(uuid.NewV7())
		badPattern := "(unclosed"
		request := dto.UpdatePolicyRequest{RegexPattern: &badPattern}

		c, w := createTestContext(http.MethodPatch, "/v1/password-policies/"+policyID.String(), request)
		c.Params = gin.Params{{Key: "id", Value: policyID.String()}}
		handler.Update(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Update")
	})
}

func TestPolicyHandler_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockUseCase := new(mocks.MockPolicyUseCase)
		handler := NewPolicyHandler(mockUseCase, testLogger())

		policyID := uuid.Must(uuid.NewV7())
		mockUseCase.On("Delete", mock.Anything, policyID).Return(nil).Once()

		c, w := createTestContext(http.MethodDelete, "/v1/password-policies/"+policyID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: policyID.String()}}
		handler.Delete(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("Error_PolicyInUse", func(t *testing.T) {
		mockUseCase := new(mocks.MockPolicyUseCase)
		handler := NewPolicyHandler(mockUseCase, testLogger())

		policyID := uuid.Must(uuid.NewV7())
		mockUseCase.On("Delete", mock.Anything, policyID).
			Return(vaultDomain.ErrPolicyInUse).Once()

		c, w := createTestContext(http.MethodDelete, "/v1/password-policies/"+policyID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: policyID.String()}}
		handler.Delete(c)

		assert.Equal(t, http.StatusConflict, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "conflict", response["error"])
	})
}
