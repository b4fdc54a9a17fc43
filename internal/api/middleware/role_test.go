package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adityanarayanofficial/marketplace-platform/internal/api/middleware"
	"github.com/adityanarayanofficial/marketplace-platform/internal/models"
	"github.com/adityanarayanofficial/marketplace-platform/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequireRole(t *testing.T) {

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		allowed        []models.Role
		callerRole     models.Role
		expectedStatus int
		expectNext     bool
	}{
		{
			name:           "Admin Allowed For Admin-Only",
			allowed:        []models.Role{models.RoleAdmin},
			callerRole:     models.RoleAdmin,
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "Agent Forbidden For Admin-Only",
			allowed:        []models.Role{models.RoleAdmin},
			callerRole:     models.RoleAgent,
			expectedStatus: http.StatusForbidden,
			expectNext:     false,
		},
		{
			name:           "Staff Allowed For Approval",
			allowed:        []models.Role{models.RoleAdmin, models.RoleStaff},
			callerRole:     models.RoleStaff,
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "Agent Forbidden For Approval",
			allowed:        []models.Role{models.RoleAdmin, models.RoleStaff},
			callerRole:     models.RoleAgent,
			expectedStatus: http.StatusForbidden,
			expectNext:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled = false

			req := testutils.CreateTestRequestWithContext(http.MethodPost, "/categories", nil, uuid.New(), tt.callerRole, nil)
			rec := httptest.NewRecorder()

			middleware.RequireRole(tt.allowed...)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
		})
	}

	t.Run("No Claims In Context", func(t *testing.T) {
		nextCalled = false

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/categories", nil, nil)
		rec := httptest.NewRecorder()

		middleware.RequireRole(models.RoleAdmin)(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, nextCalled)
	})
}
