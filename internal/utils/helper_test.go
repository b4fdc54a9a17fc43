package utils_test

import (
	"testing"

	"github.com/adityanarayanofficial/marketplace-platform/internal/models"
	"github.com/adityanarayanofficial/marketplace-platform/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestPasswordMeetsPolicy(t *testing.T) {

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"uppercase and symbol", "P@ssword123", true},
		{"exactly eight characters", "Abcdef7!", true},
		{"unicode symbol counts", "Password§", true},
		{"too short", "P@ss1", false},
		{"no uppercase", "p@ssword123", false},
		{"no symbol", "Password123", false},
		{"digits are not symbols", "Password1234", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.PasswordMeetsPolicy(tt.password))
		})
	}
}

func TestNewValidator_PasswordTag(t *testing.T) {

	validate := utils.NewValidator()

	valid := models.RegisterRequest{
		Email:     "test@example.com",
		Password:  "P@ssword123",
		FirstName: "Test",
	}
	assert.NoError(t, validate.Struct(valid))

	weak := valid
	weak.Password = "password"
	assert.Error(t, validate.Struct(weak))
}

func TestNewValidator_RoleOneOf(t *testing.T) {

	validate := utils.NewValidator()

	req := models.RegisterRequest{
		Email:     "test@example.com",
		Password:  "P@ssword123",
		FirstName: "Test",
		Role:      "superuser",
	}

	assert.Error(t, validate.Struct(req))

	req.Role = models.RoleStaff
	assert.NoError(t, validate.Struct(req))
}
