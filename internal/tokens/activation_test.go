package tokens_test

import (
	"testing"
	"time"

	"github.com/adityanarayanofficial/marketplace-platform/internal/models"
	"github.com/adityanarayanofficial/marketplace-platform/internal/tokens"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeUID(t *testing.T) {

	id := uuid.New()

	encoded := tokens.EncodeUID(id)
	decoded, err := tokens.DecodeUID(encoded)

	require.NoError(t, err)
	assert.Equal(t, id, decoded)
}

func TestDecodeUID_Invalid(t *testing.T) {

	t.Run("Not Base64", func(t *testing.T) {
		_, err := tokens.DecodeUID("!!!")
		assert.Error(t, err)
	})

	t.Run("Not A UUID", func(t *testing.T) {
		_, err := tokens.DecodeUID("bm90LWEtdXVpZA")
		assert.Error(t, err)
	})

}

func TestActivationToken(t *testing.T) {

	generator := tokens.NewActivationTokenGenerator([]byte("secret"), 72*time.Hour)

	user := &models.User{
		ID:       uuid.New(),
		Email:    "test@example.com",
		Password: "$2a$10$hash",
		IsActive: false,
	}

	t.Run("Valid Token Verifies", func(t *testing.T) {

		token := generator.Make(user)

		assert.True(t, generator.Check(user, token))
	})

	t.Run("Tampered Token Fails", func(t *testing.T) {

		token := generator.Make(user)

		assert.False(t, generator.Check(user, token+"x"))
		assert.False(t, generator.Check(user, "x"+token))
	})

	t.Run("Token Bound To User State", func(t *testing.T) {

		token := generator.Make(user)

		// activation changes the hash input, the old token dies with it
		activated := *user
		activated.IsActive = true
		assert.False(t, generator.Check(&activated, token))

		// so does a password change
		rehashed := *user
		rehashed.Password = "$2a$10$otherhash"
		assert.False(t, generator.Check(&rehashed, token))
	})

	t.Run("Token Bound To Secret", func(t *testing.T) {

		other := tokens.NewActivationTokenGenerator([]byte("other-secret"), 72*time.Hour)

		token := generator.Make(user)

		assert.False(t, other.Check(user, token))
	})

	t.Run("Expired Token Fails", func(t *testing.T) {

		shortLived := tokens.NewActivationTokenGenerator([]byte("secret"), time.Nanosecond)

		token := shortLived.Make(user)
		time.Sleep(2 * time.Millisecond)

		assert.False(t, shortLived.Check(user, token))
	})

	t.Run("Garbage Token Fails", func(t *testing.T) {

		assert.False(t, generator.Check(user, ""))
		assert.False(t, generator.Check(user, "no-separator-at-all!"))
		assert.False(t, generator.Check(user, "zz"))
	})

}
