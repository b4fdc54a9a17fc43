// Package tokens issues the time-scoped activation tokens emailed to new
// accounts. A token hashes the user's id, activation state and password
// hash, so activating the account (or changing the password) invalidates
// every previously issued token and makes each one effectively single-use.
package tokens

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/adityanarayanofficial/marketplace-platform/internal/models"
	"github.com/google/uuid"
)

type ActivationTokenGenerator struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewActivationTokenGenerator(secret []byte, ttl time.Duration) *ActivationTokenGenerator {
	return &ActivationTokenGenerator{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// EncodeUID renders the user id as the URL-safe path segment used in the
// activation link.
func EncodeUID(id uuid.UUID) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id.String()))
}

func DecodeUID(encoded string) (uuid.UUID, error) {

	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid uid encoding: %w", err)
	}

	id, err := uuid.Parse(string(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid uid: %w", err)
	}

	return id, nil
}

// Make returns a token of the form "<timestamp-base36>-<signature>".
func (g *ActivationTokenGenerator) Make(user *models.User) string {

	ts := g.now().Unix()

	return fmt.Sprintf("%s-%s", strconv.FormatInt(ts, 36), g.signature(user, ts))
}

// Check reports whether the token was issued for this user in its current
// state and has not outlived the configured TTL.
func (g *ActivationTokenGenerator) Check(user *models.User, token string) bool {

	tsPart, sig, found := strings.Cut(token, "-")
	if !found {
		return false
	}

	ts, err := strconv.ParseInt(tsPart, 36, 64)
	if err != nil {
		return false
	}

	if !hmac.Equal([]byte(sig), []byte(g.signature(user, ts))) {
		return false
	}

	issued := time.Unix(ts, 0)
	now := g.now()

	if issued.After(now) {
		return false
	}

	return now.Sub(issued) <= g.ttl
}

func (g *ActivationTokenGenerator) signature(user *models.User, ts int64) string {

	mac := hmac.New(sha256.New, g.secret)

	fmt.Fprintf(mac, "%s:%t:%s:%d", user.ID, user.IsActive, user.Password, ts)

	return hex.EncodeToString(mac.Sum(nil))
}
