package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/adityanarayanofficial/marketplace-platform/internal/errors"
	models "github.com/adityanarayanofficial/marketplace-platform/internal/models"
	repository "github.com/adityanarayanofficial/marketplace-platform/internal/repositories"
	"github.com/adityanarayanofficial/marketplace-platform/internal/tokens"
	"github.com/adityanarayanofficial/marketplace-platform/internal/worker"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// EmailQueue is the fire-and-forget side of the worker dispatcher.
type EmailQueue interface {
	Enqueue(job worker.EmailJob) bool
}

type UserService struct {
	repo       repository.UserRepository
	blacklist  repository.TokenBlacklist
	activation *tokens.ActivationTokenGenerator
	queue      EmailQueue
	jwtKey     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	baseURL    string
}

func NewUserService(repo repository.UserRepository, blacklist repository.TokenBlacklist, activation *tokens.ActivationTokenGenerator, queue EmailQueue, jwtKey []byte, accessTTL, refreshTTL time.Duration, baseURL string) *UserService {
	return &UserService{
		repo:       repo,
		blacklist:  blacklist,
		activation: activation,
		queue:      queue,
		jwtKey:     jwtKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Register creates an inactive account and queues the activation email.
// The password complexity policy is enforced earlier by request
// validation; this layer owns uniqueness and hashing.
func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {

	existingUser, _ := s.repo.GetUserByEmail(ctx, req.Email)
	if existingUser != nil {
		return nil, errors.ValidationError("Email already registered")
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to secure password").WithError(err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleAgent
	}

	user := &models.User{
		ID:        uuid.New(),
		Email:     req.Email,
		Password:  string(hashedPassword),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
		IsActive:  false,
	}

	err = s.repo.CreateUser(ctx, user)
	if err != nil {
		if stderrors.Is(err, repository.ErrDuplicate) {
			return nil, errors.ValidationError("Email already registered")
		}

		return nil, errors.DatabaseError("Failed to create user").WithError(err)
	}

	s.sendActivationEmail(user)

	return user, nil

}

func (s *UserService) sendActivationEmail(user *models.User) {

	uid := tokens.EncodeUID(user.ID)
	token := s.activation.Make(user)

	link := fmt.Sprintf("%s/activate/%s/%s", s.baseURL, uid, token)

	s.queue.Enqueue(worker.EmailJob{
		To:      user.Email,
		Subject: "Activate Your Account",
		Body:    fmt.Sprintf("Hi %s,\n\nClick the link to activate your account:\n%s", user.FirstName, link),
	})
}

// Activate consumes a (uid, token) pair from the activation link. A
// tampered, expired or already-used token leaves the account inactive.
func (s *UserService) Activate(ctx context.Context, uid, token string) error {

	id, err := tokens.DecodeUID(uid)
	if err != nil {
		return errors.AuthError("Activation link is invalid").WithError(err)
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return errors.AuthError("Activation link is invalid").WithError(err)
	}

	// an already-active user fails the check too: activation changed the
	// token's hash input
	if !s.activation.Check(user, token) {
		return errors.AuthError("Activation link is invalid or has expired")
	}

	if err := s.repo.Activate(ctx, id); err != nil {
		return errors.DatabaseError("Failed to activate account").WithError(err)
	}

	return nil
}

func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, errors.AuthError("Invalid email or password")
	}

	if !user.IsActive {
		return nil, errors.AuthError("Account is not activated")
	}

	access, err := s.signToken(user, models.TokenTypeAccess, s.accessTTL)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	refresh, err := s.signToken(user, models.TokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.LoginResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		Tokens: models.TokenPair{
			Access:  access,
			Refresh: refresh,
		},
		ExpiresIn: int(s.accessTTL.Seconds()),
	}, nil

}

func (s *UserService) signToken(user *models.User, tokenType string, ttl time.Duration) (string, error) {

	claims := &models.Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.jwtKey)
}

// Logout adds the refresh token to the revocation set. Access tokens
// already issued stay valid until natural expiry.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {

	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(refreshToken, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})

	if err != nil || !token.Valid {
		return errors.AuthError("Invalid refresh token").WithError(err)
	}

	if claims.TokenType != models.TokenTypeRefresh || claims.ID == "" {
		return errors.AuthError("Invalid refresh token")
	}

	revoked, err := s.blacklist.Contains(ctx, claims.ID)
	if err != nil {
		return errors.InternalError("Failed to check token blacklist").WithError(err)
	}

	if revoked {
		return errors.AuthError("Invalid refresh token")
	}

	ttl := time.Until(claims.ExpiresAt.Time)

	if err := s.blacklist.Add(ctx, claims.ID, ttl); err != nil {
		return errors.InternalError("Failed to revoke token").WithError(err)
	}

	return nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("User not found").WithError(err)
	}

	return user, nil

}
