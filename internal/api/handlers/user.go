package handlers

import (
	"log/slog"
	"net/http"

	models "github.com/adityanarayanofficial/marketplace-platform/internal/models"
	service "github.com/adityanarayanofficial/marketplace-platform/internal/services"
	"github.com/adityanarayanofficial/marketplace-platform/internal/utils"
	"github.com/adityanarayanofficial/marketplace-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type UserHandler struct {
	userService *service.UserService
	validator   *validator.Validate
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService, validator: utils.NewValidator()}
}

func (h *UserHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.RegisterRequest

		// Validate Input
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		user, err := h.userService.Register(r.Context(), &req)

		if err != nil {
			slog.Warn("User registration failed", slog.String("email", req.Email), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("User registered", slog.String("userId", user.ID.String()))
		response.Success(w, http.StatusCreated, "Registration successful. Check your email for the activation link.", nil)

	}
}

func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.LoginRequest

		// Validate Input
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.userService.Login(r.Context(), &req)

		if err != nil {
			slog.Warn("Login failed", slog.String("email", req.Email), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("User logged in", slog.String("email", req.Email))
		response.Success(w, http.StatusOK, "Login successful", resp)

	}
}

func (h *UserHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.LogoutRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.userService.Logout(r.Context(), req.Refresh); err != nil {
			slog.Warn("Logout failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, "Logout successful", nil)

	}
}

func (h *UserHandler) Activate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		uid := r.PathValue("uid")
		token := r.PathValue("token")

		if err := h.userService.Activate(r.Context(), uid, token); err != nil {
			slog.Warn("Account activation failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, "Account activated successfully", nil)

	}
}
