package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jobportal/backend/internal/middleware"
	"github.com/jobportal/backend/internal/models"
	"github.com/jobportal/backend/internal/respond"
	"github.com/jobportal/backend/internal/store"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Handler holds auth-related HTTP handlers.
type Handler struct {
	users  UserStore
	tokens *Tokens
	logger *zap.Logger
}

func NewHandler(users UserStore, tokens *Tokens, logger *zap.Logger) *Handler {
	return &Handler{users: users, tokens: tokens, logger: logger}
}

// Register creates a new user and returns a bearer token for it.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		respond.Error(w, http.StatusBadRequest, "validation_error", "email, password, firstName and lastName are required")
		return
	}
	if !req.UserType.Valid() {
		respond.Error(w, http.StatusBadRequest, "validation_error", "userType must be employer or jobseeker")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("hash password", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "internal_error", "server error during registration")
		return
	}

	user := &models.User{
		Email:     req.Email,
		Password:  string(hashed),
		UserType:  req.UserType,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Phone:     req.Phone,
		Location:  req.Location,
	}
	if err := h.users.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			respond.Error(w, http.StatusConflict, "duplicate_email", "user already exists with this email")
			return
		}
		h.logger.Error("create user", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "internal_error", "server error during registration")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.logger.Error("issue token", zap.Error(err), zap.String("user_id", user.ID))
		respond.Error(w, http.StatusInternalServerError, "internal_error", "server error during registration")
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"token":   token,
		"user":    user,
	})
}

// Login authenticates a user and returns a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	user, err := h.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		respond.Error(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.logger.Error("issue token", zap.Error(err), zap.String("user_id", user.ID))
		respond.Error(w, http.StatusInternalServerError, "internal_error", "server error during login")
		return
	}

	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// Profile returns the authenticated user.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		respond.Error(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"user": user})
}
