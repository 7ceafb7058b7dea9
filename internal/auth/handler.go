package auth

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"

	sharedauth "resume-api/internal/shared/auth"
	"resume-api/internal/shared/server/respond"
	"resume-api/internal/users"
)

// Handler wires HTTP handlers to the auth service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches auth routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth", h.authenticate)
	rg.POST("/users", h.createUser)
}

type authRequest struct {
	Email string `json:"email"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *Handler) authenticate(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	email, ok := normalizeEmail(req.Email)
	if !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email is not a valid address", nil)
		return
	}

	token, err := h.Svc.Authenticate(c.Request.Context(), email)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to authenticate", nil)
		return
	}

	respond.OK(c, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	email, ok := normalizeEmail(req.Email)
	if !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email is not a valid address", nil)
		return
	}

	role := sharedauth.RoleGuest
	if req.Role != "" {
		role = sharedauth.Role(strings.ToLower(strings.TrimSpace(req.Role)))
		if !role.Valid() {
			respond.Error(c, http.StatusBadRequest, "validation_error", "role must be owner or guest", nil)
			return
		}
	}

	user, err := h.Svc.CreateUser(c.Request.Context(), email, req.Password, role)
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			respond.Error(c, http.StatusConflict, "conflict", "email already registered", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to create user", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, user)
}

func normalizeEmail(raw string) (string, bool) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", false
	}
	return email, true
}
