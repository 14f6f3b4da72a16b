package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"productmanager/internal/hash"
	"productmanager/internal/logging"
	"productmanager/internal/models"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret []byte
}

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type authResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "auth.register")

	var req authRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return errorResponse(c, http.StatusBadRequest, "Email and password are required")
	}

	var existing models.User
	err := h.DB.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return errorResponse(c, http.StatusBadRequest, "Email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Error("register failed", "error", err)
		return errorResponse(c, http.StatusInternalServerError, "Registration failed")
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register failed", "error", err)
		return errorResponse(c, http.StatusInternalServerError, "Registration failed")
	}

	role := models.RoleUser
	if req.Role != "" {
		role = strings.ToUpper(req.Role)
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         role,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		l.Error("register failed", "error", err)
		return errorResponse(c, http.StatusInternalServerError, "Registration failed")
	}

	token, err := h.signToken(user)
	if err != nil {
		l.Error("register failed", "error", err)
		return errorResponse(c, http.StatusInternalServerError, "Registration failed")
	}

	l.Info("user registered", "email", user.Email, "role", user.Role)
	return c.JSON(http.StatusOK, authResponse{Token: token, Email: user.Email, Role: user.Role})
}

func (h *AuthHandler) Login(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "auth.login")

	var req authRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Invalid request body")
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return errorResponse(c, http.StatusUnauthorized, "Invalid credentials")
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return errorResponse(c, http.StatusUnauthorized, "Invalid credentials")
	}

	token, err := h.signToken(user)
	if err != nil {
		l.Error("login failed", "error", err)
		return errorResponse(c, http.StatusInternalServerError, "Login failed")
	}

	l.Info("user logged in", "email", user.Email, "role", user.Role)
	return c.JSON(http.StatusOK, authResponse{Token: token, Email: user.Email, Role: user.Role})
}

func (h *AuthHandler) signToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.Email,
		"role": user.Role,
		"exp":  time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.JWTSecret)
}
