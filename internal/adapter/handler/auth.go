package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authdto "github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/adapter/dto/auth"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/adapter/repository"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/pkg/jwt"
)

// Auth issues development tokens. Production deployments sit behind an
// external identity provider that mints the same JWT shape; this
// endpoint only exists outside production.
type Auth struct {
	userRepo    *repository.UserRepository
	jwtManager  *jwt.Manager
	environment string
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userRepo *repository.UserRepository, jwtManager *jwt.Manager, environment string, logger *zap.Logger) *Auth {
	return &Auth{
		userRepo:    userRepo,
		jwtManager:  jwtManager,
		environment: environment,
		logger:      logger,
	}
}

// DevToken handles POST /auth/dev-token
func (h *Auth) DevToken(c echo.Context) error {
	if h.environment == "production" {
		return echo.NewHTTPError(http.StatusNotFound, "not available")
	}

	var req authdto.DevTokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userRepo.FindByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "unknown user")
		}
		return HandleError(h.logger, c, err)
	}

	accessToken, err := h.jwtManager.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	refreshToken, err := h.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, authdto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(h.jwtManager.GetAccessExpiry().Seconds()),
	})
}
