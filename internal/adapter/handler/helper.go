package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
	httpmw "github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/infrastructure/http/middleware"
	ucerrors "github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/errors"
)

// Response shapes
type success struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// statusForKind maps a core error kind to an HTTP status
func statusForKind(kind ucerrors.Kind) int {
	switch kind {
	case ucerrors.KindNotFound:
		return http.StatusNotFound
	case ucerrors.KindInvalidState, ucerrors.KindValidation:
		return http.StatusBadRequest
	case ucerrors.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// HandleSuccess writes a standardized success response
func HandleSuccess(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := success{
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	kind := ucerrors.KindOf(err)
	status := statusForKind(kind)

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}

	return c.JSON(status, errs{
		Code:    string(kind),
		Message: message,
	})
}

// bindAndValidate binds the request body and runs struct validation
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// requireActor reads the authenticated actor set by the auth middleware
func requireActor(c echo.Context) (entities.Actor, error) {
	actor, ok := httpmw.GetActorFromContext(c)
	if !ok {
		return entities.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	}
	return actor, nil
}

// parseIDParam parses a uuid path parameter
func parseIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// forbidden is the standard insufficient-permissions response
func forbidden(c echo.Context) error {
	return c.JSON(http.StatusForbidden, errs{
		Code:    "FORBIDDEN",
		Message: "insufficient permissions",
	})
}
