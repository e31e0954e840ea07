package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
	"github.com/andrescamacho/containeryard-go/internal/domain/workorder"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
)

const (
	CodeInternal         = "INTERNAL_ERROR"
	CodeNotFoundRoute    = "ROUTE_NOT_FOUND"
	CodeRateLimited      = "RATE_LIMITED"
	CodeMalformedBody    = "MALFORMED_REQUEST"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// statusByCode maps domain error codes to HTTP statuses. Physical stacking
// rules are 422, state conflicts 409.
var statusByCode = map[string]int{
	shared.CodeValidation:         http.StatusBadRequest,
	CodeMalformedBody:             http.StatusBadRequest,
	yard.CodeInvalidZone:          http.StatusBadRequest,
	yard.CodeInvalidRow:           http.StatusBadRequest,
	yard.CodeInvalidBay:           http.StatusBadRequest,
	yard.CodeInvalidTier:          http.StatusBadRequest,
	yard.CodeInvalidSubSlot:       http.StatusBadRequest,
	yard.CodeInvalidCoordinate:    http.StatusBadRequest,
	yard.CodeUnknownSizeClass:     http.StatusBadRequest,
	yard.CodeInvalidCargoStatus:   http.StatusBadRequest,
	workorder.CodeInvalidPriority: http.StatusBadRequest,

	yard.CodeContainerStayNotFound:  http.StatusNotFound,
	yard.CodePositionNotFound:       http.StatusNotFound,
	workorder.CodeWorkOrderNotFound: http.StatusNotFound,
	workorder.CodeVehicleNotFound:   http.StatusNotFound,
	CodeNotFoundRoute:               http.StatusNotFound,

	yard.CodeContainerAlreadyPlaced:      http.StatusConflict,
	yard.CodeContainerExited:             http.StatusConflict,
	yard.CodeContainerBlocked:            http.StatusConflict,
	yard.CodePositionOccupied:            http.StatusConflict,
	workorder.CodeWorkOrderAlreadyExists: http.StatusConflict,
	workorder.CodeInvalidStatus:          http.StatusConflict,
	workorder.CodeNotAssignedToVehicle:   http.StatusConflict,

	yard.CodeSubSlotNotAllowed:           http.StatusUnprocessableEntity,
	yard.CodeNoSupport:                   http.StatusUnprocessableEntity,
	yard.CodeRowSegregationViolation:     http.StatusUnprocessableEntity,
	yard.CodeSizeIncompatible:            http.StatusUnprocessableEntity,
	yard.CodeWeightDistributionViolation: http.StatusUnprocessableEntity,
	yard.CodeNoAvailablePositions:        http.StatusUnprocessableEntity,

	CodeMethodNotAllowed: http.StatusMethodNotAllowed,
	CodeRateLimited:      http.StatusTooManyRequests,
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"requestId,omitempty"`
	Timestamp string                 `json:"timestamp"`
	Path      string                 `json:"path"`
}

// StatusFor returns the HTTP status of an error code; unknown codes are 500
func StatusFor(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// RespondError writes err as an ErrorResponse and aborts the chain.
// Errors without a domain code are logged and hidden behind INTERNAL_ERROR.
func RespondError(c *gin.Context, err error) {
	code := shared.CodeOf(err)
	message := err.Error()
	details := shared.DetailsOf(err)

	if code == "" {
		RequestLogger(c).Error("request failed", "error", err)
		code = CodeInternal
		message = "an unexpected error occurred"
		details = nil
	}

	status := StatusFor(code)
	if status < http.StatusInternalServerError {
		RequestLogger(c).Warn("request rejected", "code", code, "status", status, "message", message)
	}

	abortWith(c, status, code, message, details)
}

func abortWith(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: GetRequestID(c),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      c.Request.URL.Path,
	})
}

// NoRoute answers unknown paths in the standard error shape
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		abortWith(c, http.StatusNotFound, CodeNotFoundRoute, "no route for "+c.Request.Method+" "+c.Request.URL.Path, nil)
	}
}

func NoMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		abortWith(c, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method "+c.Request.Method+" not allowed", nil)
	}
}
