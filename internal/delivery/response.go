package delivery

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Shoxzn12/level-up-pc/internal/clients"
	"github.com/Shoxzn12/level-up-pc/internal/domain"

	"github.com/gin-gonic/gin"
)

func ErrorResponse(c *gin.Context, statusCode int, message, code string) {
	c.JSON(statusCode, domain.ErrorBody{Error: message, Code: code})
}

// writeError maps a use-case error onto the HTTP taxonomy. Persistence and unknown
// errors get a generic message so no internal detail leaks.
func writeError(c *gin.Context, err error) {
	status, code := mapErrorToStatus(err)
	message := err.Error()

	var perr *clients.ProviderError
	switch {
	case errors.As(err, &perr):
		message = perr.Message
	case errors.Is(err, domain.ErrPersistence):
		message = "Could not save catalog changes"
	case status == http.StatusInternalServerError && code == "":
		message = "Internal server error"
	}
	ErrorResponse(c, status, message, code)
}

func mapErrorToStatus(err error) (int, string) {
	var perr *clients.ProviderError
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, domain.CodeValidation
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ""
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, ""
	case errors.Is(err, domain.ErrTestTokenRequired):
		return http.StatusBadRequest, domain.CodeUseTestAccessToken
	case errors.Is(err, domain.ErrNotConfigured):
		return http.StatusInternalServerError, domain.CodeMPNotConfigured
	case errors.Is(err, domain.ErrMissingInitPoint):
		return http.StatusInternalServerError, domain.CodeMissingRedirectURL
	case errors.As(err, &perr):
		if perr.StatusCode >= 400 {
			return perr.StatusCode, domain.CodeProviderError
		}
		return http.StatusBadGateway, domain.CodeProviderError
	}
	return http.StatusInternalServerError, ""
}

// bindStrictJSON decodes the body into dst and rejects unknown fields and trailing data.
func bindStrictJSON(c *gin.Context, dst interface{}) error {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return fmt.Errorf("could not read body: %w", domain.ErrValidation)
	}
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body (%s): %w", describeDecodeError(err), domain.ErrValidation)
	}
	if decoder.More() {
		return fmt.Errorf("invalid request body (trailing data): %w", domain.ErrValidation)
	}
	return nil
}

func describeDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("field %q must be %s", typeErr.Field, typeErr.Type)
	}
	if errors.Is(err, io.EOF) {
		return "empty body"
	}
	return err.Error()
}
