package handler

import (
	"errors"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-activities/internal/middleware"
)

// pathParam returns the URL-decoded value of a route parameter. The result owns
// its memory; fiber reuses the request buffer once the handler returns.
func pathParam(c *fiber.Ctx, key string) string {
	raw := fiberutils.CopyString(c.Params(key))
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// queryParam returns a copy of the query value that outlives the request.
func queryParam(c *fiber.Ctx, key string) string {
	return fiberutils.CopyString(c.Query(key))
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

func validationDetail(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return "invalid request"
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fields = append(fields, strings.ToLower(fieldErr.Field()))
	}
	return strings.Join(fields, ", ") + " is required"
}
