package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andresuchdata/streamtape-gateway/internal/streamtape"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// respondError renders err as {"detail": ...} with the status it carries.
// Errors that are not *streamtape.Error become a 500.
func respondError(c *gin.Context, err error) {
	gwErr, ok := streamtape.AsError(err)
	if !ok {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("unclassified error")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}

	event := log.Warn()
	if gwErr.StatusCode >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).
		Str("kind", gwErr.Kind.String()).
		Int("status", gwErr.StatusCode).
		Str("path", c.FullPath()).
		Msg("request failed")

	_ = c.Error(err)
	c.JSON(gwErr.StatusCode, gin.H{"detail": gwErr.Detail})
}

// respondBindError reports a request that failed its binding tags.
func respondBindError(c *gin.Context, err error) {
	respondError(c, streamtape.NewValidationError("%s", describeBindError(err)))
}

func describeBindError(err error) string {
	if errors.Is(err, io.EOF) {
		return "request body is required"
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return strings.Join(msgs, "; ")
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "httpurl":
		return fmt.Sprintf("%s must be an absolute http or https URL", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
