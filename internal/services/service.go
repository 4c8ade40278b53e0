package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joshua-takyi/eventtickets/internal/models"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Languages holds the supported language tags and the default one.
type Languages struct {
	Supported []string
	Default   string
}

func (l Languages) IsSupported(lang string) bool {
	for _, s := range l.Supported {
		if s == lang {
			return true
		}
	}
	return false
}

// internal logs the storage failure and hides it behind ErrInternal unless
// it already carries one of the domain sentinels.
func internal(ctx context.Context, logger *slog.Logger, op string, err error) error {
	for _, known := range []error{
		models.ErrValidation, models.ErrNotFound, models.ErrUnauthorized,
		models.ErrForbidden, models.ErrConflict, models.ErrInternal,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	logger.ErrorContext(ctx, "storage failure", "op", op, "error", err)
	return fmt.Errorf("%w: %s", models.ErrInternal, op)
}

// validationError flattens validator output into one message.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: invalid %s", models.ErrValidation, strings.Join(fields, ", "))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

type clock func() time.Time

func (c clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c()
}
