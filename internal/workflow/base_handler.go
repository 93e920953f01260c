package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/pkg/logger"
)

const unexpectedErrorMessage = "An unexpected error occurred. Please try again."

// sensitiveFields are form fields never written to logs
var sensitiveFields = []string{
	"password",
	"password_hash",
	"token",
	"secret",
	"session",
}

// BaseHandler provides the rendering shared by every menu step.
type BaseHandler struct {
	Logger    *slog.Logger
	Presenter Presenter
}

func NewBaseHandler(presenter Presenter, lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	return &BaseHandler{Logger: lg, Presenter: presenter}
}

// ShowError renders err to the operator. Cancellations are informational.
func (h *BaseHandler) ShowError(ctx context.Context, err error) {
	if err == nil {
		return
	}

	appErr, ok := internal.IsAppError(err)
	if !ok {
		h.Logger.ErrorContext(ctx, "step failed", "error", err)
		h.Presenter.ShowMessage(MessageError, unexpectedErrorMessage)
		return
	}

	switch appErr.Type {
	case internal.ErrorTypeCancelled:
		h.Logger.DebugContext(ctx, "step cancelled", "code", appErr.Code)
		h.Presenter.ShowMessage(MessageInfo, appErr.Message)
	case internal.ErrorTypeStorageUnavailable:
		h.Logger.ErrorContext(ctx, "storage unavailable", "error", err)
		h.Presenter.ShowMessage(MessageError, appErr.Message)
	case internal.ErrorTypePermissionDenied:
		// already logged and audited by the authorizer
		h.Presenter.ShowMessage(MessageError, appErr.GetDetailedMessage())
	default:
		h.Logger.InfoContext(ctx, "step rejected", "type", appErr.Type, "code", appErr.Code, "error", err)
		h.Presenter.ShowMessage(MessageError, appErr.GetDetailedMessage())
	}
}

// RunStep executes step, rendering whatever it returns. Only exhausted input
// and an interrupted context are handed back to the caller. A panicking step
// is logged with its stack and reported like any other unexpected error.
func (h *BaseHandler) RunStep(ctx context.Context, name string, step func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			h.Logger.ErrorContext(ctx, "panic recovered",
				"error", r,
				"step", name,
				"stack", string(debug.Stack()))
			h.Presenter.ShowMessage(MessageError, unexpectedErrorMessage)
			err = nil
		}
	}()

	if err := step(ctx); err != nil {
		if isEOF(err) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			h.Logger.InfoContext(ctx, "step interrupted", "step", name, "error", err)
			return ctxErr
		}
		h.ShowError(ctx, err)
	}
	return nil
}

// Choose wraps ChooseFromList, rejecting ids that were not offered.
func (h *BaseHandler) Choose(title, empty string, rows []Row) (int64, error) {
	if len(rows) == 0 {
		return 0, internal.NewCancelled(empty, internal.ErrCodeDeclined)
	}

	id, ok, err := h.Presenter.ChooseFromList(title, rows)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, internal.ErrDeclined
	}
	for _, row := range rows {
		if row.ID == id {
			return id, nil
		}
	}
	return 0, internal.NewNotFoundError(fmt.Sprintf("%d is not one of the listed entries.", id), internal.ErrCodeSelectionNotFound)
}

// Collect asks for schema and logs what was typed, minus secrets.
func (h *BaseHandler) Collect(ctx context.Context, title string, schema []Field) (FieldValues, error) {
	values, err := h.Presenter.CollectFields(title, schema)
	if err != nil {
		return nil, err
	}
	h.Logger.DebugContext(ctx, "form collected", "form", title, "values", filterSensitive(values))
	return values, nil
}

func filterSensitive(values FieldValues) map[string]string {
	out := make(map[string]string, len(values))
	for name, value := range values {
		if isSensitive(name) {
			out[name] = "[REDACTED]"
			continue
		}
		out[name] = value
	}
	return out
}

func isSensitive(name string) bool {
	lower := strings.ToLower(name)
	for _, field := range sensitiveFields {
		if strings.Contains(lower, field) {
			return true
		}
	}
	return false
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF)
}
