package http

import (
	"context"
	"errors"
	"net/http"

	"smart-todo-client/internal/task"
	"smart-todo-client/internal/task/interpret"
	"smart-todo-client/internal/task/repository"
	"smart-todo-client/internal/task/selection"
	"smart-todo-client/pkg/response"
)

// statusClientClosedRequest answers a request whose caller went away before the gateway replied.
const statusClientClosedRequest = 499

var (
	errInvalidID = response.NewHTTPError(http.StatusBadRequest, "invalid task id")
	errInternal  = errors.New("internal error")
)

// mapError translates use-case errors into HTTP errors. Unknown errors return errInternal.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, task.ErrEmptyPatch),
		errors.Is(err, task.ErrNoSelection),
		errors.Is(err, repository.ErrValidation):
		return response.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, task.ErrTaskNotFound),
		errors.Is(err, selection.ErrUnknownTask),
		errors.Is(err, repository.ErrNotFound):
		return response.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, interpret.ErrNothingToAccept):
		return response.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrInterpretationFailed):
		return response.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, repository.ErrTimeout):
		return response.NewHTTPError(http.StatusGatewayTimeout, err.Error())
	case errors.Is(err, repository.ErrNetworkUnreachable),
		errors.Is(err, repository.ErrServer):
		return response.NewHTTPError(http.StatusBadGateway, err.Error())
	case errors.Is(err, interpret.ErrClosed):
		return response.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	case isCanceled(err):
		return response.NewHTTPError(statusClientClosedRequest, err.Error())
	default:
		return errInternal
	}
}

func isCanceled(err error) bool {
	return errors.Is(err, repository.ErrCanceled) || errors.Is(err, context.Canceled)
}
