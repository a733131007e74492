package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"smart-todo-client/internal/model"
	"smart-todo-client/internal/task/repository"
)

type implGateway struct {
	client   *Client
	validate *validator.Validate
}

// New creates the Gateway backed by client.
func New(client *Client) repository.Gateway {
	return &implGateway{
		client:   client,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (g *implGateway) ListTasks(ctx context.Context, filters model.Filters) ([]model.Task, error) {
	params := url.Values{}
	if filters.Completed != nil {
		params.Set("completed", strconv.FormatBool(*filters.Completed))
	}
	if filters.Category != nil {
		params.Set("category", string(*filters.Category))
	}
	if filters.Priority != nil {
		params.Set("priority", strconv.Itoa(int(*filters.Priority)))
	}

	var dtos []taskDTO
	err := g.client.do(ctx, call{
		op:     "ListTasks",
		method: http.MethodGet,
		path:   "/tasks/",
		query:  params.Encode(),
		out:    &dtos,
	})
	if err != nil {
		return nil, err
	}

	tasks := make([]model.Task, 0, len(dtos))
	for _, d := range dtos {
		tasks = append(tasks, d.toModel())
	}
	return tasks, nil
}

func (g *implGateway) CreateTask(ctx context.Context, draft model.TaskDraft) (model.Task, error) {
	if !draft.HasTitle() {
		return model.Task{}, &repository.GatewayError{Op: "CreateTask", Kind: repository.ErrValidation,
			Cause: errors.New("title is required")}
	}

	body := newDraftDTO(draft)
	body.Title = strings.TrimSpace(body.Title)
	if err := g.validate.Struct(body); err != nil {
		return model.Task{}, &repository.GatewayError{Op: "CreateTask", Kind: repository.ErrValidation, Cause: err}
	}

	var dto taskDTO
	if err := g.client.do(ctx, call{
		op:     "CreateTask",
		method: http.MethodPost,
		path:   "/tasks/",
		body:   body,
		out:    &dto,
	}); err != nil {
		return model.Task{}, err
	}
	return dto.toModel(), nil
}

func (g *implGateway) UpdateTask(ctx context.Context, id int64, patch model.TaskPatch) (model.Task, error) {
	if err := validatePatch(patch); err != nil {
		return model.Task{}, &repository.GatewayError{Op: "UpdateTask", TaskID: id, Kind: repository.ErrValidation,
			Cause: err}
	}

	var dto taskDTO
	if err := g.client.do(ctx, call{
		op:     "UpdateTask",
		taskID: id,
		method: http.MethodPatch,
		path:   fmt.Sprintf("/tasks/%d/", id),
		body:   newPatchDTO(patch),
		out:    &dto,
	}); err != nil {
		return model.Task{}, err
	}
	return dto.toModel(), nil
}

func (g *implGateway) DeleteTask(ctx context.Context, id int64) error {
	return g.client.do(ctx, call{
		op:     "DeleteTask",
		taskID: id,
		method: http.MethodDelete,
		path:   fmt.Sprintf("/tasks/%d/", id),
	})
}

func (g *implGateway) ToggleCompletion(ctx context.Context, id int64) (model.Task, error) {
	var dto taskDTO
	if err := g.client.do(ctx, call{
		op:     "ToggleCompletion",
		taskID: id,
		method: http.MethodPatch,
		path:   fmt.Sprintf("/tasks/%d/toggle/", id),
		out:    &dto,
	}); err != nil {
		return model.Task{}, err
	}
	return dto.toModel(), nil
}

func (g *implGateway) FetchStats(ctx context.Context) (model.Stats, error) {
	var dto statsDTO
	if err := g.client.do(ctx, call{
		op:     "FetchStats",
		method: http.MethodGet,
		path:   "/tasks/stats/",
		out:    &dto,
	}); err != nil {
		return model.Stats{}, err
	}
	return model.Stats{Total: dto.Total, Completed: dto.Completed, Pending: dto.Pending, Overdue: dto.Overdue}, nil
}

func (g *implGateway) InterpretText(ctx context.Context, text string) (model.Interpretation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Interpretation{}, &repository.GatewayError{Op: "InterpretText",
			Kind: repository.ErrInterpretationFailed, Cause: errors.New("text is empty")}
	}

	var resp parseResponse
	if err := g.client.do(ctx, call{
		op:         "InterpretText",
		method:     http.MethodPost,
		path:       "/tasks/parse/",
		body:       parseRequest{Text: text},
		out:        &resp,
		statusKind: repository.ErrInterpretationFailed,
	}); err != nil {
		return model.Interpretation{}, err
	}

	if resp.ParsedTask == nil || strings.TrimSpace(resp.ParsedTask.Title) == "" {
		return model.Interpretation{}, &repository.GatewayError{Op: "InterpretText",
			Kind: repository.ErrInterpretationFailed, Cause: errors.New("response has no parsed task")}
	}

	parsed := resp.ParsedTask.toModel()
	preview := parsed
	if resp.Preview != nil {
		preview = resp.Preview.toModel()
	}
	return model.Interpretation{Text: text, Parsed: parsed, Preview: preview}, nil
}

func (g *implGateway) Health(ctx context.Context) (model.Health, error) {
	var dto healthDTO
	if err := g.client.do(ctx, call{
		op:     "Health",
		method: http.MethodGet,
		path:   "/tasks/health/",
		out:    &dto,
	}); err != nil {
		return model.Health{}, err
	}
	return model.Health{Status: dto.Status, Database: dto.Database, Message: dto.Message}, nil
}

func validatePatch(p model.TaskPatch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return errors.New("title must not be empty")
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return fmt.Errorf("priority %d out of range 1..4", *p.Priority)
	}
	if p.Category != nil && !p.Category.Valid() {
		return fmt.Errorf("unknown category %q", *p.Category)
	}
	return nil
}
