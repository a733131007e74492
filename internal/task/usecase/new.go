package usecase

import (
	"context"
	"sync"

	"smart-todo-client/internal/task"
	"smart-todo-client/internal/task/interpret"
	"smart-todo-client/internal/task/refresh"
	"smart-todo-client/internal/task/repository"
	"smart-todo-client/internal/task/selection"
	"smart-todo-client/internal/task/store"
	"smart-todo-client/pkg/gcalendar"
	pkgLog "smart-todo-client/pkg/log"
	"smart-todo-client/pkg/metrics"
)

// Calendar mirrors dated tasks as calendar events.
type Calendar interface {
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

// CalendarConfig tunes the calendar mirror.
type CalendarConfig struct {
	CalendarID   string
	Timezone     string
	EventMinutes int
}

// Config tunes the components the use case wires together.
type Config struct {
	Interpret          interpret.Config
	BulkConcurrency    int
	RefreshMaxAttempts int
	Calendar           CalendarConfig
}

type implUseCase struct {
	l         pkgLog.Logger
	gw        repository.Gateway
	store     *store.Store
	interp    *interpret.Controller
	selection *selection.Manager
	refresh   *refresh.Coordinator
	events    *broadcaster

	calendar    Calendar
	calendarCfg CalendarConfig
	eventsMu    sync.Mutex
	eventIDs    map[int64]string // task id -> calendar event id
}

// New wires the store, input controller, selection manager and refresh coordinator around gw.
// cal and mt may be nil.
func New(l pkgLog.Logger, gw repository.Gateway, cfg Config, cal Calendar, mt *metrics.Metrics) task.UseCase {
	uc := &implUseCase{
		l:           l,
		gw:          gw,
		store:       store.New(),
		events:      newBroadcaster(),
		calendar:    cal,
		calendarCfg: cfg.Calendar,
		eventIDs:    map[int64]string{},
	}

	uc.store.OnChange(func() {
		uc.events.publish(task.TopicTasks)
		uc.events.publish(task.TopicStats)
	})
	uc.interp = interpret.New(gw, cfg.Interpret,
		interpret.WithLogger(l),
		interpret.WithOnChange(func(interpret.State) { uc.events.publish(task.TopicInterpretation) }),
	)
	uc.selection = selection.New(gw, uc.store,
		selection.WithLogger(l),
		selection.WithMetrics(mt),
		selection.WithConcurrency(cfg.BulkConcurrency),
		selection.WithOnChange(func(selection.State) { uc.events.publish(task.TopicSelection) }),
	)
	uc.refresh = refresh.New(gw, uc.store,
		refresh.WithLogger(l),
		refresh.WithMaxAttempts(cfg.RefreshMaxAttempts),
	)
	return uc
}

func (uc *implUseCase) Close() {
	uc.interp.Close()
	uc.events.close()
}
