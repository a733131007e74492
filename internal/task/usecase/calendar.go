package usecase

import (
	"context"
	"errors"
	"time"

	"smart-todo-client/internal/model"
	"smart-todo-client/pkg/gcalendar"
)

const defaultEventMinutes = 60

// tryCreateCalendarEvent mirrors a dated task to the calendar. Failure is logged and non-fatal.
func (uc *implUseCase) tryCreateCalendarEvent(ctx context.Context, t model.Task) {
	if uc.calendar == nil || t.Due == nil {
		return
	}

	minutes := uc.calendarCfg.EventMinutes
	if minutes <= 0 {
		minutes = defaultEventMinutes
	}

	event, err := uc.calendar.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID:  uc.calendarCfg.CalendarID,
		TaskID:      t.ID,
		Summary:     t.Title,
		Description: t.Description,
		StartTime:   *t.Due,
		EndTime:     t.Due.Add(time.Duration(minutes) * time.Minute),
		Timezone:    uc.calendarCfg.Timezone,
	})
	if err != nil {
		uc.l.Warnf(ctx, "usecase.tryCreateCalendarEvent: task %d (non-fatal): %v", t.ID, err)
		return
	}

	uc.eventsMu.Lock()
	uc.eventIDs[t.ID] = event.ID
	uc.eventsMu.Unlock()
	uc.l.Infof(ctx, "usecase.tryCreateCalendarEvent: task %d -> event %s", t.ID, event.ID)
}

// tryDeleteCalendarEvents removes the mirrored events of deleted tasks.
func (uc *implUseCase) tryDeleteCalendarEvents(ctx context.Context, ids []int64) {
	if uc.calendar == nil {
		return
	}

	for _, id := range ids {
		uc.eventsMu.Lock()
		eventID, ok := uc.eventIDs[id]
		delete(uc.eventIDs, id)
		uc.eventsMu.Unlock()
		if !ok {
			continue
		}

		err := uc.calendar.DeleteEvent(ctx, uc.calendarCfg.CalendarID, eventID)
		if err != nil && !errors.Is(err, gcalendar.ErrEventNotFound) {
			uc.l.Warnf(ctx, "usecase.tryDeleteCalendarEvents: task %d event %s (non-fatal): %v", id, eventID, err)
		}
	}
}
