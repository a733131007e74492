package task

import "time"

// Topic names the part of the state an Event is about.
type Topic string

const (
	TopicTasks          Topic = "tasks"
	TopicStats          Topic = "stats"
	TopicInterpretation Topic = "interpretation"
	TopicSelection      Topic = "selection"
)

// Event tells a subscriber that a topic changed.
type Event struct {
	ID    string    `json:"id"`
	Topic Topic     `json:"topic"`
	At    time.Time `json:"at"`
}
