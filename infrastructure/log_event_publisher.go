package infrastructure

import (
	"fortuna/domain/events"

	log "github.com/sirupsen/logrus"
)

// LogEventPublisher writes every published event to the structured log.
// It stands in for a real message bus until one is wired up.
type LogEventPublisher struct{}

// NewLogEventPublisher creates a new logging event publisher
func NewLogEventPublisher() *LogEventPublisher {
	return &LogEventPublisher{}
}

// Publish logs the event at info level
func (p *LogEventPublisher) Publish(event events.Event) error {
	log.WithFields(log.Fields{
		"eventType": event.Type(),
		"event":     event,
	}).Info("event published")
	return nil
}
