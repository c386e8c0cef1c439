package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Publisher appends ledger events to the ledger.events stream. There is a
// single stream for the whole ledger; consumers filter on Event.Type.
type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// Publish wraps data in an Event envelope and appends it to the ledger
// stream. The timestamp records publication, not the mutation; the store has
// already committed by the time an event is published.
func (p *Publisher) Publish(ctx context.Context, eventType string, data any) error {
	envelope, err := json.Marshal(Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: LedgerEventsStream,
		Values: map[string]any{"event": envelope},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to append %s event to %s: %w", eventType, LedgerEventsStream, err)
	}
	return nil
}
