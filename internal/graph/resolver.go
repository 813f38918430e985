package graph

import (
	"encoding/json"
	"log"

	"github.com/graphql-go/graphql"

	"eventhub/internal/bus"
	"eventhub/internal/event"
	"eventhub/internal/location"
	"eventhub/internal/participant"
	"eventhub/internal/user"
)

// Resolver carries the services the schema resolves against.
type Resolver struct {
	Users        *user.Service
	Events       *event.Service
	Locations    *location.Service
	Participants *participant.Service
	Bus          bus.Bus
}

func NewResolver(users *user.Service, events *event.Service, locations *location.Service, participants *participant.Service, b bus.Bus) *Resolver {
	return &Resolver{
		Users:        users,
		Events:       events,
		Locations:    locations,
		Participants: participants,
		Bus:          b,
	}
}

// asEvent normalizes a resolver source: queries hand events around by
// value, subscription payloads arrive as pointers.
func asEvent(src interface{}) (event.Event, bool) {
	switch ev := src.(type) {
	case event.Event:
		return ev, true
	case *event.Event:
		return *ev, true
	default:
		return event.Event{}, false
	}
}

// decodeInput converts a coerced GraphQL input map into a request DTO.
// The JSON round-trip keeps partial-update semantics intact: fields
// absent from the input stay nil on pointer-field DTOs.
func decodeInput(src interface{}, dst interface{}) error {
	raw, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// subscribeTo bridges a bus topic into a graphql-go subscription
// channel. Each received payload is decoded into a fresh record and
// emitted; the feed ends when the operation context is cancelled.
func (r *Resolver) subscribeTo(topic string, newRecord func() interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		sub, err := r.Bus.Subscribe(p.Context, topic)
		if err != nil {
			return nil, err
		}
		out := make(chan interface{})
		go func() {
			defer close(out)
			defer sub.Close()
			for msg := range sub.C {
				rec := newRecord()
				if err := json.Unmarshal(msg.Payload, rec); err != nil {
					log.Printf("⚠️ graph: decode %s payload: %v", topic, err)
					continue
				}
				select {
				case out <- rec:
				case <-p.Context.Done():
					return
				}
			}
		}()
		return out, nil
	}
}
