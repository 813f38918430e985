// Package fixture loads the static initial dataset. State lives only
// in memory; the fixture is read once at process start and never
// written back.
package fixture

import (
	"encoding/json"
	"fmt"
	"os"

	"eventhub/internal/event"
	"eventhub/internal/location"
	"eventhub/internal/participant"
	"eventhub/internal/user"
)

type Data struct {
	Users        []user.User               `json:"users"`
	Events       []event.Event             `json:"events"`
	Locations    []location.Location       `json:"locations"`
	Participants []participant.Participant `json:"participants"`
}

// Load reads the fixture file. A missing file is not an error; the
// process starts with empty collections.
func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Data{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &d, nil
}

// Seed inserts the fixture records into the repositories.
func Seed(d *Data, users *user.Repository, events *event.Repository, locations *location.Repository, participants *participant.Repository) {
	users.Seed(d.Users)
	events.Seed(d.Events)
	locations.Seed(d.Locations)
	participants.Seed(d.Participants)
}
