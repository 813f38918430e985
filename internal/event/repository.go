package event

import "eventhub/internal/store"

type Repository struct {
	col *store.Collection[Event]
}

func NewRepository() *Repository {
	return &Repository{col: store.NewCollection[Event]("events")}
}

func (r *Repository) List() []Event {
	return r.col.List()
}

func (r *Repository) FindByID(id string) (Event, error) {
	return r.col.FindByID(id)
}

func (r *Repository) Insert(e Event) {
	r.col.Insert(e)
}

func (r *Repository) Update(id string, merge func(Event) Event) (Event, error) {
	return r.col.Update(id, merge)
}

func (r *Repository) Remove(id string) (Event, error) {
	return r.col.RemoveByID(id)
}

func (r *Repository) Clear() int {
	return r.col.Clear()
}

// Seed loads fixture records at startup.
func (r *Repository) Seed(events []Event) {
	for _, e := range events {
		r.col.Insert(e)
	}
}
