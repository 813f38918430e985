package participant

import "eventhub/internal/store"

type Repository struct {
	col *store.Collection[Participant]
}

func NewRepository() *Repository {
	return &Repository{col: store.NewCollection[Participant]("participants")}
}

func (r *Repository) List() []Participant {
	return r.col.List()
}

func (r *Repository) FindByID(id string) (Participant, error) {
	return r.col.FindByID(id)
}

// ListByEvent returns all participants of one event, in insertion
// order. Linear scan; the dataset is small by design.
func (r *Repository) ListByEvent(eventID string) []Participant {
	return r.col.Filter(func(p Participant) bool {
		return p.EventID == eventID
	})
}

func (r *Repository) Insert(p Participant) {
	r.col.Insert(p)
}

func (r *Repository) Update(id string, merge func(Participant) Participant) (Participant, error) {
	return r.col.Update(id, merge)
}

func (r *Repository) Remove(id string) (Participant, error) {
	return r.col.RemoveByID(id)
}

func (r *Repository) Clear() int {
	return r.col.Clear()
}

// Seed loads fixture records at startup.
func (r *Repository) Seed(participants []Participant) {
	for _, p := range participants {
		r.col.Insert(p)
	}
}
