package location

import "eventhub/internal/store"

type Repository struct {
	col *store.Collection[Location]
}

func NewRepository() *Repository {
	return &Repository{col: store.NewCollection[Location]("locations")}
}

func (r *Repository) List() []Location {
	return r.col.List()
}

func (r *Repository) FindByID(id string) (Location, error) {
	return r.col.FindByID(id)
}

func (r *Repository) Insert(l Location) {
	r.col.Insert(l)
}

func (r *Repository) Update(id string, merge func(Location) Location) (Location, error) {
	return r.col.Update(id, merge)
}

func (r *Repository) Remove(id string) (Location, error) {
	return r.col.RemoveByID(id)
}

func (r *Repository) Clear() int {
	return r.col.Clear()
}

// Seed loads fixture records at startup.
func (r *Repository) Seed(locations []Location) {
	for _, l := range locations {
		r.col.Insert(l)
	}
}
