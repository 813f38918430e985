package user

import "eventhub/internal/store"

type Repository struct {
	col *store.Collection[User]
}

func NewRepository() *Repository {
	return &Repository{col: store.NewCollection[User]("users")}
}

func (r *Repository) List() []User {
	return r.col.List()
}

func (r *Repository) FindByID(id string) (User, error) {
	return r.col.FindByID(id)
}

func (r *Repository) Insert(u User) {
	r.col.Insert(u)
}

func (r *Repository) Update(id string, merge func(User) User) (User, error) {
	return r.col.Update(id, merge)
}

func (r *Repository) Remove(id string) (User, error) {
	return r.col.RemoveByID(id)
}

func (r *Repository) Clear() int {
	return r.col.Clear()
}

// Seed loads fixture records at startup.
func (r *Repository) Seed(users []User) {
	for _, u := range users {
		r.col.Insert(u)
	}
}
