package app

import "github.com/idilsaglam/todotui/internal/model"

// Repository is the storage the controller mutates. Every mutator persists
// before returning.
type Repository interface {
	Get(id string) (model.Item, bool)
	List() []model.Item
	Add(model.Item) error
	Update(model.Item) error
	Delete(id string) error
}
