// Package cache holds the client's copy of the last todo-list query result
// and reconciles it after create/delete mutations, so the rendered list
// matches the server without a refetch.
package cache

import (
	"errors"
	"sync"

	"github.com/gqtodo/gqtodo/internal/model"
)

// ErrNotPrimed is returned when a reconciliation runs before the initial
// query populated the cache. The write-back never happens in that case.
var ErrNotPrimed = errors.New("cache: no cached todo collection")

// Cache is the read-cache for the parameterless todos query. An empty list
// is a valid cached value, distinct from "never fetched".
type Cache struct {
	mu     sync.Mutex
	todos  []model.Todo
	primed bool
}

func New() *Cache { return &Cache{} }

// Prime installs a fresh query result, replacing whatever was cached.
func (c *Cache) Prime(todos []model.Todo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.todos = append(c.todos[:0:0], todos...)
	c.primed = true
}

// Primed reports whether a query result has been installed.
func (c *Cache) Primed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.primed
}

// Todos returns a copy of the cached collection in its cached order.
func (c *Cache) Todos() []model.Todo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Todo(nil), c.todos...)
}

// ApplyCreate appends a server-confirmed todo to the cached collection,
// preserving existing order. This is the only way the client learns a new
// todo's identity.
func (c *Cache) ApplyCreate(created model.Todo) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.primed {
		return ErrNotPrimed
	}
	c.todos = append(c.todos, created)
	return nil
}

// ApplyDelete removes the todo with the given id. Ids are unique so at most
// one entry matches; deleting an id that is not present (including applying
// the same delete twice) leaves the collection unchanged.
func (c *Cache) ApplyDelete(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.primed {
		return ErrNotPrimed
	}
	kept := c.todos[:0]
	for _, td := range c.todos {
		if td.ID != id {
			kept = append(kept, td)
		}
	}
	c.todos = kept
	return nil
}

// ApplyUpdate replaces the cached entry matching the response todo's id.
// Updates carry their identity in the response, so no reconciliation beyond
// the id match is needed; an unknown id is a no-op.
func (c *Cache) ApplyUpdate(updated model.Todo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, td := range c.todos {
		if td.ID == updated.ID {
			// the update mutation does not return userId; keep the cached one
			updated.UserID = td.UserID
			c.todos[i] = updated
			return
		}
	}
}
