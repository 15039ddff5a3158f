package api

import (
	"context"

	"github.com/gqtodo/gqtodo/internal/model"
)

// Todos fetches the authenticated user's full todo collection. The user is
// implied by the auth header, never passed explicitly.
func (c *Client) Todos(ctx context.Context) ([]model.Todo, error) {
	var out struct {
		Todos *[]model.Todo `json:"todos"`
	}
	if err := c.do(ctx, "todos", queryTodos, nil, &out); err != nil {
		return nil, err
	}
	if out.Todos == nil {
		return nil, ErrMalformedResponse
	}
	return *out.Todos, nil
}

// CreateTodo creates a todo with the given title. The server assigns id,
// userId and done=false; the returned todo is the client's only way to
// learn the new identity.
func (c *Client) CreateTodo(ctx context.Context, title string) (model.Todo, error) {
	var out struct {
		CreateTodo *model.Todo `json:"createTodo"`
	}
	err := c.do(ctx, "createTodo", mutationCreateTodo, map[string]any{
		"title": title,
	}, &out)
	if err != nil {
		return model.Todo{}, err
	}
	if out.CreateTodo == nil {
		return model.Todo{}, ErrMalformedResponse
	}
	return *out.CreateTodo, nil
}

// UpdateTodo overwrites title and done for an existing todo.
func (c *Client) UpdateTodo(ctx context.Context, id int, title string, done bool) (model.Todo, error) {
	var out struct {
		UpdateTodo *model.Todo `json:"updateTodo"`
	}
	err := c.do(ctx, "updateTodo", mutationUpdateTodo, map[string]any{
		"id":    id,
		"title": title,
		"done":  done,
	}, &out)
	if err != nil {
		return model.Todo{}, err
	}
	if out.UpdateTodo == nil {
		return model.Todo{}, ErrMalformedResponse
	}
	return *out.UpdateTodo, nil
}

// DeleteTodo deletes a todo and returns the deleted id as confirmed by the
// server. Presence of the id field is checked explicitly so id 0 is valid.
func (c *Client) DeleteTodo(ctx context.Context, id int) (int, error) {
	var out struct {
		DeleteTodo *struct {
			ID *int `json:"id"`
		} `json:"deleteTodo"`
	}
	err := c.do(ctx, "deleteTodo", mutationDeleteTodo, map[string]any{
		"id": id,
	}, &out)
	if err != nil {
		return 0, err
	}
	if out.DeleteTodo == nil || out.DeleteTodo.ID == nil {
		return 0, ErrMalformedResponse
	}
	return *out.DeleteTodo.ID, nil
}
