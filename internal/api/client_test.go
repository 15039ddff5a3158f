package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gqtodo/gqtodo/internal/model"
)

type recordedRequest struct {
	authHeader string
	body       gqlRequest
}

func newServer(t *testing.T, status int, body string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var reqs []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var gr gqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gr))
		reqs = append(reqs, recordedRequest{
			authHeader: r.Header.Get("Authorization"),
			body:       gr,
		})
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &reqs
}

func newClient(srv *httptest.Server, token TokenFunc) *Client {
	return New(srv.URL, 5*time.Second, token, nil)
}

func TestAuthHeaderPresent(t *testing.T) {
	srv, reqs := newServer(t, http.StatusOK, `{"data":{"todos":[]}}`)
	c := newClient(srv, func() string { return "tok-1" })

	_, err := c.Todos(context.Background())
	require.NoError(t, err)
	require.Len(t, *reqs, 1)
	assert.Equal(t, "Bearer tok-1", (*reqs)[0].authHeader)
}

func TestAuthHeaderOmittedWhenLoggedOut(t *testing.T) {
	srv, reqs := newServer(t, http.StatusOK, `{"data":{"todos":[]}}`)
	c := newClient(srv, func() string { return "" })

	_, err := c.Todos(context.Background())
	require.NoError(t, err)
	assert.Empty(t, (*reqs)[0].authHeader)
}

func TestTokenReadPerRequest(t *testing.T) {
	srv, reqs := newServer(t, http.StatusOK, `{"data":{"todos":[]}}`)
	tok := ""
	c := newClient(srv, func() string { return tok })

	_, err := c.Todos(context.Background())
	require.NoError(t, err)
	tok = "fresh"
	_, err = c.Todos(context.Background())
	require.NoError(t, err)

	require.Len(t, *reqs, 2)
	assert.Empty(t, (*reqs)[0].authHeader)
	assert.Equal(t, "Bearer fresh", (*reqs)[1].authHeader)
}

func TestSignupReturnsToken(t *testing.T) {
	srv, reqs := newServer(t, http.StatusOK, `{"data":{"signup":"new-token"}}`)
	c := newClient(srv, nil)

	tok, err := c.Signup(context.Background(), "ada", "ada@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "new-token", tok)

	vars := (*reqs)[0].body.Variables
	assert.Equal(t, "ada", vars["name"])
	assert.Equal(t, "ada@example.com", vars["email"])
	assert.Equal(t, "pw", vars["password"])
}

func TestLoginReturnsToken(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"data":{"login":"tok"}}`)
	c := newClient(srv, nil)

	tok, err := c.Login(context.Background(), "ada@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)
}

func TestLoginServerError(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"errors":[{"message":"invalid credentials"}]}`)
	c := newClient(srv, nil)

	_, err := c.Login(context.Background(), "ada@example.com", "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestTodosDecode(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK,
		`{"data":{"todos":[{"id":1,"title":"a","done":false,"userId":9},{"id":2,"title":"b","done":true,"userId":9}]}}`)
	c := newClient(srv, nil)

	todos, err := c.Todos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Todo{
		{ID: 1, Title: "a", UserID: 9},
		{ID: 2, Title: "b", Done: true, UserID: 9},
	}, todos)
}

func TestCreateTodoDecode(t *testing.T) {
	srv, reqs := newServer(t, http.StatusOK,
		`{"data":{"createTodo":{"id":3,"title":"x","done":false,"userId":9}}}`)
	c := newClient(srv, nil)

	td, err := c.CreateTodo(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, model.Todo{ID: 3, Title: "x", UserID: 9}, td)
	assert.Equal(t, "x", (*reqs)[0].body.Variables["title"])
}

func TestCreateTodoMissingPayload(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"data":{}}`)
	c := newClient(srv, nil)

	_, err := c.CreateTodo(context.Background(), "x")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestUpdateTodoDecode(t *testing.T) {
	srv, reqs := newServer(t, http.StatusOK,
		`{"data":{"updateTodo":{"id":2,"title":"b","done":true}}}`)
	c := newClient(srv, nil)

	td, err := c.UpdateTodo(context.Background(), 2, "b", true)
	require.NoError(t, err)
	assert.Equal(t, model.Todo{ID: 2, Title: "b", Done: true}, td)

	vars := (*reqs)[0].body.Variables
	assert.Equal(t, float64(2), vars["id"])
	assert.Equal(t, true, vars["done"])
}

func TestDeleteTodoReturnsId(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"data":{"deleteTodo":{"id":1}}}`)
	c := newClient(srv, nil)

	id, err := c.DeleteTodo(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, id)
}

func TestDeleteTodoIdZeroIsValid(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"data":{"deleteTodo":{"id":0}}}`)
	c := newClient(srv, nil)

	id, err := c.DeleteTodo(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, id)
}

func TestDeleteTodoMissingId(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"data":{"deleteTodo":{}}}`)
	c := newClient(srv, nil)

	_, err := c.DeleteTodo(context.Background(), 1)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestHTTPErrorSurfaced(t *testing.T) {
	srv, _ := newServer(t, http.StatusBadGateway, `upstream down`)
	c := newClient(srv, nil)

	_, err := c.Todos(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
}

func TestContextCancellation(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"data":{"todos":[]}}`)
	c := newClient(srv, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Todos(ctx)
	assert.Error(t, err)
}
