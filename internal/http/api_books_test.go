package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"bookhaven/internal/domain"
)

func TestBooksList_Envelope(t *testing.T) {
	app := newApp(t)

	status, env := doReq(t, app, http.MethodGet, "/api/books", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	var books []domain.Book
	require.NoError(t, json.Unmarshal(env.Data, &books))
	require.Equal(t, len(books), env.Count)
	require.NotEmpty(t, books)
}

func TestBooksList_FilterAndSort(t *testing.T) {
	app := newApp(t)

	status, env := doReq(t, app, http.MethodGet,
		"/api/books?category=Programming&minPrice=20&maxPrice=35&inStock=true&sort=price_asc", "", nil)
	require.Equal(t, http.StatusOK, status)

	var books []domain.Book
	require.NoError(t, json.Unmarshal(env.Data, &books))
	require.NotEmpty(t, books)
	for i, b := range books {
		require.Equal(t, "Programming", b.Category)
		require.GreaterOrEqual(t, b.Price, 20.0)
		require.LessOrEqual(t, b.Price, 35.0)
		require.True(t, b.InStock)
		if i > 0 {
			require.GreaterOrEqual(t, b.Price, books[i-1].Price)
		}
	}
}

func TestBooksList_BadPriceIs400(t *testing.T) {
	app := newApp(t)
	status, env := doReq(t, app, http.MethodGet, "/api/books?minPrice=cheap", "", nil)
	require.Equal(t, http.StatusBadRequest, status)
	require.False(t, env.Success)
	require.Contains(t, env.Errors, "minPrice must be a number")
}

func TestBooksSearch_RequiresQuery(t *testing.T) {
	app := newApp(t)

	status, env := doReq(t, app, http.MethodGet, "/api/books/search", "", nil)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Search query is required", env.Message)

	status, env = doReq(t, app, http.MethodGet, "/api/books/search?q=clean", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 1, env.Count)
}

func TestBooksGet_UnknownAndMalformedAre404(t *testing.T) {
	app := newApp(t)

	status, env := doReq(t, app, http.MethodGet, "/api/books/no-such-book", "", nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "Book not found", env.Message)

	// identifier that can't be a key is "not found", not a server error
	status, _ = doReq(t, app, http.MethodGet, "/api/books/%24%7Bbad%7D", "", nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestBooksWrite_RoleGates(t *testing.T) {
	app := newApp(t)

	payload := map[string]any{
		"title": "Refactoring", "author": "Martin Fowler", "price": 44.99,
		"description": "Improving the design of existing code.",
		"image":       "https://example.test/refactoring.jpg",
		"category":    "Software Engineering",
	}

	// missing credential -> 401
	status, _ := doReq(t, app, http.MethodPost, "/api/books", "", payload)
	require.Equal(t, http.StatusUnauthorized, status)

	// garbage credential -> still 401, not 500
	status, _ = doReq(t, app, http.MethodPost, "/api/books", "garbage", payload)
	require.Equal(t, http.StatusUnauthorized, status)

	// customer credential -> 403
	customer := login(t, app, "customer@bookhaven.test", "Passw0rd!")
	status, env := doReq(t, app, http.MethodPost, "/api/books", customer, payload)
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "Admin access required", env.Message)

	// admin credential -> 201
	admin := login(t, app, "admin@bookhaven.test", "Passw0rd!")
	status, env = doReq(t, app, http.MethodPost, "/api/books", admin, payload)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "Book created successfully", env.Message)

	var b domain.Book
	require.NoError(t, json.Unmarshal(env.Data, &b))
	require.True(t, b.InStock, "inStock defaults to true")
	require.Equal(t, 100, b.Stock, "stock defaults to 100")
}

func TestBooksCreate_ValidationErrors(t *testing.T) {
	app := newApp(t)
	admin := login(t, app, "admin@bookhaven.test", "Passw0rd!")

	status, env := doReq(t, app, http.MethodPost, "/api/books", admin,
		map[string]any{"price": -2})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Validation error", env.Message)
	require.Contains(t, env.Errors, "Book title is required")
	require.Contains(t, env.Errors, "Price cannot be negative")
}

func TestBooksUpdateDelete(t *testing.T) {
	app := newApp(t)
	admin := login(t, app, "admin@bookhaven.test", "Passw0rd!")

	status, env := doReq(t, app, http.MethodPut, "/api/books/bk-clean-code", admin,
		map[string]any{"price": 31.99})
	require.Equal(t, http.StatusOK, status)
	var b domain.Book
	require.NoError(t, json.Unmarshal(env.Data, &b))
	require.Equal(t, 31.99, b.Price)
	require.Equal(t, "Clean Code", b.Title)

	status, _ = doReq(t, app, http.MethodPut, "/api/books/no-such-book", admin,
		map[string]any{"price": 1.0})
	require.Equal(t, http.StatusNotFound, status)

	status, env = doReq(t, app, http.MethodDelete, "/api/books/bk-clean-code", admin, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Book deleted successfully", env.Message)

	status, _ = doReq(t, app, http.MethodGet, "/api/books/bk-clean-code", "", nil)
	require.Equal(t, http.StatusNotFound, status)
}
