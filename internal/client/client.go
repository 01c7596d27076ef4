// Package client is a typed HTTP client for the bookstore API, covering
// the same surface the web storefront consumes.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"bookhaven/internal/domain"
	"bookhaven/internal/services"
)

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Envelope is the API's uniform response wrapper.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Count   int             `json:"count"`
	Errors  []string        `json:"errors"`
	Data    json.RawMessage `json:"data"`
}

// APIError is any non-2xx response, carrying the server's message and any
// per-field validation errors.
type APIError struct {
	Status  int
	Message string
	Errors  []string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

func (c *Client) do(method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequest(method, c.BaseURL+path, &buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if resp.StatusCode >= 400 || !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Message, Errors: env.Errors}
	}
	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

// BookQuery mirrors the GET /api/books filter parameters.
type BookQuery struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	InStock  bool
	Sort     string
}

func (q BookQuery) encode() string {
	v := url.Values{}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.MinPrice != nil {
		v.Set("minPrice", strconv.FormatFloat(*q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice != nil {
		v.Set("maxPrice", strconv.FormatFloat(*q.MaxPrice, 'f', -1, 64))
	}
	if q.InStock {
		v.Set("inStock", "true")
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

func (c *Client) ListBooks(q BookQuery) ([]domain.Book, error) {
	var out []domain.Book
	err := c.do(http.MethodGet, "/api/books"+q.encode(), nil, &out)
	return out, err
}

func (c *Client) SearchBooks(q string) ([]domain.Book, error) {
	var out []domain.Book
	err := c.do(http.MethodGet, "/api/books/search?q="+url.QueryEscape(q), nil, &out)
	return out, err
}

func (c *Client) GetBook(id string) (domain.Book, error) {
	var out domain.Book
	err := c.do(http.MethodGet, "/api/books/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) CreateOrder(in services.PlaceOrderInput) (domain.Order, error) {
	var out domain.Order
	err := c.do(http.MethodPost, "/api/orders", in, &out)
	return out, err
}

func (c *Client) GetOrder(id string) (domain.Order, error) {
	var out domain.Order
	err := c.do(http.MethodGet, "/api/orders/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) MyOrders() ([]domain.Order, error) {
	var out []domain.Order
	err := c.do(http.MethodGet, "/api/orders/my-orders", nil, &out)
	return out, err
}

func (c *Client) UpdateOrderStatus(id, status string) (domain.Order, error) {
	var out domain.Order
	err := c.do(http.MethodPut, "/api/orders/"+url.PathEscape(id)+"/status",
		map[string]string{"status": status}, &out)
	return out, err
}

type authResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (c *Client) Register(fullName, email, password string) (domain.User, error) {
	var out authResponse
	err := c.do(http.MethodPost, "/api/users/register",
		map[string]string{"fullName": fullName, "email": email, "password": password}, &out)
	if err == nil {
		c.Token = out.Token
	}
	return out.User, err
}

func (c *Client) Login(email, password string) (domain.User, error) {
	var out authResponse
	err := c.do(http.MethodPost, "/api/users/login",
		map[string]string{"email": email, "password": password}, &out)
	if err == nil {
		c.Token = out.Token
	}
	return out.User, err
}

func (c *Client) Profile() (domain.User, error) {
	var out domain.User
	err := c.do(http.MethodGet, "/api/users/profile", nil, &out)
	return out, err
}
