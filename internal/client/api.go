package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/listworks/todo-service/internal/todo"
)

// API is the surface the store needs from the todo service.
type API interface {
	List(ctx context.Context) ([]todo.Todo, error)
	Create(ctx context.Context, title string, location string) (*todo.Todo, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}

// Client talks JSON over HTTP to the todo service.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for the service at baseURL (no trailing slash).
func New(baseURL string) *Client {
	return &Client{baseURL: baseURL, http: &http.Client{}}
}

func (c *Client) List(ctx context.Context) ([]todo.Todo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/todos", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch todos: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch todos: %s", resp.Status)
	}
	var items []todo.Todo
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode todos: %w", err)
	}
	return items, nil
}

func (c *Client) Create(ctx context.Context, title string, location string) (*todo.Todo, error) {
	payload := map[string]string{"title": title}
	if location != "" {
		payload["location"] = location
	}
	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/todos", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("failed to create todo: %s", resp.Status)
	}
	item := &todo.Todo{}
	if err := json.NewDecoder(resp.Body).Decode(item); err != nil {
		return nil, fmt.Errorf("failed to decode todo: %w", err)
	}
	return item, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/api/todos/%d", c.baseURL, id), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("failed to delete todo: %s", resp.Status)
	}
	return nil
}

func (c *Client) DeleteAll(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/todos", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete todos: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("failed to delete todos: %s", resp.Status)
	}
	return nil
}
