// Package client is a small typed client for the catalog API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"MiniCatalog/internal/catalog"
)

var (
	ErrNotFound    = errors.New("catalog product not found")
	ErrForbidden   = errors.New("catalog token rejected")
	ErrBadRequest  = errors.New("catalog rejected request")
	ErrBadStatus   = errors.New("catalog bad status")
	ErrUnavailable = errors.New("catalog unavailable")
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Token   string
}

func New(baseURL string) *Client {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 3 * time.Second},
	}
}

// Login fetches a token and keeps it for subsequent calls.
func (c *Client) Login(ctx context.Context) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/login", struct{}{}, &out); err != nil {
		return "", err
	}
	c.Token = out.Token
	return out.Token, nil
}

func (c *Client) List(ctx context.Context) ([]catalog.Product, error) {
	var out struct {
		Productos []catalog.Product `json:"productos"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/productos", nil, &out); err != nil {
		return nil, err
	}
	return out.Productos, nil
}

func (c *Client) GetByID(ctx context.Context, id int) ([]catalog.Product, error) {
	return c.lookup(ctx, "/api/productos/"+strconv.Itoa(id))
}

func (c *Client) GetByBrand(ctx context.Context, brand int) ([]catalog.Product, error) {
	return c.lookup(ctx, "/api/marca/"+strconv.Itoa(brand))
}

func (c *Client) GetByLine(ctx context.Context, line int) ([]catalog.Product, error) {
	return c.lookup(ctx, "/api/linea/"+strconv.Itoa(line))
}

func (c *Client) Create(ctx context.Context, f catalog.Fields) (catalog.Product, error) {
	var p catalog.Product
	err := c.do(ctx, http.MethodPost, "/api/productos", body(f), &p)
	return p, err
}

func (c *Client) Update(ctx context.Context, id int, f catalog.Fields) (catalog.Product, error) {
	var p catalog.Product
	err := c.do(ctx, http.MethodPut, "/api/productos/"+strconv.Itoa(id), body(f), &p)
	return p, err
}

func (c *Client) Delete(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/productos/"+strconv.Itoa(id), nil, nil)
}

func (c *Client) lookup(ctx context.Context, path string) ([]catalog.Product, error) {
	var out []catalog.Product
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type productBody struct {
	Name  string  `json:"nombre"`
	Price float64 `json:"precio"`
	Brand int     `json:"marca"`
	Line  int     `json:"linea"`
}

func body(f catalog.Fields) productBody {
	return productBody{Name: f.Name, Price: f.Price, Brand: f.Brand, Line: f.Line}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var r io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		r = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, r)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusBadRequest:
		return ErrBadRequest
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: status=%d", ErrBadStatus, resp.StatusCode)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
