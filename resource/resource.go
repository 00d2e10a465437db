// Package resource gives every CRUD endpoint group the same typed operations.
package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/jrsteele09/go-hrms-client/apiclient"
	"github.com/jrsteele09/go-hrms-client/endpoints"
	"github.com/jrsteele09/go-hrms-client/internal/errors"
)

type Resource[T any] struct {
	client apiclient.Requester
	ep     endpoints.CRUD
}

func New[T any](client apiclient.Requester, ep endpoints.CRUD) *Resource[T] {
	return &Resource[T]{client: client, ep: ep}
}

// List fetches one page. Endpoints that answer with a bare JSON array are
// wrapped into a single page.
func (r *Resource[T]) List(ctx context.Context, query url.Values) (*apiclient.Page[T], error) {
	var raw json.RawMessage
	if err := r.client.Get(ctx, endpoints.WithQuery(r.ep.List.String(), query), &raw); err != nil {
		return nil, err
	}
	return DecodePage[T](raw)
}

// Create posts item, which may be a value, a pointer or an *apiclient.Form.
func (r *Resource[T]) Create(ctx context.Context, item any) (*T, error) {
	var out T
	if err := r.client.Post(ctx, r.ep.Create.String(), item, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.ErrMissingID
	}
	var out T
	if err := r.client.Get(ctx, r.ep.Get(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) Update(ctx context.Context, id string, item any) (*T, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.ErrMissingID
	}
	var out T
	if err := r.client.Put(ctx, r.ep.Update(id), item, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.ErrMissingID
	}
	return r.client.Delete(ctx, r.ep.Delete(id), nil)
}

// DecodePage accepts either the paginated envelope or a bare array.
func DecodePage[T any](raw json.RawMessage) (*apiclient.Page[T], error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return &apiclient.Page[T]{Results: []T{}}, nil
	}
	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to decode list: %w", err)
		}
		return &apiclient.Page[T]{Count: len(items), Results: items}, nil
	}
	var page apiclient.Page[T]
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, fmt.Errorf("failed to decode page: %w", err)
	}
	if page.Results == nil {
		page.Results = []T{}
	}
	return &page, nil
}
