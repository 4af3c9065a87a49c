// Package client is the record-store client: a typed CRUD surface per
// collection against the dashboard API. Reads degrade to the cached
// snapshot on transport failure; writes propagate errors and end with a
// full reload so the cache tracks the remote source of truth.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"team-board/internal/logger"
	"team-board/internal/model"
)

// compoundKey is implemented by records addressed by (id, week_start) on
// the update path instead of id alone.
type compoundKey interface {
	UpdateRef() (id, weekStart string)
}

// Collection is a shared cache over one remote collection. All consumers
// should hold the same instance; every mutation reloads the cache and
// notifies subscribers. Mutations are serialized per collection so rapid
// successive edits cannot lose updates; reads stay concurrent.
type Collection[T model.Record] struct {
	base string
	name string
	http *http.Client

	mu    sync.RWMutex
	items []T

	writeMu sync.Mutex

	subMu sync.Mutex
	subs  []func()
}

func NewCollection[T model.Record](baseURL, name string) *Collection[T] {
	return &Collection[T]{
		base: strings.TrimRight(baseURL, "/"),
		name: name,
		http: &http.Client{},
	}
}

// Subscribe registers fn to run after every successful reload.
func (c *Collection[T]) Subscribe(fn func()) {
	c.subMu.Lock()
	c.subs = append(c.subs, fn)
	c.subMu.Unlock()
}

// Items returns the cached snapshot.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Find returns the cached record with the given id.
func (c *Collection[T]) Find(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if item.RecordID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Load fetches the full collection. On failure the cached data is left
// unchanged (stale-but-available) and the failure is logged; render paths
// may ignore the returned error.
func (c *Collection[T]) Load(ctx context.Context) error {
	var fetched []T
	if err := c.doJSON(ctx, http.MethodGet, "/"+c.name, nil, &fetched); err != nil {
		logger.Warn("load failed, keeping cached data", "collection", c.name, "err", err)
		return err
	}
	c.mu.Lock()
	c.items = fetched
	c.mu.Unlock()
	c.notify()
	return nil
}

// Add sends one record and reloads. Transport failure propagates without
// touching the cache; there is no optimistic local insert.
func (c *Collection[T]) Add(ctx context.Context, item T) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.doJSON(ctx, http.MethodPost, "/"+c.name, item, nil); err != nil {
		return fmt.Errorf("add %s: %w", c.name, err)
	}
	return c.Load(ctx)
}

// AddBatch bulk-inserts records (the weeks collection accepts arrays) and
// reloads once.
func (c *Collection[T]) AddBatch(ctx context.Context, items []T) error {
	if len(items) == 0 {
		return nil
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.doJSON(ctx, http.MethodPost, "/"+c.name, items, nil); err != nil {
		return fmt.Errorf("add batch %s: %w", c.name, err)
	}
	return c.Load(ctx)
}

// Update resolves the cached record to pick the addressing scheme: week
// records go through the compound (id, week_start) path, everything else
// by id. Updating an id absent from the cache is a no-op.
func (c *Collection[T]) Update(ctx context.Context, id string, patch map[string]any) error {
	item, ok := c.Find(id)
	if !ok {
		return nil
	}
	path := "/" + c.name + "/" + id
	if ck, isCompound := any(item).(compoundKey); isCompound {
		_, weekStart := ck.UpdateRef()
		path = "/weeks/" + id + "/" + weekStart
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.doJSON(ctx, http.MethodPut, path, patch, nil); err != nil {
		return fmt.Errorf("update %s %s: %w", c.name, id, err)
	}
	return c.Load(ctx)
}

// Delete removes by id and reloads.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.doJSON(ctx, http.MethodDelete, "/"+c.name+"/"+id, nil, nil); err != nil {
		return fmt.Errorf("delete %s %s: %w", c.name, id, err)
	}
	return c.Load(ctx)
}

// ClearAll wipes the entire working dataset across all collections, then
// reloads this one. Destructive and irreversible.
func (c *Collection[T]) ClearAll(ctx context.Context) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.doJSON(ctx, http.MethodPost, "/clear-all", nil, nil); err != nil {
		return fmt.Errorf("clear all: %w", err)
	}
	return c.Load(ctx)
}

func (c *Collection[T]) notify() {
	c.subMu.Lock()
	subs := make([]func(), len(c.subs))
	copy(subs, c.subs)
	c.subMu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

func (c *Collection[T]) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(resp.Body)
		var remote struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &remote) == nil && remote.Error != "" {
			return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, remote.Error)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, out); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
		}
	}
	return nil
}
