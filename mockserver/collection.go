package mockserver

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/jrsteele09/go-hrms-client/internal/errors"
)

// Item is one stored record, kept as decoded JSON so any resource shape fits.
type Item map[string]any

type Collection struct {
	items  map[int]Item
	nextID int
	lock   sync.RWMutex
}

func newCollection() *Collection {
	return &Collection{items: make(map[int]Item), nextID: 1}
}

// Insert stores a copy of item under a fresh id and returns the stored copy.
func (c *Collection) Insert(item Item) Item {
	c.lock.Lock()
	defer c.lock.Unlock()
	stored := copyItem(item)
	stored["id"] = c.nextID
	c.items[c.nextID] = stored
	c.nextID++
	return copyItem(stored)
}

func (c *Collection) Get(id int) (Item, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	item, ok := c.items[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return copyItem(item), nil
}

// Update merges fields into the stored item. The id cannot change.
func (c *Collection) Update(id int, fields Item) (Item, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	item, ok := c.items[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	for k, v := range fields {
		item[k] = v
	}
	item["id"] = id
	return copyItem(item), nil
}

func (c *Collection) Delete(id int) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if _, ok := c.items[id]; !ok {
		return errors.ErrNotFound
	}
	delete(c.items, id)
	return nil
}

// Query returns the items matching every filter, ordered by id. A "search"
// filter matches any string field containing the term, ignoring case.
func (c *Collection) Query(filters map[string]string) []Item {
	c.lock.RLock()
	defer c.lock.RUnlock()

	ids := make([]int, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	matched := make([]Item, 0, len(ids))
	for _, id := range ids {
		if c.items[id].matches(filters) {
			matched = append(matched, copyItem(c.items[id]))
		}
	}
	return matched
}

func (c *Collection) Len() int {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return len(c.items)
}

func (item Item) matches(filters map[string]string) bool {
	for key, want := range filters {
		if key == "search" {
			if !item.contains(want) {
				return false
			}
			continue
		}
		got, ok := item[key]
		if !ok {
			// Unset booleans read as false, as they do in the backend.
			if want == "false" {
				continue
			}
			return false
		}
		if fmt.Sprint(got) != want {
			return false
		}
	}
	return true
}

func (item Item) contains(term string) bool {
	term = strings.ToLower(term)
	for _, v := range item {
		if s, ok := v.(string); ok && strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

// Int reads a numeric field, accepting JSON numbers and numeric strings.
func (item Item) Int(key string) (int, bool) {
	switch v := item[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(v)
		return n, err == nil
	default:
		return 0, false
	}
}

func copyItem(item Item) Item {
	out := make(Item, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}
