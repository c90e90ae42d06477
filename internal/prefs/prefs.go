// Package prefs stores user preferences as a flat key-value map.
//
// Values are encoded as YAML, so any value yaml.v3 can marshal can be stored
// and decoded back into a value of the same shape.
package prefs

import (
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// Preference keys.
const (
	KeyFavorites        = "favorites"
	KeySearchHistory    = "searchHistory"
	KeyAppUsage         = "appUsage"
	KeyHiddenCategories = "hiddenCategories"
	KeyDisplayDensity   = "displayDensity"
	KeyDisplayLayout    = "displayLayout"
	KeyDockOpen         = "dockOpen"
	KeyLastCategory     = "lastCategory"
	KeyCustomApps       = "customApps"
)

// Store is a key-value preference store.
type Store interface {
	// Get decodes the value stored under key into v, which must be a
	// pointer. It reports false when the key is not set.
	Get(key string, v any) (bool, error)
	// Set replaces the value stored under key.
	Set(key string, v any) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
}

// GetOr returns the value stored under key, or def when the key is unset or
// cannot be read.
func GetOr[T any](s Store, key string, def T) T {
	var v T
	ok, err := s.Get(key, &v)
	if err != nil || !ok {
		return def
	}
	return v
}

// MemStore keeps preferences in memory.
type MemStore struct {
	mu     sync.Mutex
	values map[string]*yaml.Node
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string]*yaml.Node)}
}

func (m *MemStore) Get(key string, v any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return decodeValue(m.values, key, v)
}

func (m *MemStore) Set(key string, v any) error {
	n, err := encodeValue(key, v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = n
	return nil
}

func (m *MemStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Keys returns the stored keys in lexicographic order.
func (m *MemStore) Keys() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedKeys(m.values), nil
}

func decodeValue(values map[string]*yaml.Node, key string, v any) (bool, error) {
	n, ok := values[key]
	if !ok {
		return false, nil
	}
	if err := n.Decode(v); err != nil {
		return true, fmt.Errorf("cannot decode preference %q: %w", key, err)
	}
	return true, nil
}

func encodeValue(key string, v any) (*yaml.Node, error) {
	n := new(yaml.Node)
	if err := n.Encode(v); err != nil {
		return nil, fmt.Errorf("cannot encode preference %q: %w", key, err)
	}
	return n, nil
}

func sortedKeys(values map[string]*yaml.Node) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// parseDocument reads a YAML mapping of preference values.
func parseDocument(data []byte) (map[string]*yaml.Node, error) {
	values := make(map[string]*yaml.Node)
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return values, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping at line %d", root.Line)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		values[root.Content[i].Value] = root.Content[i+1]
	}
	return values, nil
}

// renderDocument writes values as a YAML mapping with sorted keys.
func renderDocument(values map[string]*yaml.Node) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range sortedKeys(values) {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: k},
			values[k],
		)
	}
	return yaml.Marshal(root)
}
