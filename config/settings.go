package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Get reads a value by dot path over the config's JSON form, e.g.
// "export.png_dpi" or "preview.addr".
func (c *Config) Get(path string) (any, bool) {
	m, err := c.asMap()
	if err != nil {
		return nil, false
	}
	segments := strings.Split(path, ".")
	var cur any = m
	for _, seg := range segments {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Set assigns a value by dot path and folds it back into the typed config.
// Intermediate objects are created as needed; a type mismatch surfaces as a
// decode error.
func (c *Config) Set(path string, value any) error {
	m, err := c.asMap()
	if err != nil {
		return err
	}
	segments := strings.Split(path, ".")
	obj := m
	for _, seg := range segments[:len(segments)-1] {
		next, ok := obj[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			obj[seg] = next
		}
		obj = next
	}
	obj[segments[len(segments)-1]] = value

	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("invalid value for %s: %w", path, err)
	}
	return nil
}

func (c *Config) asMap() (map[string]any, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
