/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ordering

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidConfig is wrapped by every configuration error.
var ErrInvalidConfig = errors.New("invalid attribute-order configuration")

// ErrDisabled is returned by ParseConfig when the rule is turned off.
var ErrDisabled = errors.New("attribute-order is disabled")

// Config controls the rule.
type Config struct {
	// Alphabetize requires tokens within a category to be sorted by name.
	Alphabetize bool
	// Order is a permutation of arguments, attributes and modifiers.
	Order []Category
}

// DefaultOrder is the category order used when none is configured.
var DefaultOrder = []Category{Arguments, Attributes, Modifiers}

// DefaultConfig returns the configuration used for `true` or an empty map.
func DefaultConfig() Config {
	return Config{
		Alphabetize: true,
		Order:       slices.Clone(DefaultOrder),
	}
}

// ParseConfig turns a raw rule setting into a Config.
//
// Accepted shapes: nil, true or "on" for the defaults; false or "off" to
// disable the rule (ErrDisabled); a map with optional "alphabetize" (bool)
// and "order" (list of category names) keys.
func ParseConfig(raw any) (Config, error) {
	switch v := raw.(type) {
	case nil:
		return DefaultConfig(), nil
	case bool:
		if !v {
			return Config{}, ErrDisabled
		}
		return DefaultConfig(), nil
	case string:
		switch v {
		case "on", "error", "warn":
			return DefaultConfig(), nil
		case "off":
			return Config{}, ErrDisabled
		}
		return Config{}, fmt.Errorf("%w: unknown setting %q", ErrInvalidConfig, v)
	case Config:
		return v, v.Validate()
	case map[string]any:
		return parseConfigMap(v)
	}
	return Config{}, fmt.Errorf("%w: unexpected value of type %T", ErrInvalidConfig, raw)
}

func parseConfigMap(m map[string]any) (Config, error) {
	cfg := DefaultConfig()
	for key, value := range m {
		switch key {
		case "alphabetize":
			b, ok := value.(bool)
			if !ok {
				return Config{}, fmt.Errorf("%w: alphabetize must be a boolean, got %T", ErrInvalidConfig, value)
			}
			cfg.Alphabetize = b
		case "order":
			order, err := parseOrder(value)
			if err != nil {
				return Config{}, err
			}
			cfg.Order = order
		default:
			return Config{}, fmt.Errorf("%w: unknown option %q", ErrInvalidConfig, key)
		}
	}
	return cfg, cfg.Validate()
}

func parseOrder(value any) ([]Category, error) {
	var names []string
	switch v := value.(type) {
	case []string:
		names = v
	case []Category:
		for _, c := range v {
			names = append(names, string(c))
		}
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: order entries must be strings, got %T", ErrInvalidConfig, item)
			}
			names = append(names, s)
		}
	default:
		return nil, fmt.Errorf("%w: order must be a list, got %T", ErrInvalidConfig, value)
	}

	order := make([]Category, len(names))
	for i, name := range names {
		order[i] = Category(name)
	}
	return order, nil
}

// Validate checks that Order is a permutation of the configurable categories.
func (c Config) Validate() error {
	if len(c.Order) != len(DefaultOrder) {
		return fmt.Errorf("%w: order must list %s", ErrInvalidConfig, joinQuoted(DefaultOrder))
	}
	for i, cat := range c.Order {
		if !cat.Configurable() {
			return fmt.Errorf("%w: %q cannot be ordered; use %s", ErrInvalidConfig, cat, joinQuoted(DefaultOrder))
		}
		if slices.Contains(c.Order[:i], cat) {
			return fmt.Errorf("%w: %q is listed twice", ErrInvalidConfig, cat)
		}
	}
	return nil
}

func joinQuoted(categories []Category) string {
	quoted := make([]string, len(categories))
	for i, c := range categories {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	return strings.Join(quoted, ", ")
}
