package commonlexer

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownSetting = errors.New("unknown setting")
	ErrSettingType    = errors.New("setting has the wrong type")
	ErrSettingValue   = errors.New("setting has an unsupported value")
)

// settingChoices lists the values accepted by string settings that
// can't hold just anything
var settingChoices = map[string][]string{
	"engine.rule_ids":    {"sequential", "random"},
	"log.level":          {"debug", "info", "warn", "error"},
	"report.diagnostics": {"error", "warning", "all"},
}

// LoadConfig reads the YAML file at `path` on top of the defaults
// returned by NewConfig.
func LoadConfig(path string) (*Config, error) {
	cfg := NewConfig()
	if err := cfg.MergeFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MergeFile overrides settings with the ones in the YAML file at
// `path`
func (c *Config) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := c.MergeYAML(data); err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	return nil
}

// ConfigFromYAML parses `data` on top of the defaults returned by
// NewConfig.
func ConfigFromYAML(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := cfg.MergeYAML(data); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MergeYAML overrides settings with the ones found in `data`.  Nested
// mappings name settings the same way dotted keys do, so
//
//	engine:
//	  rule_ids: random
//
// and `engine.rule_ids: random` are equivalent.  Every key must name
// an existing setting and its value must have the setting's type.
func (c *Config) MergeYAML(data []byte) error {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	flat := map[string]any{}
	flatten("", doc, flat)

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := c.set(key, flat[key]); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) set(key string, value any) error {
	current, ok := (*c)[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	switch current.typ {
	case cfgValType_Bool:
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s expects a bool, got %T", ErrSettingType, key, value)
		}
		c.SetBool(key, v)
	case cfgValType_Int:
		v, ok := value.(int)
		if !ok {
			return fmt.Errorf("%w: %s expects an int, got %T", ErrSettingType, key, value)
		}
		c.SetInt(key, v)
	case cfgValType_String:
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s expects a string, got %T", ErrSettingType, key, value)
		}
		if choices, ok := settingChoices[key]; ok && !slices.Contains(choices, v) {
			return fmt.Errorf("%w: %s is %q, expected one of %s", ErrSettingValue, key, v, strings.Join(choices, ", "))
		}
		c.SetString(key, v)
	default:
		return fmt.Errorf("%w: %s", ErrSettingType, key)
	}
	return nil
}

func flatten(prefix string, node map[string]any, out map[string]any) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flatten(key, nested, out)
			continue
		}
		out[key] = v
	}
}
