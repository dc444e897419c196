package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/rotaplan/oncall/core/schedule"
)

// NotFoundError reports a missing configuration file.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("configuration file not found: %s", e.Path)
}

// InvalidError reports a configuration that loaded but fails validation.
type InvalidError struct {
	Reason string
}

func (e *InvalidError) Error() string {
	return "invalid configuration: " + e.Reason
}

// Config is the top-level configuration document. Everything lives under
// the mandatory "schedule" key.
type Config struct {
	Schedule ScheduleConfig `json:"schedule"`
}

// ScheduleConfig defines one complete on-call schedule: metadata, range
// defaults and the layer definitions keyed by layer ID.
type ScheduleConfig struct {
	Name           string                    `json:"name"`
	Description    string                    `json:"description"`
	StartDate      string                    `json:"start_date"`
	DurationMonths int                       `json:"duration_months"`
	Layers         map[string]schedule.Layer `json:"layers"`

	layerOrder []string
}

// SetDefaults applies the documented fallbacks.
func (c *ScheduleConfig) SetDefaults() {
	if c.Name == "" {
		c.Name = "On-Call Schedule"
	}
	if c.DurationMonths == 0 {
		c.DurationMonths = 3
	}
}

// Validate checks mandatory shape: at least one layer, and every declared
// window parseable as HH:MM.
func (c ScheduleConfig) Validate() error {
	if len(c.Layers) == 0 {
		return &InvalidError{Reason: "no layers defined"}
	}
	for id, layer := range c.Layers {
		for day, w := range layer.TimeWindows {
			if err := schedule.ValidateClock(w.Start); err != nil {
				return &InvalidError{Reason: fmt.Sprintf("layer %s, %s: %v", id, day, err)}
			}
			if err := schedule.ValidateClock(w.End); err != nil {
				return &InvalidError{Reason: fmt.Sprintf("layer %s, %s: %v", id, day, err)}
			}
		}
	}
	return nil
}

// OrderedLayers returns the layers in declaration order. The rotation
// aggregator uses this order as its stable tiebreak, so it must survive the
// round trip through Go's unordered maps.
func (c ScheduleConfig) OrderedLayers() []schedule.Layer {
	layers := make([]schedule.Layer, 0, len(c.layerOrder))
	for _, id := range c.layerOrder {
		layers = append(layers, c.Layers[id])
	}
	return layers
}

// Load reads a YAML or JSON configuration file, applies ONCALL_-prefixed
// environment overrides, normalizes layers and validates the result.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, err
	}

	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides, e.g. ONCALL_SCHEDULE__DURATION_MONTHS.
	if err := k.Load(env.Provider("ONCALL_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "oncall_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	if !k.Exists("schedule") {
		return nil, &InvalidError{Reason: "missing 'schedule' key"}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, &InvalidError{Reason: err.Error()}
	}

	order, err := layerOrderFromFile(path)
	if err != nil {
		return nil, err
	}
	// Layers introduced outside the document (env overrides) trail the
	// declared ones in a fixed order.
	declared := make(map[string]bool, len(order))
	for _, id := range order {
		if _, ok := cfg.Schedule.Layers[id]; ok {
			declared[id] = true
		}
	}
	order = slices.DeleteFunc(order, func(id string) bool { return !declared[id] })
	var extra []string
	for id := range cfg.Schedule.Layers {
		if !declared[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	cfg.Schedule.layerOrder = append(order, extra...)

	for id, layer := range cfg.Schedule.Layers {
		layer.ID = id
		layer.Normalize()
		cfg.Schedule.Layers[id] = layer
	}

	cfg.Schedule.SetDefaults()
	if err := cfg.Schedule.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
