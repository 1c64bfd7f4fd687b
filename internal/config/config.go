package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Shape string

const (
	ShapeSquare Shape = "square"
	ShapeCircle Shape = "circle"
)

const (
	DefaultScanInterval = 1.0
	DefaultRadius       = 5000.0
	DefaultShape        = ShapeSquare

	BaseFlagAsset          = "/Game/ConZ_Files/BaseBuilding/BaseElements/BP_Base_Flag.BP_Base_Flag_C"
	SupporterBaseFlagAsset = "/Game/ConZ_Files/BaseBuilding/BaseElements/BP_Base_Flag_Supporter.BP_Base_Flag_Supporter_C"
)

type ZoneRule struct {
	Asset  string  `json:"asset" yaml:"asset"`
	Radius float64 `json:"radius" yaml:"radius"`
	Shape  Shape   `json:"shape" yaml:"shape"`
}

type RunConfig struct {
	ScanInterval float64    `json:"scan_interval"`
	Zones        []ZoneRule `json:"zones"`
}

// Rules maps a base element asset path to the rule anchored on it.
type Rules map[string]ZoneRule

// fileConfig tells a missing key apart from a zero value.
type fileConfig struct {
	ScanInterval *float64        `json:"scan_interval" yaml:"scan_interval"`
	Zones        *[]fileZoneRule `json:"zones" yaml:"zones"`
}

type fileZoneRule struct {
	Asset  string   `json:"asset" yaml:"asset"`
	Radius *float64 `json:"radius" yaml:"radius"`
	Shape  Shape    `json:"shape" yaml:"shape"`
}

func Default() RunConfig {
	return RunConfig{
		ScanInterval: DefaultScanInterval,
		Zones: []ZoneRule{
			{Asset: BaseFlagAsset, Radius: DefaultRadius, Shape: DefaultShape},
			{Asset: SupporterBaseFlagAsset, Radius: DefaultRadius, Shape: DefaultShape},
		},
	}
}

func (c RunConfig) Interval() time.Duration {
	return time.Duration(c.ScanInterval * float64(time.Second))
}

// Rules indexes the zone rules by asset. A later rule for the same asset
// replaces an earlier one.
func (c RunConfig) Rules() Rules {
	rules := make(Rules, len(c.Zones))
	for _, z := range c.Zones {
		rules[z.Asset] = z
	}
	return rules
}

// LoadOrCreate never fails: a missing file is created from defaults, an
// unreadable one is logged and defaults are used for this run only.
func LoadOrCreate(path string, log logrus.FieldLogger) RunConfig {
	log = log.WithField("component", "config")

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := Default()
		if err := writeConfig(path, cfg); err != nil {
			log.WithError(err).Warn("could not write default config.json")
		}
		return cfg
	}
	if err != nil {
		log.Errorf("[LOGIC] Error loading config.json: %v", err)
		return Default()
	}

	var fc fileConfig
	if err := decode(data, &fc); err != nil {
		log.Errorf("[LOGIC] Error loading config.json: %v", err)
		return Default()
	}

	return merge(fc, log)
}

func decode(data []byte, fc *fileConfig) error {
	if json.Valid(data) {
		if err := json.Unmarshal(data, fc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, fc); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	return nil
}

func merge(fc fileConfig, log logrus.FieldLogger) RunConfig {
	cfg := Default()

	if fc.ScanInterval != nil {
		if *fc.ScanInterval > 0 {
			cfg.ScanInterval = *fc.ScanInterval
		} else {
			log.Warnf("scan_interval must be positive, got %v; using %v", *fc.ScanInterval, DefaultScanInterval)
		}
	}

	if fc.Zones != nil {
		cfg.Zones = normalizeZones(*fc.Zones, log)
	}

	return cfg
}

// normalizeZones fills an absent radius or shape from defaults. A radius
// that is present but not positive drops the rule.
func normalizeZones(zones []fileZoneRule, log logrus.FieldLogger) []ZoneRule {
	out := make([]ZoneRule, 0, len(zones))
	for i, fz := range zones {
		z := ZoneRule{
			Asset:  strings.TrimSpace(fz.Asset),
			Radius: DefaultRadius,
			Shape:  Shape(strings.ToLower(strings.TrimSpace(string(fz.Shape)))),
		}
		if z.Asset == "" {
			log.Warnf("zone %d: asset is required, skipping", i)
			continue
		}
		if fz.Radius != nil {
			if *fz.Radius <= 0 {
				log.Warnf("zone %d (%s): radius must be positive, got %v, skipping", i, z.Asset, *fz.Radius)
				continue
			}
			z.Radius = *fz.Radius
		}
		switch z.Shape {
		case "":
			z.Shape = DefaultShape
		case ShapeSquare, ShapeCircle:
		default:
			log.Warnf("zone %d (%s): unknown shape %q, skipping", i, z.Asset, z.Shape)
			continue
		}
		out = append(out, z)
	}
	return out
}

func writeConfig(path string, cfg RunConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	contents, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, append(contents, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// FileLoader reads the run configuration from disk on every call, so edits
// apply on the next scan.
type FileLoader struct {
	Path string
	Log  logrus.FieldLogger
}

func (l FileLoader) Load() RunConfig {
	return LoadOrCreate(l.Path, l.Log)
}
