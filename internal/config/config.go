// Package config loads the physics world settings from JSON files, plain maps
// and PHYSICS_* environment variables.
package config

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"

	"physics3d/internal/broadphase"
)

// ErrInvalidConfig wraps every decoding and validation failure.
var ErrInvalidConfig = errors.New("invalid physics config")

// EnvPrefix prefixes the environment variables read by ApplyEnv.
const EnvPrefix = "PHYSICS_"

type Config struct {
	// BroadPhase is one of "grid", "tree" or "brute".
	BroadPhase string `mapstructure:"broadphase"`
	// GridScale is the lattice resolution per axis; 0 derives it from density.
	GridScale      uint32     `mapstructure:"grid_scale"`
	LeafSize       int        `mapstructure:"leaf_size"`
	MaxDepth       int        `mapstructure:"max_depth"`
	MaxDuplication int        `mapstructure:"max_duplication"`
	Tolerance      float32    `mapstructure:"tolerance"`
	Gravity        rl.Vector3 `mapstructure:"gravity"`
	// Workers bounds the narrow-phase fan-out; 0 uses GOMAXPROCS and 1 runs inline.
	Workers  int    `mapstructure:"workers"`
	Sleep    bool   `mapstructure:"sleep"`
	LogLevel string `mapstructure:"log_level"`
}

// envKeys are the settings that can be overridden from the environment.
var envKeys = []string{
	"broadphase", "grid_scale", "leaf_size", "max_depth", "max_duplication",
	"tolerance", "workers", "sleep", "log_level",
}

func Default() Config {
	tree := broadphase.DefaultTreeOptions()
	return Config{
		BroadPhase:     string(broadphase.KindGrid),
		LeafSize:       tree.LeafSize,
		MaxDepth:       tree.MaxDepth,
		MaxDuplication: tree.MaxDuplication,
		Tolerance:      0.001,
		Gravity:        rl.Vector3{X: 0, Y: -20.0, Z: 0},
		Sleep:          true,
		LogLevel:       "info",
	}
}

// Load reads a JSON object from path over the defaults and validates it.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return Config{}, errors.Wrapf(ErrInvalidConfig, "parsing %s: %v", path, err)
	}
	return FromMap(m)
}

// FromMap decodes m over the defaults and validates the result. Values may be
// strings where numbers are expected.
func FromMap(m map[string]any) (Config, error) {
	c := Default()
	if err := c.merge(m); err != nil {
		return Config{}, err
	}
	return c, c.Validate()
}

func (c *Config) merge(m map[string]any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           c,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(m); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "%v", err)
	}
	return nil
}

// ApplyEnv overrides settings from PHYSICS_<KEY> variables, e.g.
// PHYSICS_BROADPHASE=tree or PHYSICS_GRID_SCALE=16.
func (c *Config) ApplyEnv() error {
	m := map[string]any{}
	for _, key := range envKeys {
		if v, ok := os.LookupEnv(EnvPrefix + strings.ToUpper(key)); ok {
			m[key] = v
		}
	}
	if len(m) == 0 {
		return nil
	}
	if err := c.merge(m); err != nil {
		return err
	}
	return c.Validate()
}

func (c Config) Validate() error {
	switch broadphase.Kind(c.BroadPhase) {
	case broadphase.KindGrid, broadphase.KindTree, broadphase.KindBrute:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown broadphase %q", c.BroadPhase)
	}
	if c.GridScale > broadphase.MaxScale {
		return errors.Wrapf(ErrInvalidConfig, "grid_scale %d exceeds %d", c.GridScale, broadphase.MaxScale)
	}
	if c.LeafSize < 1 {
		return errors.Wrapf(ErrInvalidConfig, "leaf_size %d", c.LeafSize)
	}
	if c.MaxDepth < 1 {
		return errors.Wrapf(ErrInvalidConfig, "max_depth %d", c.MaxDepth)
	}
	if c.MaxDuplication < 1 {
		return errors.Wrapf(ErrInvalidConfig, "max_duplication %d", c.MaxDuplication)
	}
	if c.Tolerance < 0 {
		return errors.Wrapf(ErrInvalidConfig, "tolerance %v", c.Tolerance)
	}
	if c.Workers < 0 {
		return errors.Wrapf(ErrInvalidConfig, "workers %d", c.Workers)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "log_level %q", c.LogLevel)
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// BroadPhaseOptions converts the settings for broadphase.New.
func (c Config) BroadPhaseOptions() broadphase.Options {
	return broadphase.Options{
		Scale: c.GridScale,
		Tree: broadphase.TreeOptions{
			LeafSize:       c.LeafSize,
			MaxDepth:       c.MaxDepth,
			MaxDuplication: c.MaxDuplication,
		},
	}
}
