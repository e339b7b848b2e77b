package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"physics3d/internal/broadphase"
)

func TestDefault(t *testing.T) {
	c := Default()
	test.That(t, c.Validate(), test.ShouldBeNil)
	test.That(t, c.BroadPhase, test.ShouldEqual, "grid")
	test.That(t, c.Level(), test.ShouldEqual, log.InfoLevel)
	test.That(t, c.BroadPhaseOptions().Tree, test.ShouldResemble, broadphase.DefaultTreeOptions())
}

func TestFromMap(t *testing.T) {
	t.Run("weakly typed values", func(t *testing.T) {
		c, err := FromMap(map[string]any{
			"broadphase": "tree",
			"leaf_size":  "16",
			"grid_scale": 12.0,
			"tolerance":  "0.05",
			"sleep":      "false",
			"gravity":    map[string]any{"x": 0, "y": -9.8, "z": 0},
		})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, c.BroadPhase, test.ShouldEqual, "tree")
		test.That(t, c.LeafSize, test.ShouldEqual, 16)
		test.That(t, c.GridScale, test.ShouldEqual, 12)
		test.That(t, c.Tolerance, test.ShouldAlmostEqual, 0.05, 1e-6)
		test.That(t, c.Sleep, test.ShouldBeFalse)
		test.That(t, c.Gravity, test.ShouldResemble, rl.Vector3{Y: -9.8})
		// Unset keys keep their defaults.
		test.That(t, c.MaxDepth, test.ShouldEqual, Default().MaxDepth)
	})

	for _, tc := range []struct {
		name string
		in   map[string]any
	}{
		{"unknown key", map[string]any{"gravty": 1}},
		{"unknown broadphase", map[string]any{"broadphase": "octree"}},
		{"scale too large", map[string]any{"grid_scale": broadphase.MaxScale + 1}},
		{"zero leaf size", map[string]any{"leaf_size": 0}},
		{"negative tolerance", map[string]any{"tolerance": -1}},
		{"negative workers", map[string]any{"workers": -2}},
		{"bad log level", map[string]any{"log_level": "loud"}},
		{"not a number", map[string]any{"max_depth": "deep"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromMap(tc.in)
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, errors.Is(err, ErrInvalidConfig), test.ShouldBeTrue)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "physics.json")
	err := os.WriteFile(path, []byte(`{"broadphase": "brute", "workers": 4, "log_level": "debug"}`), 0o600)
	test.That(t, err, test.ShouldBeNil)
	c, err := Load(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, c.BroadPhase, test.ShouldEqual, "brute")
	test.That(t, c.Workers, test.ShouldEqual, 4)
	test.That(t, c.Level(), test.ShouldEqual, log.DebugLevel)

	bad := filepath.Join(dir, "bad.json")
	test.That(t, os.WriteFile(bad, []byte(`{"broadphase":`), 0o600), test.ShouldBeNil)
	_, err = Load(bad)
	test.That(t, errors.Is(err, ErrInvalidConfig), test.ShouldBeTrue)

	_, err = Load(filepath.Join(dir, "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PHYSICS_BROADPHASE", "tree")
	t.Setenv("PHYSICS_MAX_DUPLICATION", "3")

	c := Default()
	test.That(t, c.ApplyEnv(), test.ShouldBeNil)
	test.That(t, c.BroadPhase, test.ShouldEqual, "tree")
	test.That(t, c.MaxDuplication, test.ShouldEqual, 3)

	t.Setenv("PHYSICS_WORKERS", "many")
	c = Default()
	test.That(t, errors.Is(c.ApplyEnv(), ErrInvalidConfig), test.ShouldBeTrue)
}
