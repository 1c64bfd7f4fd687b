package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestLoadOrCreate(t *testing.T) {
	t.Run("missing file is created with defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config", "config.json")
		log, _ := test.NewNullLogger()

		cfg := LoadOrCreate(path, log)
		if !reflect.DeepEqual(cfg, Default()) {
			t.Fatalf("expected defaults, got %+v", cfg)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected config file to be written: %v", err)
		}

		again := LoadOrCreate(path, log)
		if !reflect.DeepEqual(again, Default()) {
			t.Fatalf("expected written defaults to round trip, got %+v", again)
		}
	})

	t.Run("missing zones key takes defaults and keeps interval", func(t *testing.T) {
		path := writeTempConfig(t, `{"scan_interval": 7}`)
		log, _ := test.NewNullLogger()

		cfg := LoadOrCreate(path, log)
		if cfg.ScanInterval != 7 {
			t.Fatalf("expected scan_interval 7, got %v", cfg.ScanInterval)
		}
		if !reflect.DeepEqual(cfg.Zones, Default().Zones) {
			t.Fatalf("expected default zones, got %+v", cfg.Zones)
		}
	})

	t.Run("missing keys are not written back", func(t *testing.T) {
		contents := `{"scan_interval": 3}`
		path := writeTempConfig(t, contents)
		log, _ := test.NewNullLogger()

		LoadOrCreate(path, log)
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading config: %v", err)
		}
		if string(data) != contents {
			t.Fatalf("expected file untouched, got %q", data)
		}
	})

	t.Run("user zones are kept", func(t *testing.T) {
		path := writeTempConfig(t, `{
	"zones": [
		{"asset": "/Game/Custom.Custom_C", "radius": 1200, "shape": "circle"}
	]
}`)
		log, _ := test.NewNullLogger()

		cfg := LoadOrCreate(path, log)
		if cfg.ScanInterval != DefaultScanInterval {
			t.Fatalf("expected default interval, got %v", cfg.ScanInterval)
		}
		want := []ZoneRule{{Asset: "/Game/Custom.Custom_C", Radius: 1200, Shape: ShapeCircle}}
		if !reflect.DeepEqual(cfg.Zones, want) {
			t.Fatalf("expected %+v, got %+v", want, cfg.Zones)
		}
	})

	t.Run("empty zones list stays empty", func(t *testing.T) {
		path := writeTempConfig(t, `{"zones": []}`)
		log, _ := test.NewNullLogger()

		cfg := LoadOrCreate(path, log)
		if len(cfg.Zones) != 0 {
			t.Fatalf("expected no zones, got %+v", cfg.Zones)
		}
	})

	t.Run("rule defaults fill radius and shape", func(t *testing.T) {
		path := writeTempConfig(t, `{"zones": [{"asset": "/Game/A.A_C"}]}`)
		log, _ := test.NewNullLogger()

		cfg := LoadOrCreate(path, log)
		want := []ZoneRule{{Asset: "/Game/A.A_C", Radius: DefaultRadius, Shape: ShapeSquare}}
		if !reflect.DeepEqual(cfg.Zones, want) {
			t.Fatalf("expected %+v, got %+v", want, cfg.Zones)
		}
	})

	t.Run("invalid rules are skipped", func(t *testing.T) {
		path := writeTempConfig(t, `{"zones": [
			{"asset": "", "radius": 10},
			{"asset": "/Game/Neg.Neg_C", "radius": -1},
			{"asset": "/Game/Zero.Zero_C", "radius": 0, "shape": "circle"},
			{"asset": "/Game/Hex.Hex_C", "shape": "hexagon"},
			{"asset": "/Game/Ok.Ok_C", "radius": 10, "shape": "CIRCLE"}
		]}`)
		log, hook := test.NewNullLogger()

		cfg := LoadOrCreate(path, log)
		want := []ZoneRule{{Asset: "/Game/Ok.Ok_C", Radius: 10, Shape: ShapeCircle}}
		if !reflect.DeepEqual(cfg.Zones, want) {
			t.Fatalf("expected %+v, got %+v", want, cfg.Zones)
		}
		if len(hook.AllEntries()) != 4 {
			t.Fatalf("expected 4 warnings, got %d", len(hook.AllEntries()))
		}
	})

	t.Run("explicit zero radius is not replaced by the default", func(t *testing.T) {
		path := writeTempConfig(t, "zones:\n  - asset: /Game/A.A_C\n    radius: 0\n  - asset: /Game/B.B_C\n")
		log, hook := test.NewNullLogger()

		cfg := LoadOrCreate(path, log)
		want := []ZoneRule{{Asset: "/Game/B.B_C", Radius: DefaultRadius, Shape: ShapeSquare}}
		if !reflect.DeepEqual(cfg.Zones, want) {
			t.Fatalf("expected %+v, got %+v", want, cfg.Zones)
		}
		if len(hook.AllEntries()) != 1 {
			t.Fatalf("expected 1 warning, got %d", len(hook.AllEntries()))
		}
	})

	t.Run("non-positive interval falls back", func(t *testing.T) {
		path := writeTempConfig(t, `{"scan_interval": 0}`)
		log, _ := test.NewNullLogger()

		cfg := LoadOrCreate(path, log)
		if cfg.ScanInterval != DefaultScanInterval {
			t.Fatalf("expected default interval, got %v", cfg.ScanInterval)
		}
	})

	t.Run("yaml syntax is accepted", func(t *testing.T) {
		path := writeTempConfig(t, "scan_interval: 2.5\nzones:\n  - asset: /Game/Y.Y_C\n    radius: 300\n    shape: square\n")
		log, _ := test.NewNullLogger()

		cfg := LoadOrCreate(path, log)
		if cfg.ScanInterval != 2.5 {
			t.Fatalf("expected 2.5, got %v", cfg.ScanInterval)
		}
		if len(cfg.Zones) != 1 || cfg.Zones[0].Asset != "/Game/Y.Y_C" {
			t.Fatalf("unexpected zones %+v", cfg.Zones)
		}
	})

	t.Run("broken file falls back without overwriting", func(t *testing.T) {
		contents := "scan_interval: [\n"
		path := writeTempConfig(t, contents)
		log, hook := test.NewNullLogger()

		cfg := LoadOrCreate(path, log)
		if !reflect.DeepEqual(cfg, Default()) {
			t.Fatalf("expected defaults, got %+v", cfg)
		}
		if hook.LastEntry() == nil || hook.LastEntry().Level != logrus.ErrorLevel {
			t.Fatalf("expected an error to be logged")
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading config: %v", err)
		}
		if string(data) != contents {
			t.Fatalf("expected broken file untouched, got %q", data)
		}
	})
}

func TestRules(t *testing.T) {
	cfg := RunConfig{Zones: []ZoneRule{
		{Asset: "/Game/A.A_C", Radius: 100, Shape: ShapeSquare},
		{Asset: "/Game/B.B_C", Radius: 200, Shape: ShapeCircle},
		{Asset: "/Game/A.A_C", Radius: 300, Shape: ShapeCircle},
	}}

	rules := cfg.Rules()
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}
	if got := rules["/Game/A.A_C"]; got.Radius != 300 || got.Shape != ShapeCircle {
		t.Fatalf("expected later duplicate to win, got %+v", got)
	}
}

func TestInterval(t *testing.T) {
	cfg := RunConfig{ScanInterval: 1.5}
	if got := cfg.Interval(); got != 1500*time.Millisecond {
		t.Fatalf("expected 1.5s, got %v", got)
	}
}

func TestCreateDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "config.json")

	written, err := CreateDefault(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !written {
		t.Fatalf("expected file to be written")
	}

	written, err = CreateDefault(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if written {
		t.Fatalf("expected existing file to be left alone")
	}
}

func TestResolveLayout(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(HomeEnv, filepath.Join(dir, "env"))

		layout, err := ResolveLayout(dir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if layout.Root != dir {
			t.Fatalf("expected %s, got %s", dir, layout.Root)
		}
		if layout.StatusFile() != filepath.Join(dir, "data", "data.ini") {
			t.Fatalf("unexpected status file %s", layout.StatusFile())
		}
	})

	t.Run("env used without flag", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(HomeEnv, dir)

		layout, err := ResolveLayout("")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if layout.Root != dir {
			t.Fatalf("expected %s, got %s", dir, layout.Root)
		}
	})
}

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}
