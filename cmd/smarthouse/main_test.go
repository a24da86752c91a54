package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nerrad567/smarthouse-core/internal/infrastructure/database"
)

const fixture = `
	INSERT INTO rooms (id, floor, area, name) VALUES
		(1, 0, 32.5, 'Living Room'),
		(2, 1, 14.0, 'Bathroom');

	INSERT INTO devices (id, room, kind, category, supplier, product) VALUES
		('temp-living', 1, 'Temperature Sensor', 'sensor', 'Elko', 'Thermo 1'),
		('hum-bath', 2, 'Humidity Sensor', 'sensor', 'Elko', 'Hygro 2'),
		('fan-bath', 2, 'Fan', 'actuator', 'Vent', 'F1');

	INSERT INTO measurements (device, ts, value, unit) VALUES
		('temp-living', '2024-01-27 08:00:00', 20.0, '°C'),
		('temp-living', '2024-01-27 12:00:00', 22.0, '°C'),
		('temp-living', '2024-01-28 09:00:00', 18.0, '°C'),
		('hum-bath', '2024-01-27 07:00:00', 90.0, '%'),
		('hum-bath', '2024-01-27 07:10:00', 91.0, '%'),
		('hum-bath', '2024-01-27 07:20:00', 92.0, '%'),
		('hum-bath', '2024-01-27 07:30:00', 93.0, '%'),
		('hum-bath', '2024-01-27 15:00:00', 40.0, '%'),
		('hum-bath', '2024-01-27 15:30:00', 40.0, '%'),
		('hum-bath', '2024-01-27 16:00:00', 40.0, '%'),
		('hum-bath', '2024-01-27 16:30:00', 40.0, '%');
`

// setupStore creates a seeded database and points the CLI at it through
// the environment.
func setupStore(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "smarthouse.db")
	ctx := context.Background()

	db, err := database.Open(ctx, database.Config{Path: path, BusyTimeout: 1})
	if err != nil {
		t.Fatalf("database.Open() error = %v", err)
	}
	if err := db.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	if _, err := db.ExecContext(ctx, fixture); err != nil {
		t.Fatalf("seeding store: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	t.Setenv(configEnvVar, "")
	t.Setenv("SMARTHOUSE_DATABASE_PATH", path)
	t.Setenv("SMARTHOUSE_LOG_LEVEL", "error")
	return path
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	configPath = ""
	summaryAsJSON = false
	versionAsJSON = false
	avgTempOpts.from = ""
	avgTempOpts.until = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSummary(t *testing.T) {
	setupStore(t)

	out, err := execute(t, "summary")
	if err != nil {
		t.Fatalf("summary error = %v", err)
	}

	for _, want := range []string{
		"Smart House: 2 floors, 2 rooms, 3 devices, 46.5 m²",
		"Floor 0",
		"  Living Room (32.5 m²)",
		"temp-living",
		"fan-bath",
		"[off]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q:\n%s", want, out)
		}
	}
}

func TestSummary_JSON(t *testing.T) {
	setupStore(t)

	out, err := execute(t, "summary", "--json")
	if err != nil {
		t.Fatalf("summary --json error = %v", err)
	}

	var view houseView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("unmarshal summary: %v", err)
	}
	if len(view.Floors) != 2 {
		t.Fatalf("floors = %d, want 2", len(view.Floors))
	}
	bath := view.Floors[1].Rooms[0]
	if bath.Name != "Bathroom" || len(bath.Devices) != 2 {
		t.Errorf("bathroom = %+v", bath)
	}
	if fan := bath.Devices[1]; fan.On == nil || *fan.On {
		t.Errorf("fan = %+v, want on=false", fan)
	}
}

func TestLatestAndHistory(t *testing.T) {
	setupStore(t)

	out, err := execute(t, "latest", "temp-living")
	if err != nil {
		t.Fatalf("latest error = %v", err)
	}
	if want := "temp-living: 2024-01-28 09:00:00 18 °C\n"; out != want {
		t.Errorf("latest = %q, want %q", out, want)
	}

	out, err = execute(t, "history", "temp-living")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) != 3 {
		t.Errorf("history printed %d lines, want 3:\n%s", len(lines), out)
	}

	if _, err := execute(t, "latest", "fan-bath"); err == nil {
		t.Error("latest on an actuator should fail")
	}
}

func TestAvgTemp(t *testing.T) {
	setupStore(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"all days", []string{"avg-temp", "Living Room"}, "2024-01-27  21.00 °C\n2024-01-28  18.00 °C\n"},
		{"from bound", []string{"avg-temp", "Living Room", "--from", "2024-01-28"}, "2024-01-28  18.00 °C\n"},
		{"no readings", []string{"avg-temp", "Bathroom"}, "Bathroom: no temperature readings\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("avg-temp error = %v", err)
			}
			if out != tt.want {
				t.Errorf("avg-temp = %q, want %q", out, tt.want)
			}
		})
	}

	if _, err := execute(t, "avg-temp", "Garage"); err == nil {
		t.Error("avg-temp for an unknown room should fail")
	}
	if _, err := execute(t, "avg-temp", "Living Room", "--until", "28.01.2024"); err == nil {
		t.Error("avg-temp with a malformed date should fail")
	}
}

func TestHumidHours(t *testing.T) {
	setupStore(t)

	out, err := execute(t, "humid-hours", "Bathroom", "2024-01-27")
	if err != nil {
		t.Fatalf("humid-hours error = %v", err)
	}
	if out != "07:00\n" {
		t.Errorf("humid-hours = %q, want %q", out, "07:00\n")
	}
}

func TestSetActuator(t *testing.T) {
	setupStore(t)

	out, err := execute(t, "set-actuator", "fan-bath", "on")
	if err != nil {
		t.Fatalf("set-actuator error = %v", err)
	}
	if out != "fan-bath: on\n" {
		t.Errorf("set-actuator = %q", out)
	}

	out, err = execute(t, "summary")
	if err != nil {
		t.Fatalf("summary error = %v", err)
	}
	if !strings.Contains(out, "[on]") {
		t.Errorf("summary after set-actuator does not show the fan on:\n%s", out)
	}

	if _, err := execute(t, "set-actuator", "fan-bath", "maybe"); err == nil {
		t.Error("set-actuator with an invalid state should fail")
	}
	if _, err := execute(t, "set-actuator", "temp-living", "on"); err == nil {
		t.Error("set-actuator on a sensor should fail")
	}
}

func TestExport_NoSinks(t *testing.T) {
	setupStore(t)

	_, err := execute(t, "export")
	if !errors.Is(err, errNoSinks) {
		t.Errorf("export error = %v, want %v", err, errNoSinks)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version", "--json")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}

	var v versionResult
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("unmarshal version: %v", err)
	}
	if v.Version != version {
		t.Errorf("version = %q, want %q", v.Version, version)
	}
}

func TestConfigFlag(t *testing.T) {
	path := setupStore(t)

	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	content := "house:\n  name: \"Cabin\"\ndatabase:\n  path: \"" + path + "\"\n"
	if err := os.WriteFile(cfgFile, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	out, err := execute(t, "summary", "--config", cfgFile)
	if err != nil {
		t.Fatalf("summary --config error = %v", err)
	}
	if !strings.HasPrefix(out, "Cabin:") {
		t.Errorf("summary did not use the house name from the config file:\n%s", out)
	}

	if _, err := execute(t, "summary", "--config", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("summary with a missing config file should fail")
	}
}
