package instancefile

import (
	"errors"
	"os"
	"path/filepath"
	"taxi-dispatch-service/internal/domain"
	"testing"
)

const sampleJSON = `{
  "speed": 1.0,
  "vehicles": [{"coordX": 0, "coordY": 0}, {"coordX": 10, "coordY": 0}],
  "customers": [
    {"coordX": 0, "coordY": 0, "destinationX": 1, "destinationY": 0},
    {"coordX": 10, "coordY": 0, "destinationX": 11, "destinationY": 0}
  ]
}`

const sampleYAML = `
name: city
speed: 0.5
vehicles:
  - {coordX: 1, coordY: 2}
customers:
  - coordX: 0
    coordY: 0
    destinationX: 3
    destinationY: 4
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadJSONUsesFileStem(t *testing.T) {
	inst, err := Load(writeFile(t, "example.json", sampleJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inst.Name != "example" {
		t.Fatalf("expected name from file stem, got %q", inst.Name)
	}
	if inst.Speed != 1 || len(inst.Taxis) != 2 || len(inst.Customers) != 2 {
		t.Fatalf("unexpected instance: %+v", inst)
	}
	if inst.Customers[1].Pickup != (domain.Point{X: 10, Y: 0}) || inst.Customers[1].TripDistance != 1 {
		t.Fatalf("unexpected customer: %+v", inst.Customers[1])
	}
}

func TestLoadYAML(t *testing.T) {
	inst, err := Load(writeFile(t, "whatever.yml", sampleYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inst.Name != "city" || inst.Speed != 0.5 {
		t.Fatalf("unexpected header: name=%q speed=%v", inst.Name, inst.Speed)
	}
	if inst.Customers[0].TripDuration != 10 {
		t.Fatalf("expected trip duration 10 at speed 0.5, got %v", inst.Customers[0].TripDuration)
	}
	if inst.Taxis[0].Start != (domain.Point{X: 1, Y: 2}) {
		t.Fatalf("unexpected taxi: %+v", inst.Taxis[0])
	}
}

func TestParseDefaultsSpeed(t *testing.T) {
	inst, err := Parse([]byte(`{"vehicles": [], "customers": []}`), FormatJSON, "empty")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.Speed != domain.DefaultSpeed {
		t.Fatalf("expected default speed, got %v", inst.Speed)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing destination", body: `{"vehicles": [], "customers": [{"coordX": 1, "coordY": 1}]}`},
		{name: "missing vehicle coordinate", body: `{"vehicles": [{"coordX": 1}], "customers": []}`},
		{name: "zero speed", body: `{"speed": 0, "vehicles": [], "customers": []}`},
		{name: "not json", body: `{"vehicles": [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.body), FormatJSON, "bad")
			if !errors.Is(err, domain.ErrInvalidInstance) {
				t.Fatalf("expected ErrInvalidInstance, got %v", err)
			}
		})
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	if _, err := Load(writeFile(t, "instance.toml", "")); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}

func TestEncodeRoundTripKeepsFingerprint(t *testing.T) {
	orig, err := Parse([]byte(sampleYAML), FormatYAML, "x")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	for _, format := range []Format{FormatJSON, FormatYAML} {
		data, err := Encode(orig, format)
		if err != nil {
			t.Fatalf("encode %s: %v", format, err)
		}
		back, err := Parse(data, format, "ignored")
		if err != nil {
			t.Fatalf("parse %s: %v", format, err)
		}
		if back.Name != "city" || back.Fingerprint() != orig.Fingerprint() {
			t.Fatalf("%s round trip changed the instance", format)
		}
	}
}
