package instancefile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"taxi-dispatch-service/internal/domain"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// On-disk instance layout. Coordinates are pointers so missing fields can be
// told apart from zero.
type File struct {
	Name      string           `json:"name,omitempty" yaml:"name,omitempty"`
	Speed     *float64         `json:"speed,omitempty" yaml:"speed,omitempty"`
	Vehicles  []VehicleRecord  `json:"vehicles" yaml:"vehicles"`
	Customers []CustomerRecord `json:"customers" yaml:"customers"`
}

type VehicleRecord struct {
	CoordX *float64 `json:"coordX" yaml:"coordX"`
	CoordY *float64 `json:"coordY" yaml:"coordY"`
}

type CustomerRecord struct {
	CoordX       *float64 `json:"coordX" yaml:"coordX"`
	CoordY       *float64 `json:"coordY" yaml:"coordY"`
	DestinationX *float64 `json:"destinationX" yaml:"destinationX"`
	DestinationY *float64 `json:"destinationY" yaml:"destinationY"`
}

// Load reads an instance file, choosing the format from the extension.
// The instance is named after the file stem unless the file sets a name.
func Load(path string) (*domain.Instance, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("load instance: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load instance: read %q: %w", path, err)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	inst, err := Parse(data, format, stem)
	if err != nil {
		return nil, fmt.Errorf("load instance %q: %w", path, err)
	}
	return inst, nil
}

func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported instance file extension %q", filepath.Ext(path))
	}
}

// Parse decodes data and builds a validated instance.
// defaultName is used when the document has no name of its own.
func Parse(data []byte, format Format, defaultName string) (*domain.Instance, error) {
	var f File
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("%w: parse json: %v", domain.ErrInvalidInstance, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("%w: parse yaml: %v", domain.ErrInvalidInstance, err)
		}
	default:
		return nil, fmt.Errorf("unsupported instance format %q", format)
	}

	if strings.TrimSpace(f.Name) == "" {
		f.Name = defaultName
	}
	return f.Instance()
}

// Instance converts the decoded document into a domain instance.
func (f File) Instance() (*domain.Instance, error) {
	speed := domain.DefaultSpeed
	if f.Speed != nil {
		speed = *f.Speed
	}

	taxis := make([]domain.Point, 0, len(f.Vehicles))
	for i, v := range f.Vehicles {
		if v.CoordX == nil || v.CoordY == nil {
			return nil, fmt.Errorf("%w: vehicle at index %d is missing coordinates", domain.ErrInvalidInstance, i)
		}
		taxis = append(taxis, domain.Point{X: *v.CoordX, Y: *v.CoordY})
	}

	customers := make([]domain.CustomerInput, 0, len(f.Customers))
	for i, c := range f.Customers {
		if c.CoordX == nil || c.CoordY == nil {
			return nil, fmt.Errorf("%w: customer at index %d is missing pickup coordinates", domain.ErrInvalidInstance, i)
		}
		if c.DestinationX == nil || c.DestinationY == nil {
			return nil, fmt.Errorf("%w: customer at index %d is missing destination coordinates", domain.ErrInvalidInstance, i)
		}
		customers = append(customers, domain.CustomerInput{
			Pickup:      domain.Point{X: *c.CoordX, Y: *c.CoordY},
			Destination: domain.Point{X: *c.DestinationX, Y: *c.DestinationY},
		})
	}

	return domain.NewInstance(f.Name, speed, customers, taxis)
}

// FromInstance converts an instance back into its file layout.
func FromInstance(inst *domain.Instance) File {
	speed := inst.Speed
	f := File{
		Name:      inst.Name,
		Speed:     &speed,
		Vehicles:  make([]VehicleRecord, 0, len(inst.Taxis)),
		Customers: make([]CustomerRecord, 0, len(inst.Customers)),
	}
	for _, t := range inst.Taxis {
		f.Vehicles = append(f.Vehicles, VehicleRecord{CoordX: ptr(t.Start.X), CoordY: ptr(t.Start.Y)})
	}
	for _, c := range inst.Customers {
		f.Customers = append(f.Customers, CustomerRecord{
			CoordX:       ptr(c.Pickup.X),
			CoordY:       ptr(c.Pickup.Y),
			DestinationX: ptr(c.Destination.X),
			DestinationY: ptr(c.Destination.Y),
		})
	}
	return f
}

// Encode writes inst in the given format.
func Encode(inst *domain.Instance, format Format) ([]byte, error) {
	f := FromInstance(inst)
	switch format {
	case FormatJSON:
		return json.MarshalIndent(f, "", "  ")
	case FormatYAML:
		return yaml.Marshal(f)
	default:
		return nil, fmt.Errorf("unsupported instance format %q", format)
	}
}

func ptr(v float64) *float64 { return &v }
