package catalog

import (
	"embed"
	"fmt"
	"io/fs"

	"certificate-system/internal/entities"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

type Kind string

const (
	KindFirePanel  Kind = "fire-panels"
	KindSolarPanel Kind = "solar-panels"
	KindInverter   Kind = "inverters"
)

var Kinds = []Kind{KindFirePanel, KindSolarPanel, KindInverter}

func (k Kind) Valid() bool {
	switch k {
	case KindFirePanel, KindSolarPanel, KindInverter:
		return true
	}
	return false
}

// DNO is a Distribution Network Operator reference entry.
type DNO struct {
	Code    string `json:"code"    yaml:"code"`
	Name    string `json:"name"    yaml:"name"`
	Region  string `json:"region"  yaml:"region"`
	MPANID  string `json:"mpan_id" yaml:"mpan_id"`
	Website string `json:"website" yaml:"website"`
}

// Catalogs groups the stores of every equipment domain plus the DNO reference list.
type Catalogs struct {
	FirePanels  *Store[entities.FireAlarmPanel]
	SolarPanels *Store[entities.SolarPanel]
	Inverters   *Store[entities.SolarInverter]
	DNOs        []DNO
}

// Load reads the catalogs shipped with the binary.
func Load() (*Catalogs, error) {
	return LoadFS(embedded)
}

// LoadFS reads data/fire_panels.yaml, data/solar_panels.yaml, data/inverters.yaml and
// data/dno.yaml from fsys.
func LoadFS(fsys fs.FS) (*Catalogs, error) {
	var (
		c   Catalogs
		err error
	)

	var fire struct {
		Panels []entities.FireAlarmPanel `yaml:"panels"`
	}
	if err := readYAML(fsys, "data/fire_panels.yaml", &fire); err != nil {
		return nil, err
	}
	if c.FirePanels, err = NewStore(fire.Panels); err != nil {
		return nil, fmt.Errorf("fire panel catalog: %w", err)
	}

	var solar struct {
		Panels []entities.SolarPanel `yaml:"panels"`
	}
	if err := readYAML(fsys, "data/solar_panels.yaml", &solar); err != nil {
		return nil, err
	}
	if c.SolarPanels, err = NewStore(solar.Panels); err != nil {
		return nil, fmt.Errorf("solar panel catalog: %w", err)
	}

	var inverters struct {
		Inverters []entities.SolarInverter `yaml:"inverters"`
	}
	if err := readYAML(fsys, "data/inverters.yaml", &inverters); err != nil {
		return nil, err
	}
	if c.Inverters, err = NewStore(inverters.Inverters); err != nil {
		return nil, fmt.Errorf("inverter catalog: %w", err)
	}

	var dno struct {
		Operators []DNO `yaml:"operators"`
	}
	if err := readYAML(fsys, "data/dno.yaml", &dno); err != nil {
		return nil, err
	}
	c.DNOs = dno.Operators

	return &c, nil
}

func readYAML(fsys fs.FS, name string, out any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
