package entities

import "strconv"

const (
	PhaseSingle = "single"
	PhaseThree  = "three"
)

// SolarInverter is a grid-tied inverter record from the MCS product catalog.
type SolarInverter struct {
	ID             string  `json:"id"              yaml:"id"`
	Manufacturer   string  `json:"manufacturer"    yaml:"manufacturer"`
	Model          string  `json:"model"           yaml:"model"`
	RatedPowerKW   float64 `json:"rated_power_kw"  yaml:"rated_power_kw"`
	MPPTCount      int     `json:"mppt_count"      yaml:"mppt_count"`
	MaxDCVoltage   int     `json:"max_dc_voltage"  yaml:"max_dc_voltage"`
	Phase          string  `json:"phase"           yaml:"phase"`
	Hybrid         bool    `json:"hybrid"          yaml:"hybrid"`
	YearIntroduced int     `json:"year_introduced" yaml:"year_introduced"`
}

func (i SolarInverter) RecordID() string  { return i.ID }
func (i SolarInverter) Make() string      { return i.Manufacturer }
func (i SolarInverter) ModelName() string { return i.Model }
func (i SolarInverter) Introduced() int   { return i.YearIntroduced }

func (i SolarInverter) SecondaryKey() string {
	if i.RatedPowerKW == 0 {
		return i.Phase
	}
	return strconv.FormatFloat(i.RatedPowerKW, 'f', -1, 64) + "kw " + i.Phase
}

// Phases returns the number of AC phases the inverter connects to.
func (i SolarInverter) Phases() int {
	if i.Phase == PhaseThree {
		return 3
	}
	return 1
}
