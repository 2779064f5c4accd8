package entities

import "strconv"

// SolarPanel is a PV module record from the MCS product catalog.
type SolarPanel struct {
	ID             string  `json:"id"              yaml:"id"`
	Manufacturer   string  `json:"manufacturer"    yaml:"manufacturer"`
	Model          string  `json:"model"           yaml:"model"`
	Wattage        int     `json:"wattage"         yaml:"wattage"`
	Efficiency     float64 `json:"efficiency"      yaml:"efficiency"` // percent
	CellType       string  `json:"cell_type"       yaml:"cell_type"`
	Voc            float64 `json:"voc"             yaml:"voc"`
	Isc            float64 `json:"isc"             yaml:"isc"`
	YearIntroduced int     `json:"year_introduced" yaml:"year_introduced"`
}

func (p SolarPanel) RecordID() string  { return p.ID }
func (p SolarPanel) Make() string      { return p.Manufacturer }
func (p SolarPanel) ModelName() string { return p.Model }
func (p SolarPanel) Introduced() int   { return p.YearIntroduced }

func (p SolarPanel) SecondaryKey() string {
	if p.Wattage == 0 {
		return ""
	}
	return strconv.Itoa(p.Wattage)
}
