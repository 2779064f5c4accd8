package entities

// FireAlarmPanel is a control and indicating equipment record from the fire catalog.
type FireAlarmPanel struct {
	ID             string `json:"id"              yaml:"id"`
	Manufacturer   string `json:"manufacturer"    yaml:"manufacturer"`
	Model          string `json:"model"           yaml:"model"`
	SystemType     string `json:"system_type"     yaml:"system_type"` // conventional, addressable, wireless
	Protocol       string `json:"protocol"        yaml:"protocol"`
	Loops          int    `json:"loops"           yaml:"loops"`
	DevicesPerLoop int    `json:"devices_per_loop" yaml:"devices_per_loop"`
	Zones          int    `json:"zones"           yaml:"zones"`
	Networkable    bool   `json:"networkable"     yaml:"networkable"`
	YearIntroduced int    `json:"year_introduced" yaml:"year_introduced"`
}

func (p FireAlarmPanel) RecordID() string     { return p.ID }
func (p FireAlarmPanel) Make() string         { return p.Manufacturer }
func (p FireAlarmPanel) ModelName() string    { return p.Model }
func (p FireAlarmPanel) Introduced() int      { return p.YearIntroduced }
func (p FireAlarmPanel) SecondaryKey() string { return p.Protocol }

// LoopCapacity is the total number of addressable devices the panel can drive.
func (p FireAlarmPanel) LoopCapacity() int {
	return p.Loops * p.DevicesPerLoop
}
