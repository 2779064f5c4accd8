package catalog

import (
	"certificate-system/internal/certificates"
	"certificate-system/internal/entities"
)

// G98 covers generation up to 16 A per phase at 230 V.
const g98LimitPerPhaseKW = 3.68

// Defaults is the bundle of suggested form values derived from a selected record.
// Values keep the record's native units.
type Defaults struct {
	Fields certificates.Patch `json:"fields"`
}

func (d *Defaults) set(field string, value any) {
	d.Fields = append(d.Fields, certificates.FieldChange{Field: field, Value: value})
}

// Get returns the value suggested for field.
func (d *Defaults) Get(field string) (any, bool) {
	if d == nil {
		return nil, false
	}
	return d.Fields.Get(field)
}

// Resolver derives defaults from a record. A nil result means "do not auto-fill".
type Resolver[T Record] func(T) *Defaults

// ResolveFireAlarmPanel suggests system configuration fields. Panels that declare neither
// loops nor zones have nothing to offer.
func ResolveFireAlarmPanel(p entities.FireAlarmPanel) *Defaults {
	if p.Loops == 0 && p.Zones == 0 {
		return nil
	}
	d := &Defaults{}
	if p.SystemType != "" {
		d.set(certificates.FieldSystemType, p.SystemType)
	}
	if p.Networkable {
		d.set(certificates.FieldNetworkType, "networked")
	} else {
		d.set(certificates.FieldNetworkType, "standalone")
	}
	if p.Zones > 0 {
		d.set(certificates.FieldZonesCount, p.Zones)
	}
	if p.Loops > 0 {
		d.set(certificates.FieldLoopsCount, p.Loops)
		if capacity := p.LoopCapacity(); capacity > 0 {
			d.set(certificates.FieldLoopCapacity, capacity)
		}
	}
	if p.Protocol != "" {
		d.set(certificates.FieldProtocol, p.Protocol)
	}
	return d
}

// ResolveSolarPanel suggests module ratings. A module without a wattage is not auto-filled.
func ResolveSolarPanel(p entities.SolarPanel) *Defaults {
	if p.Wattage <= 0 {
		return nil
	}
	d := &Defaults{}
	d.set(certificates.FieldPanelWattage, p.Wattage)
	if p.Efficiency > 0 {
		d.set(certificates.FieldPanelEfficiency, p.Efficiency)
	}
	if p.CellType != "" {
		d.set(certificates.FieldCellType, p.CellType)
	}
	return d
}

// ResolveInverter suggests inverter ratings and the grid connection class.
func ResolveInverter(i entities.SolarInverter) *Defaults {
	if i.RatedPowerKW <= 0 {
		return nil
	}
	d := &Defaults{}
	d.set(certificates.FieldInverterRatedPower, i.RatedPowerKW)
	if i.MPPTCount > 0 {
		d.set(certificates.FieldMPPTCount, i.MPPTCount)
	}
	if i.MaxDCVoltage > 0 {
		d.set(certificates.FieldMaxDCVoltage, i.MaxDCVoltage)
	}
	if i.Phase != "" {
		d.set(certificates.FieldPhaseType, i.Phase)
	}
	d.set(certificates.FieldGridConnectionClass, GridConnectionClass(i))
	d.set(certificates.FieldHybridInverter, i.Hybrid)
	return d
}

// GridConnectionClass returns "G98" when the inverter fits the per-phase limit for
// connect-and-notify, "G99" otherwise.
func GridConnectionClass(i entities.SolarInverter) string {
	if i.RatedPowerKW <= g98LimitPerPhaseKW*float64(i.Phases()) {
		return "G98"
	}
	return "G99"
}
