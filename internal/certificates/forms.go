// Package certificates models the in-progress data of each certificate kind as typed
// forms and provides the patch operations that the catalog auto-fill and the API use
// to update them.
package certificates

import (
	"encoding/json"
	"fmt"

	apperrors "certificate-system/pkg/errors"
)

type Kind string

const (
	KindFireAlarm Kind = "fire_alarm"
	KindSolarPV   Kind = "solar_pv"
)

// Kinds lists every certificate kind.
var Kinds = []Kind{KindFireAlarm, KindSolarPV}

func (k Kind) Valid() bool {
	return k == KindFireAlarm || k == KindSolarPV
}

// Form field names shared with the catalog defaults.
const (
	FieldPanelID        = "panel_id"
	FieldPanelMakeModel = "panel_make_model"

	FieldSystemType   = "system_type"
	FieldNetworkType  = "network_type"
	FieldProtocol     = "protocol"
	FieldZonesCount   = "zones_count"
	FieldLoopsCount   = "loops_count"
	FieldLoopCapacity = "loop_capacity"

	FieldPanelWattage    = "panel_wattage"
	FieldPanelEfficiency = "panel_efficiency"
	FieldCellType        = "cell_type"

	FieldInverterID          = "inverter_id"
	FieldInverterMakeModel   = "inverter_make_model"
	FieldInverterRatedPower  = "inverter_rated_power_kw"
	FieldMPPTCount           = "mppt_count"
	FieldMaxDCVoltage        = "max_dc_voltage"
	FieldPhaseType           = "phase_type"
	FieldGridConnectionClass = "grid_connection_class"
	FieldHybridInverter      = "hybrid_inverter"
)

// Form is the typed state of one certificate.
type Form interface {
	Kind() Kind
}

// FireAlarmForm is a BS 5839-1 inspection and servicing certificate.
type FireAlarmForm struct {
	PanelID        *string `json:"panel_id,omitempty"`
	PanelMakeModel *string `json:"panel_make_model,omitempty"`
	SystemType     *string `json:"system_type,omitempty"`
	NetworkType    *string `json:"network_type,omitempty"`
	Protocol       *string `json:"protocol,omitempty"`
	ZonesCount     *int    `json:"zones_count,omitempty"`
	LoopsCount     *int    `json:"loops_count,omitempty"`
	LoopCapacity   *int    `json:"loop_capacity,omitempty"`

	SystemCategory    *string  `json:"system_category,omitempty"` // L1-L5, M, P1, P2
	DetectorsTested   *int     `json:"detectors_tested,omitempty"`
	CallPointsTested  *int     `json:"call_points_tested,omitempty"`
	SoundersTested    *int     `json:"sounders_tested,omitempty"`
	MinSoundLevelDB   *float64 `json:"min_sound_level_db,omitempty"`
	BatteryCapacityAh *float64 `json:"battery_capacity_ah,omitempty"`
	BatteryTestPassed *bool    `json:"battery_test_passed,omitempty"`
	Defects           *string  `json:"defects,omitempty"`
	NextInspectionDue *string  `json:"next_inspection_due,omitempty"`
	InspectorName     *string  `json:"inspector_name,omitempty"`
}

func (*FireAlarmForm) Kind() Kind { return KindFireAlarm }

// SolarPVForm is an MCS / BS EN 62446 installation certificate.
type SolarPVForm struct {
	PanelID         *string  `json:"panel_id,omitempty"`
	PanelMakeModel  *string  `json:"panel_make_model,omitempty"`
	PanelWattage    *int     `json:"panel_wattage,omitempty"`
	PanelEfficiency *float64 `json:"panel_efficiency,omitempty"`
	CellType        *string  `json:"cell_type,omitempty"`
	PanelCount      *int     `json:"panel_count,omitempty"`
	ArrayKWp        *float64 `json:"array_kwp,omitempty"`

	InverterID          *string  `json:"inverter_id,omitempty"`
	InverterMakeModel   *string  `json:"inverter_make_model,omitempty"`
	InverterRatedPower  *float64 `json:"inverter_rated_power_kw,omitempty"`
	MPPTCount           *int     `json:"mppt_count,omitempty"`
	MaxDCVoltage        *int     `json:"max_dc_voltage,omitempty"`
	PhaseType           *string  `json:"phase_type,omitempty"`
	GridConnectionClass *string  `json:"grid_connection_class,omitempty"` // G98 or G99
	HybridInverter      *bool    `json:"hybrid_inverter,omitempty"`

	DNO                     *string  `json:"dno,omitempty"`
	MCSNumber               *string  `json:"mcs_number,omitempty"`
	KkValue                 *float64 `json:"kk_value,omitempty"`
	ShadingFactor           *float64 `json:"shading_factor,omitempty"`
	EstimatedAnnualYieldKWh *float64 `json:"estimated_annual_yield_kwh,omitempty"`
	InstallerName           *string  `json:"installer_name,omitempty"`
}

func (*SolarPVForm) Kind() Kind { return KindSolarPV }

// NewForm returns an empty form of the given kind.
func NewForm(kind Kind) (Form, error) {
	switch kind {
	case KindFireAlarm:
		return &FireAlarmForm{}, nil
	case KindSolarPV:
		return &SolarPVForm{}, nil
	}
	return nil, fmt.Errorf("%w: %q", apperrors.ErrCertificateKind, kind)
}

// DecodeForm parses stored form data. Empty data yields an empty form.
func DecodeForm(kind Kind, raw []byte) (Form, error) {
	form, err := NewForm(kind)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return form, nil
	}
	if err := json.Unmarshal(raw, form); err != nil {
		return nil, fmt.Errorf("decode %s form: %w", kind, err)
	}
	return form, nil
}

func EncodeForm(form Form) ([]byte, error) {
	return json.Marshal(form)
}
