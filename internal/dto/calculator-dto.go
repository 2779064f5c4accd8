package dto

import "certificate-system/internal/calculators"

// PowerFactorRequestDTO takes the raw form strings; parsing happens in the calculator.
type PowerFactorRequestDTO struct {
	KW        string `json:"kw" validate:"required"`
	CurrentPF string `json:"current_pf" validate:"required"`
	TargetPF  string `json:"target_pf" validate:"required"`
	VoltageV  string `json:"voltage_v"`
	Phases    string `json:"phases" validate:"omitempty,oneof=1 3"`
}

type SoundLevelRequestDTO struct {
	Readings []calculators.SoundReading `json:"readings" validate:"required,min=1,dive"`
}

type SoundLevelResponseDTO struct {
	Results    []calculators.SoundLevelResult `json:"results"`
	AllPass    bool                           `json:"all_pass"`
	MinimumDB  float64                        `json:"minimum_db"`
	FailedRows int                            `json:"failed_rows"`
}

type PVYieldRequestDTO struct {
	PanelCount    int      `json:"panel_count" validate:"required,gt=0"`
	PanelWattage  float64  `json:"panel_wattage" validate:"omitempty,gt=0"`
	PanelID       string   `json:"panel_id"`
	Kk            float64  `json:"kk" validate:"required,gt=0"`
	ShadingFactor *float64 `json:"shading_factor" validate:"omitempty,gt=0,lte=1"`
	InverterID    string   `json:"inverter_id"`
	InverterKW    float64  `json:"inverter_kw" validate:"omitempty,gt=0"`
}
