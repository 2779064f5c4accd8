package calculators

type YieldInput struct {
	PanelCount    int
	PanelWattage  float64
	Kk            float64 // kWh/kWp for the postcode zone, orientation and pitch
	ShadingFactor float64 // 1 for no shading
	InverterKW    float64 // optional
}

type YieldResult struct {
	ArrayKWp  float64  `json:"array_kwp"`
	AnnualKWh float64  `json:"annual_kwh"`
	DCACRatio *float64 `json:"dc_ac_ratio,omitempty"`
}

// EstimateYield applies the MCS estimate: kWp x Kk x shading factor.
func EstimateYield(in YieldInput) (*YieldResult, bool) {
	if in.PanelCount <= 0 || !positive(in.PanelWattage) || !positive(in.Kk) {
		return nil, false
	}
	if !positive(in.ShadingFactor) || in.ShadingFactor > 1 {
		return nil, false
	}
	if in.InverterKW < 0 {
		return nil, false
	}

	kwp := float64(in.PanelCount) * in.PanelWattage / 1000
	res := &YieldResult{
		ArrayKWp:  kwp,
		AnnualKWh: kwp * in.Kk * in.ShadingFactor,
	}
	if in.InverterKW > 0 {
		ratio := kwp / in.InverterKW
		res.DCACRatio = &ratio
	}
	return res, true
}
