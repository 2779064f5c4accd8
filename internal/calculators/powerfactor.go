// Package calculators holds the closed-form arithmetic behind the calculator screens:
// power-factor correction, alarm sounder levels and PV yield estimates.
package calculators

import (
	"math"
)

// StandardCapacitorBanksKVAR is the ladder of stock capacitor bank sizes.
var StandardCapacitorBanksKVAR = []float64{5, 10, 15, 20, 25, 30, 40, 50, 60, 75, 100, 125, 150, 200, 250, 300, 400, 500}

const capacitorStepAboveLadder = 50

type PowerFactorInput struct {
	KW        float64
	CurrentPF float64
	TargetPF  float64
	// Optional supply details; line currents are reported only when both are set.
	VoltageV float64
	Phases   int
}

type PowerFactorResult struct {
	KVA               float64 `json:"kva"`
	KVAR              float64 `json:"kvar"`
	TargetKVA         float64 `json:"target_kva"`
	TargetKVAR        float64 `json:"target_kvar"`
	RequiredKVAR      float64 `json:"required_kvar"`
	CapacitorBankKVAR float64 `json:"capacitor_bank_kvar"`

	CurrentBeforeA *float64 `json:"current_before_a,omitempty"`
	CurrentAfterA  *float64 `json:"current_after_a,omitempty"`
	KVAReduction   float64  `json:"kva_reduction"`
}

// PowerFactorCorrection sizes the capacitor bank that raises the load's power factor
// from CurrentPF to TargetPF. It reports no result when kW is not positive, either
// power factor is outside (0, 1], or the target does not exceed the current value.
func PowerFactorCorrection(in PowerFactorInput) (*PowerFactorResult, bool) {
	if !positive(in.KW) || !validPF(in.CurrentPF) || !validPF(in.TargetPF) || in.TargetPF <= in.CurrentPF {
		return nil, false
	}

	kva, kvar := powerTriangle(in.KW, in.CurrentPF)
	targetKVA, targetKVAR := powerTriangle(in.KW, in.TargetPF)
	required := kvar - targetKVAR

	res := &PowerFactorResult{
		KVA:               kva,
		KVAR:              kvar,
		TargetKVA:         targetKVA,
		TargetKVAR:        targetKVAR,
		RequiredKVAR:      required,
		CapacitorBankKVAR: CapacitorBankSize(required),
		KVAReduction:      kva - targetKVA,
	}

	if positive(in.VoltageV) && (in.Phases == 1 || in.Phases == 3) {
		before := lineCurrent(kva, in.VoltageV, in.Phases)
		after := lineCurrent(targetKVA, in.VoltageV, in.Phases)
		res.CurrentBeforeA = &before
		res.CurrentAfterA = &after
	}
	return res, true
}

// CapacitorBankSize returns the smallest standard bank not below requiredKVAR, or the
// next multiple of 50 kVAR above the ladder.
func CapacitorBankSize(requiredKVAR float64) float64 {
	for _, size := range StandardCapacitorBanksKVAR {
		if size >= requiredKVAR {
			return size
		}
	}
	return math.Ceil(requiredKVAR/capacitorStepAboveLadder) * capacitorStepAboveLadder
}

func powerTriangle(kw, pf float64) (kva, kvar float64) {
	kva = kw / pf
	kvar = math.Sqrt(math.Max(kva*kva-kw*kw, 0))
	return kva, kvar
}

func lineCurrent(kva, volts float64, phases int) float64 {
	if phases == 3 {
		return kva * 1000 / (math.Sqrt(3) * volts)
	}
	return kva * 1000 / volts
}

func validPF(pf float64) bool {
	return pf > 0 && pf <= 1 && !math.IsNaN(pf)
}
