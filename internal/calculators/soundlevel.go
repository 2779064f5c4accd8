package calculators

import (
	"fmt"
	"math"
)

type SoundArea string

const (
	AreaGeneral        SoundArea = "general"
	AreaSmallEnclosure SoundArea = "small_enclosure" // rooms up to 60 m2
	AreaStairway       SoundArea = "stairway"
	AreaBedhead        SoundArea = "bedhead"
)

// Limits from BS 5839-1 clause 16.
const (
	minGeneralDB        = 65.0
	minSmallEnclosureDB = 60.0
	minBedheadDB        = 75.0
	backgroundMarginDB  = 5.0
	backgroundTriggerDB = 60.0
	maxSoundLevelDB     = 120.0
)

type SoundReading struct {
	Location     string    `json:"location"`
	Area         SoundArea `json:"area"`
	MeasuredDB   float64   `json:"measured_db"`
	BackgroundDB float64   `json:"background_db,omitempty"`
}

type SoundLevelResult struct {
	Location   string  `json:"location"`
	RequiredDB float64 `json:"required_db"`
	MeasuredDB float64 `json:"measured_db"`
	Pass       bool    `json:"pass"`
	Reason     string  `json:"reason,omitempty"`
}

// RequiredSoundLevel is the minimum sounder level for an area, raised to background + 5 dB
// where persistent background noise exceeds 60 dB(A).
func RequiredSoundLevel(area SoundArea, backgroundDB float64) (float64, bool) {
	var required float64
	switch area {
	case AreaGeneral, "":
		required = minGeneralDB
	case AreaSmallEnclosure, AreaStairway:
		required = minSmallEnclosureDB
	case AreaBedhead:
		required = minBedheadDB
	default:
		return 0, false
	}
	if backgroundDB > backgroundTriggerDB && backgroundDB+backgroundMarginDB > required {
		required = backgroundDB + backgroundMarginDB
	}
	return required, true
}

// CheckSoundLevels validates every reading. A reading with a missing or non-finite value
// or an unknown area makes the whole check report no result.
func CheckSoundLevels(readings []SoundReading) ([]SoundLevelResult, bool) {
	if len(readings) == 0 {
		return nil, false
	}
	results := make([]SoundLevelResult, 0, len(readings))
	for _, r := range readings {
		if !positive(r.MeasuredDB) || !nonNegative(r.BackgroundDB) {
			return nil, false
		}
		required, ok := RequiredSoundLevel(r.Area, r.BackgroundDB)
		if !ok {
			return nil, false
		}

		res := SoundLevelResult{Location: r.Location, RequiredDB: required, MeasuredDB: r.MeasuredDB, Pass: true}
		switch {
		case r.MeasuredDB > maxSoundLevelDB:
			res.Pass = false
			res.Reason = fmt.Sprintf("exceeds %.0f dB(A) maximum", maxSoundLevelDB)
		case r.MeasuredDB < required:
			res.Pass = false
			res.Reason = fmt.Sprintf("below required %.1f dB(A)", required)
		}
		results = append(results, res)
	}
	return results, true
}

func nonNegative(f float64) bool {
	return f >= 0 && !math.IsInf(f, 0)
}

// MinimumMeasured returns the quietest reading, used for the form's minimum sound level.
func MinimumMeasured(readings []SoundReading) float64 {
	if len(readings) == 0 {
		return 0
	}
	lowest := readings[0].MeasuredDB
	for _, r := range readings[1:] {
		lowest = min(lowest, r.MeasuredDB)
	}
	return lowest
}
