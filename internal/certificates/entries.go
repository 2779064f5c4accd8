package certificates

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Entry is one filled-in form field formatted for display.
type Entry struct {
	Field string
	Label string
	Value string
}

var titles = map[Kind]string{
	KindFireAlarm: "Fire Detection and Fire Alarm System Inspection Certificate (BS 5839-1)",
	KindSolarPV:   "Solar PV Installation Certificate (MCS / BS EN 62446-1)",
}

// Title is the printed heading for a certificate kind.
func Title(kind Kind) string {
	if t, ok := titles[kind]; ok {
		return t
	}
	return string(kind)
}

// labelOverrides covers abbreviations the generic label builder would mangle.
var labelOverrides = map[string]string{
	"panel_id":                   "Panel catalog ID",
	"inverter_id":                "Inverter catalog ID",
	"array_kwp":                  "Array size (kWp)",
	"inverter_rated_power_kw":    "Inverter rated power (kW)",
	"mppt_count":                 "MPPT inputs",
	"max_dc_voltage":             "Max DC voltage (V)",
	"min_sound_level_db":         "Minimum sound level (dB(A))",
	"battery_capacity_ah":        "Battery capacity (Ah)",
	"dno":                        "DNO",
	"mcs_number":                 "MCS number",
	"kk_value":                   "Kk value",
	"estimated_annual_yield_kwh": "Estimated annual yield (kWh)",
	"panel_wattage":              "Panel wattage (Wp)",
	"panel_efficiency":           "Panel efficiency (%)",
}

// Entries lists the set fields of form in declaration order.
func Entries(form Form) []Entry {
	v := reflect.ValueOf(form)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	t := v.Type()

	out := make([]Entry, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		f := v.Field(i)
		if f.Kind() == reflect.Pointer {
			if f.IsNil() {
				continue
			}
			f = f.Elem()
		}
		out = append(out, Entry{Field: name, Label: fieldLabel(name), Value: formatValue(f)})
	}
	return out
}

func fieldLabel(field string) string {
	if l, ok := labelOverrides[field]; ok {
		return l
	}
	s := strings.ReplaceAll(field, "_", " ")
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatValue(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return "Yes"
		}
		return "No"
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.String:
		return v.String()
	}
	return fmt.Sprint(v.Interface())
}
