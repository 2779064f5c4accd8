package documents

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"certificate-system/internal/catalog"
	"certificate-system/internal/entities"
)

// Column describes one exported catalog attribute.
type Column[T catalog.Record] struct {
	Header string
	Value  func(T) any
}

var FirePanelColumns = []Column[entities.FireAlarmPanel]{
	{"ID", func(p entities.FireAlarmPanel) any { return p.ID }},
	{"Manufacturer", func(p entities.FireAlarmPanel) any { return p.Manufacturer }},
	{"Model", func(p entities.FireAlarmPanel) any { return p.Model }},
	{"System type", func(p entities.FireAlarmPanel) any { return p.SystemType }},
	{"Protocol", func(p entities.FireAlarmPanel) any { return p.Protocol }},
	{"Loops", func(p entities.FireAlarmPanel) any { return p.Loops }},
	{"Devices per loop", func(p entities.FireAlarmPanel) any { return p.DevicesPerLoop }},
	{"Zones", func(p entities.FireAlarmPanel) any { return p.Zones }},
	{"Networkable", func(p entities.FireAlarmPanel) any { return p.Networkable }},
	{"Introduced", func(p entities.FireAlarmPanel) any { return p.YearIntroduced }},
}

var SolarPanelColumns = []Column[entities.SolarPanel]{
	{"ID", func(p entities.SolarPanel) any { return p.ID }},
	{"Manufacturer", func(p entities.SolarPanel) any { return p.Manufacturer }},
	{"Model", func(p entities.SolarPanel) any { return p.Model }},
	{"Wattage (Wp)", func(p entities.SolarPanel) any { return p.Wattage }},
	{"Efficiency (%)", func(p entities.SolarPanel) any { return p.Efficiency }},
	{"Cell type", func(p entities.SolarPanel) any { return p.CellType }},
	{"Voc (V)", func(p entities.SolarPanel) any { return p.Voc }},
	{"Isc (A)", func(p entities.SolarPanel) any { return p.Isc }},
	{"Introduced", func(p entities.SolarPanel) any { return p.YearIntroduced }},
}

var InverterColumns = []Column[entities.SolarInverter]{
	{"ID", func(i entities.SolarInverter) any { return i.ID }},
	{"Manufacturer", func(i entities.SolarInverter) any { return i.Manufacturer }},
	{"Model", func(i entities.SolarInverter) any { return i.Model }},
	{"Rated power (kW)", func(i entities.SolarInverter) any { return i.RatedPowerKW }},
	{"MPPT", func(i entities.SolarInverter) any { return i.MPPTCount }},
	{"Max DC (V)", func(i entities.SolarInverter) any { return i.MaxDCVoltage }},
	{"Phase", func(i entities.SolarInverter) any { return i.Phase }},
	{"Hybrid", func(i entities.SolarInverter) any { return i.Hybrid }},
	{"Grid connection", func(i entities.SolarInverter) any { return catalog.GridConnectionClass(i) }},
	{"Introduced", func(i entities.SolarInverter) any { return i.YearIntroduced }},
}

const manufacturersSheet = "manufacturers"

// BuildCatalogXLSX writes records to a sheet named sheet in catalog order and adds a
// per-manufacturer count sheet.
func BuildCatalogXLSX[T catalog.Record](sheet string, records []T, columns []Column[T]) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	for c, col := range columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return nil, err
		}
		_ = f.SetCellValue(sheet, cell, col.Header)
	}
	for r, rec := range records {
		for c, col := range columns {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			_ = f.SetCellValue(sheet, cell, col.Value(rec))
		}
	}
	if len(columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(columns), 1)
		_ = f.AutoFilter(sheet, "A1:"+last, nil)
	}

	if _, err := f.NewSheet(manufacturersSheet); err != nil {
		return nil, err
	}
	_ = f.SetCellValue(manufacturersSheet, "A1", "Manufacturer")
	_ = f.SetCellValue(manufacturersSheet, "B1", "Models")
	grouping := catalog.Group(records)
	for i, g := range grouping.Groups {
		row := i + 2
		_ = f.SetCellValue(manufacturersSheet, fmt.Sprintf("A%d", row), g.Manufacturer)
		_ = f.SetCellValue(manufacturersSheet, fmt.Sprintf("B%d", row), len(g.Records))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
