package catalog

import (
	"testing"

	"certificate-system/internal/certificates"
	"certificate-system/internal/entities"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFireAlarmPanel(t *testing.T) {
	panels := testFirePanels()

	d := ResolveFireAlarmPanel(panels[0])
	require.NotNil(t, d)
	want := certificates.Patch{
		{Field: certificates.FieldSystemType, Value: "addressable"},
		{Field: certificates.FieldNetworkType, Value: "networked"},
		{Field: certificates.FieldZonesCount, Value: 200},
		{Field: certificates.FieldLoopsCount, Value: 4},
		{Field: certificates.FieldLoopCapacity, Value: 800},
		{Field: certificates.FieldProtocol, Value: "Apollo"},
	}
	if diff := cmp.Diff(want, d.Fields); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}

	conventional := ResolveFireAlarmPanel(panels[3])
	require.NotNil(t, conventional)
	v, ok := conventional.Get(certificates.FieldNetworkType)
	require.True(t, ok)
	assert.Equal(t, "standalone", v)
	_, ok = conventional.Get(certificates.FieldLoopCapacity)
	assert.False(t, ok, "conventional panel has no loop capacity")

	assert.Nil(t, ResolveFireAlarmPanel(panels[4]), "repeater declares neither loops nor zones")
}

func TestResolveSolarPanel(t *testing.T) {
	d := ResolveSolarPanel(entities.SolarPanel{ID: "x", Wattage: 440, Efficiency: 22.5, CellType: "N-type TOPCon"})
	require.NotNil(t, d)
	assert.Equal(t, []string{certificates.FieldPanelWattage, certificates.FieldPanelEfficiency, certificates.FieldCellType}, d.Fields.Fields())

	assert.Nil(t, ResolveSolarPanel(entities.SolarPanel{ID: "y", Efficiency: 21}))
}

func TestResolveInverter(t *testing.T) {
	tests := []struct {
		name  string
		inv   entities.SolarInverter
		class string
	}{
		{name: "single phase within G98", inv: entities.SolarInverter{RatedPowerKW: 3.68, Phase: entities.PhaseSingle}, class: "G98"},
		{name: "single phase above G98", inv: entities.SolarInverter{RatedPowerKW: 5, Phase: entities.PhaseSingle}, class: "G99"},
		{name: "three phase within G98", inv: entities.SolarInverter{RatedPowerKW: 10, Phase: entities.PhaseThree}, class: "G98"},
		{name: "three phase above G98", inv: entities.SolarInverter{RatedPowerKW: 15, Phase: entities.PhaseThree}, class: "G99"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ResolveInverter(tt.inv)
			require.NotNil(t, d)
			v, ok := d.Get(certificates.FieldGridConnectionClass)
			require.True(t, ok)
			assert.Equal(t, tt.class, v)
			kw, _ := d.Get(certificates.FieldInverterRatedPower)
			assert.Equal(t, tt.inv.RatedPowerKW, kw, "rated power keeps native kW")
		})
	}

	assert.Nil(t, ResolveInverter(entities.SolarInverter{ID: "no-rating", MPPTCount: 2}))
}

func TestResolvers_AreDeterministic(t *testing.T) {
	for _, p := range testFirePanels() {
		if diff := cmp.Diff(ResolveFireAlarmPanel(p), ResolveFireAlarmPanel(p)); diff != "" {
			t.Errorf("fire panel %s: %s", p.ID, diff)
		}
	}

	c, err := Load()
	require.NoError(t, err)
	for _, p := range c.SolarPanels.All() {
		if diff := cmp.Diff(ResolveSolarPanel(p), ResolveSolarPanel(p)); diff != "" {
			t.Errorf("solar panel %s: %s", p.ID, diff)
		}
	}
	for _, i := range c.Inverters.All() {
		if diff := cmp.Diff(ResolveInverter(i), ResolveInverter(i)); diff != "" {
			t.Errorf("inverter %s: %s", i.ID, diff)
		}
	}
}

func TestDefaults_GetOnNil(t *testing.T) {
	var d *Defaults
	_, ok := d.Get(certificates.FieldProtocol)
	assert.False(t, ok)
}
