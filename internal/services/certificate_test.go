package services

import (
	"bytes"
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"certificate-system/internal/certificates"
	"certificate-system/internal/dto"
	"certificate-system/internal/entities"
	"certificate-system/internal/events"
	apperrors "certificate-system/pkg/errors"
	"certificate-system/pkg/eventbus"
	"certificate-system/pkg/filestorage"
	"certificate-system/pkg/types"
)

type certFixture struct {
	svc     *CertificateService
	archive filestorage.FileStorageInterface
	repo    *fakeCertificateRepo
	history *fakeClientHistory
	bus     *eventbus.Bus
}

func newCertFixture(t *testing.T) *certFixture {
	t.Helper()
	repo := newFakeCertificateRepo()
	history := &fakeClientHistory{}
	bus := eventbus.New(zap.NewNop())
	archive, err := filestorage.NewLocalFileStorage(t.TempDir())
	require.NoError(t, err)
	svc := NewCertificateService(repo, fakeTxManager{}, loadCatalogs(t), history, bus, archive, zap.NewNop()).(*CertificateService)
	svc.now = func() time.Time { return time.Date(2026, 5, 14, 9, 30, 0, 0, time.UTC) }
	return &certFixture{svc: svc, archive: archive, repo: repo, history: history, bus: bus}
}

func (f *certFixture) create(t *testing.T, ctx context.Context, kind certificates.Kind) uuid.UUID {
	t.Helper()
	created, err := f.svc.Create(ctx, dto.CreateCertificateDTO{
		Kind:         string(kind),
		ClientName:   " A. Patel ",
		SiteAddress:  "4 Mill Lane, Leeds",
		SitePostcode: "ls6  2ab",
	})
	require.NoError(t, err)
	return uuid.MustParse(created.ID)
}

func TestCertificateService_Create(t *testing.T) {
	f := newCertFixture(t)
	ctx := installerCtx("installer-1")

	got, err := f.svc.Create(ctx, dto.CreateCertificateDTO{
		Kind:         string(certificates.KindSolarPV),
		ClientName:   " A. Patel ",
		SiteAddress:  "4 Mill Lane, Leeds",
		SitePostcode: "ls6  2ab",
	})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^PV-20260514-[0-9A-F]{6}$`), got.Reference)
	assert.Equal(t, "A. Patel", got.ClientName)
	assert.Equal(t, "LS6 2AB", got.SitePostcode)
	assert.Equal(t, entities.CertificateStatusDraft, got.Status)
	assert.Equal(t, "installer-1", got.InstallerID)
	assert.IsType(t, &certificates.SolarPVForm{}, got.Form)
	assert.Equal(t, []string{"solar_pv"}, f.history.invalidated)
}

func TestCertificateService_CreateNeedsInstaller(t *testing.T) {
	f := newCertFixture(t)
	_, err := f.svc.Create(context.Background(), dto.CreateCertificateDTO{Kind: "solar_pv"})
	assert.ErrorIs(t, err, apperrors.ErrInstallerIDNotFoundInContext)
}

func TestCertificateService_CreateRejectsUnknownKind(t *testing.T) {
	f := newCertFixture(t)
	_, err := f.svc.Create(installerCtx("installer-1"), dto.CreateCertificateDTO{Kind: "gas_safety"})
	assert.ErrorIs(t, err, apperrors.ErrCertificateKind)
}

func TestCertificateService_OtherInstallersCertificateIsNotFound(t *testing.T) {
	f := newCertFixture(t)
	id := f.create(t, installerCtx("installer-1"), certificates.KindFireAlarm)

	_, err := f.svc.Get(installerCtx("installer-2"), id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, f.svc.Delete(installerCtx("installer-2"), id), apperrors.ErrNotFound)
}

func TestCertificateService_ListScopesToInstaller(t *testing.T) {
	f := newCertFixture(t)
	f.create(t, installerCtx("installer-1"), certificates.KindFireAlarm)
	f.create(t, installerCtx("installer-2"), certificates.KindFireAlarm)

	list, total, err := f.svc.List(installerCtx("installer-1"), types.Filter{
		Filter: map[string]interface{}{"installer_id": "installer-2"},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "installer-1", list[0].InstallerID)
	assert.Equal(t, "installer-1", f.repo.lastFilter.Filter["installer_id"])
}

func TestCertificateService_PatchForm(t *testing.T) {
	f := newCertFixture(t)
	ctx := installerCtx("installer-1")
	id := f.create(t, ctx, certificates.KindFireAlarm)

	got, err := f.svc.PatchForm(ctx, id, dto.PatchFormDTO{Changes: certificates.Patch{
		{Field: "detectors_tested", Value: float64(42)},
		{Field: "inspector_name", Value: "R. Jones"},
	}})
	require.NoError(t, err)
	form := got.Form.(*certificates.FireAlarmForm)
	assert.Equal(t, 42, *form.DetectorsTested)
	assert.Equal(t, "R. Jones", *form.InspectorName)

	_, err = f.svc.PatchForm(ctx, id, dto.PatchFormDTO{Changes: certificates.Patch{
		{Field: "inspector_name", Value: "Someone Else"},
		{Field: "panel_wattage", Value: 400},
	}})
	assert.ErrorIs(t, err, apperrors.ErrUnknownField)

	stored, err := f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "R. Jones", *stored.Form.(*certificates.FireAlarmForm).InspectorName)
}

func TestCertificateService_SelectEquipmentAppliesDefaults(t *testing.T) {
	f := newCertFixture(t)
	ctx := installerCtx("installer-1")
	id := f.create(t, ctx, certificates.KindSolarPV)

	res, err := f.svc.SelectEquipment(ctx, id, dto.SelectEquipmentDTO{Catalog: "inverters", Selection: "solis-s6-eh1p5k"})
	require.NoError(t, err)
	f.bus.Wait()

	assert.Equal(t, "selected", res.State)
	require.NotNil(t, res.Selected)
	assert.Equal(t, "Solis S6 EH1P 5K", res.Selected.Label)

	form := res.Form.(*certificates.SolarPVForm)
	assert.Equal(t, "solis-s6-eh1p5k", *form.InverterID)
	assert.Equal(t, "Solis S6 EH1P 5K", *form.InverterMakeModel)
	assert.Equal(t, 5.0, *form.InverterRatedPower)
	assert.Equal(t, "G99", *form.GridConnectionClass)
	assert.True(t, *form.HybridInverter)

	fields := res.Applied.Fields()
	assert.Equal(t, certificates.FieldInverterID, fields[len(fields)-2])
	assert.Contains(t, fields, certificates.FieldGridConnectionClass)
}

func TestCertificateService_SelectEquipmentByLabel(t *testing.T) {
	f := newCertFixture(t)
	ctx := installerCtx("installer-1")
	id := f.create(t, ctx, certificates.KindFireAlarm)

	res, err := f.svc.SelectEquipment(ctx, id, dto.SelectEquipmentDTO{Catalog: "fire-panels", Selection: "Advanced MxPro 5 (4 loop)"})
	require.NoError(t, err)
	form := res.Form.(*certificates.FireAlarmForm)
	assert.Equal(t, "adv-mxpro5-4l", *form.PanelID)
	assert.Equal(t, 800, *form.LoopCapacity)
}

func TestCertificateService_ReselectingClearsSelectionButKeepsDefaults(t *testing.T) {
	f := newCertFixture(t)
	ctx := installerCtx("installer-1")
	id := f.create(t, ctx, certificates.KindFireAlarm)

	_, err := f.svc.SelectEquipment(ctx, id, dto.SelectEquipmentDTO{Catalog: "fire-panels", Selection: "adv-mxpro5-4l"})
	require.NoError(t, err)

	res, err := f.svc.SelectEquipment(ctx, id, dto.SelectEquipmentDTO{Catalog: "fire-panels", Selection: "adv-mxpro5-4l"})
	require.NoError(t, err)
	assert.Equal(t, "unselected", res.State)
	assert.Nil(t, res.Selected)

	form := res.Form.(*certificates.FireAlarmForm)
	assert.Nil(t, form.PanelID)
	assert.Nil(t, form.PanelMakeModel)
	require.NotNil(t, form.LoopsCount)
	assert.Equal(t, 4, *form.LoopsCount)
}

func TestCertificateService_ReselectingRecordStoredByLabel(t *testing.T) {
	f := newCertFixture(t)
	ctx := installerCtx("installer-1")
	id := f.create(t, ctx, certificates.KindFireAlarm)

	var (
		mu       sync.Mutex
		received []events.SelectionChangedEvent
	)
	f.bus.Subscribe(events.SelectionChangedName, func(ctx context.Context, e eventbus.Event) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, e.(events.SelectionChangedEvent))
		return nil
	})

	_, err := f.svc.PatchForm(ctx, id, dto.PatchFormDTO{Changes: certificates.Patch{
		{Field: certificates.FieldPanelMakeModel, Value: "Advanced MxPro 5 (4 loop)"},
	}})
	require.NoError(t, err)

	res, err := f.svc.SelectEquipment(ctx, id, dto.SelectEquipmentDTO{Catalog: "fire-panels", Selection: "adv-mxpro5-4l"})
	require.NoError(t, err)
	assert.Equal(t, "unselected", res.State)
	assert.Nil(t, res.Selected)
	assert.NotContains(t, res.Applied.Fields(), "loops_count")

	form := res.Form.(*certificates.FireAlarmForm)
	assert.Nil(t, form.PanelID)
	assert.Nil(t, form.PanelMakeModel)
	assert.Nil(t, form.LoopsCount)

	f.bus.Wait()
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	assert.Equal(t, "adv-mxpro5-4l", received[0].PreviousID)
	assert.Equal(t, "unselected", received[0].State)
}

func TestCertificateService_SelectingAnotherPanelOverwrites(t *testing.T) {
	f := newCertFixture(t)
	ctx := installerCtx("installer-1")
	id := f.create(t, ctx, certificates.KindFireAlarm)

	_, err := f.svc.SelectEquipment(ctx, id, dto.SelectEquipmentDTO{Catalog: "fire-panels", Selection: "adv-mxpro5-4l"})
	require.NoError(t, err)
	res, err := f.svc.SelectEquipment(ctx, id, dto.SelectEquipmentDTO{Catalog: "fire-panels", Selection: "adv-mxpro5-1l"})
	require.NoError(t, err)

	form := res.Form.(*certificates.FireAlarmForm)
	assert.Equal(t, "adv-mxpro5-1l", *form.PanelID)
	assert.Equal(t, 1, *form.LoopsCount)
	assert.Equal(t, 200, *form.LoopCapacity)
}

func TestCertificateService_SelectEquipmentUnknownIDClears(t *testing.T) {
	f := newCertFixture(t)
	ctx := installerCtx("installer-1")
	id := f.create(t, ctx, certificates.KindSolarPV)

	res, err := f.svc.SelectEquipment(ctx, id, dto.SelectEquipmentDTO{Catalog: "solar-panels", Selection: "does-not-exist"})
	require.NoError(t, err)
	assert.Equal(t, "unselected", res.State)
	assert.Nil(t, res.Form.(*certificates.SolarPVForm).PanelWattage)
}

func TestCertificateService_SelectEquipmentWrongCatalog(t *testing.T) {
	f := newCertFixture(t)
	ctx := installerCtx("installer-1")
	id := f.create(t, ctx, certificates.KindFireAlarm)

	_, err := f.svc.SelectEquipment(ctx, id, dto.SelectEquipmentDTO{Catalog: "inverters", Selection: "solis-s6-eh1p5k"})
	var invalid *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalid)

	_, err = f.svc.SelectEquipment(ctx, id, dto.SelectEquipmentDTO{Catalog: "boilers"})
	assert.ErrorIs(t, err, apperrors.ErrCatalogKind)
}

func TestCertificateService_IssuedCertificateIsReadOnly(t *testing.T) {
	f := newCertFixture(t)
	ctx := installerCtx("installer-1")
	id := f.create(t, ctx, certificates.KindFireAlarm)

	got, err := f.svc.Update(ctx, id, dto.UpdateCertificateDTO{Status: null.StringFrom(entities.CertificateStatusIssued)})
	require.NoError(t, err)
	require.NotNil(t, got.IssuedAt)
	assert.Equal(t, f.svc.now(), *got.IssuedAt)

	_, err = f.svc.PatchForm(ctx, id, dto.PatchFormDTO{Changes: certificates.Patch{{Field: "defects", Value: "none"}}})
	assert.ErrorIs(t, err, apperrors.ErrCertificateIssued)
	_, err = f.svc.SelectEquipment(ctx, id, dto.SelectEquipmentDTO{Catalog: "fire-panels", Selection: "adv-mxpro5-4l"})
	assert.ErrorIs(t, err, apperrors.ErrCertificateIssued)

	got, err = f.svc.Update(ctx, id, dto.UpdateCertificateDTO{Status: null.StringFrom(entities.CertificateStatusDraft)})
	require.NoError(t, err)
	assert.Nil(t, got.IssuedAt)
}

func TestCertificateService_UpdateOnlyTouchesPresentFields(t *testing.T) {
	f := newCertFixture(t)
	ctx := installerCtx("installer-1")
	id := f.create(t, ctx, certificates.KindFireAlarm)

	got, err := f.svc.Update(ctx, id, dto.UpdateCertificateDTO{
		ClientEmail:  null.StringFrom("patel@example.com"),
		SitePostcode: null.StringFrom("ls1 4dy"),
	})
	require.NoError(t, err)
	assert.Equal(t, "A. Patel", got.ClientName)
	assert.Equal(t, "patel@example.com", *got.ClientEmail)
	assert.Equal(t, "LS1 4DY", got.SitePostcode)
}

func TestCertificateService_UpdateStoresUpdatedAt(t *testing.T) {
	f := newCertFixture(t)
	ctx := installerCtx("installer-1")
	id := f.create(t, ctx, certificates.KindFireAlarm)

	_, err := f.svc.Update(ctx, id, dto.UpdateCertificateDTO{ClientName: null.StringFrom("B. Okafor")})
	require.NoError(t, err)

	stored := f.repo.certs[id]
	require.NotNil(t, stored.UpdatedAt)
	assert.Equal(t, f.svc.now(), *stored.UpdatedAt)
	assert.Equal(t, "B. Okafor", stored.ClientName)
}

func TestCertificateService_Delete(t *testing.T) {
	f := newCertFixture(t)
	ctx := installerCtx("installer-1")
	id := f.create(t, ctx, certificates.KindSolarPV)

	require.NoError(t, f.svc.Delete(ctx, id))
	assert.Equal(t, []string{"solar_pv", "solar_pv"}, f.history.invalidated)

	_, err := f.svc.Get(ctx, id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCertificateService_RenderPDF(t *testing.T) {
	f := newCertFixture(t)
	ctx := installerCtx("installer-1")
	id := f.create(t, ctx, certificates.KindFireAlarm)

	out, name, err := f.svc.RenderPDF(ctx, id)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Regexp(t, `^FA-20260514-[0-9A-F]{6}\.pdf$`, name)
}

func TestCertificateService_IssuingArchivesPDF(t *testing.T) {
	f := newCertFixture(t)
	ctx := installerCtx("installer-1")
	id := f.create(t, ctx, certificates.KindSolarPV)

	got, err := f.svc.Update(ctx, id, dto.UpdateCertificateDTO{Status: null.StringFrom(entities.CertificateStatusIssued)})
	require.NoError(t, err)
	path := "certificates/installer-1/" + got.Reference + ".pdf"

	archived, err := f.archive.Open(path)
	require.NoError(t, err)
	require.NoError(t, archived.Close())

	// the archived copy wins over a fresh render
	_, err = f.archive.Save(bytes.NewReader([]byte("%PDF-archived")), got.Reference+".pdf", "certificates/installer-1")
	require.NoError(t, err)
	out, _, err := f.svc.RenderPDF(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-archived", string(out))

	_, err = f.svc.Update(ctx, id, dto.UpdateCertificateDTO{Status: null.StringFrom(entities.CertificateStatusDraft)})
	require.NoError(t, err)
	_, err = f.archive.Open(path)
	assert.Error(t, err)

	out, _, err = f.svc.RenderPDF(ctx, id)
	require.NoError(t, err)
	assert.NotEqual(t, "%PDF-archived", string(out))
}
