package services

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"certificate-system/internal/catalog"
	"certificate-system/internal/certificates"
	"certificate-system/internal/documents"
	"certificate-system/internal/dto"
	"certificate-system/internal/entities"
	"certificate-system/internal/events"
	"certificate-system/internal/repositories"
	"certificate-system/pkg/customvalidator"
	apperrors "certificate-system/pkg/errors"
	"certificate-system/pkg/eventbus"
	"certificate-system/pkg/filestorage"
	"certificate-system/pkg/metrics"
	"certificate-system/pkg/types"
	"certificate-system/pkg/utils"
)

var referencePrefixes = map[certificates.Kind]string{
	certificates.KindFireAlarm: "FA",
	certificates.KindSolarPV:   "PV",
}

// selectionSlot names the form fields that hold a catalog selection.
type selectionSlot struct {
	certKind   certificates.Kind
	idField    string
	labelField string
}

var selectionSlots = map[catalog.Kind]selectionSlot{
	catalog.KindFirePanel:  {certificates.KindFireAlarm, certificates.FieldPanelID, certificates.FieldPanelMakeModel},
	catalog.KindSolarPanel: {certificates.KindSolarPV, certificates.FieldPanelID, certificates.FieldPanelMakeModel},
	catalog.KindInverter:   {certificates.KindSolarPV, certificates.FieldInverterID, certificates.FieldInverterMakeModel},
}

type CertificateServiceInterface interface {
	Create(ctx context.Context, req dto.CreateCertificateDTO) (*dto.CertificateDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CertificateDTO, error)
	List(ctx context.Context, filter types.Filter) ([]dto.CertificateDTO, uint64, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCertificateDTO) (*dto.CertificateDTO, error)
	PatchForm(ctx context.Context, id uuid.UUID, req dto.PatchFormDTO) (*dto.CertificateDTO, error)
	SelectEquipment(ctx context.Context, id uuid.UUID, req dto.SelectEquipmentDTO) (*dto.SelectionResultDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	RenderPDF(ctx context.Context, id uuid.UUID) ([]byte, string, error)
}

type CertificateService struct {
	repo          repositories.CertificateRepositoryInterface
	txManager     repositories.TxManagerInterface
	catalogs      *catalog.Catalogs
	clientHistory ClientHistoryServiceInterface
	bus           *eventbus.Bus
	archive       filestorage.FileStorageInterface
	logger        *zap.Logger
	now           func() time.Time
}

func NewCertificateService(
	repo repositories.CertificateRepositoryInterface,
	txManager repositories.TxManagerInterface,
	catalogs *catalog.Catalogs,
	clientHistory ClientHistoryServiceInterface,
	bus *eventbus.Bus,
	archive filestorage.FileStorageInterface,
	logger *zap.Logger,
) CertificateServiceInterface {
	return &CertificateService{
		repo:          repo,
		txManager:     txManager,
		catalogs:      catalogs,
		clientHistory: clientHistory,
		bus:           bus,
		archive:       archive,
		logger:        logger,
		now:           time.Now,
	}
}

func newReference(kind certificates.Kind, id uuid.UUID, at time.Time) string {
	return fmt.Sprintf("%s-%s-%s", referencePrefixes[kind], at.Format("20060102"), strings.ToUpper(hex.EncodeToString(id[:3])))
}

func toCertificateDTO(cert *entities.Certificate, form certificates.Form) *dto.CertificateDTO {
	return &dto.CertificateDTO{
		ID:           cert.ID.String(),
		Kind:         cert.Kind,
		Reference:    cert.Reference,
		Status:       cert.Status,
		ClientName:   cert.ClientName,
		ClientEmail:  cert.ClientEmail,
		ClientPhone:  cert.ClientPhone,
		SiteAddress:  cert.SiteAddress,
		SitePostcode: cert.SitePostcode,
		InstallerID:  cert.InstallerID,
		Form:         form,
		IssuedAt:     cert.IssuedAt,
		CreatedAt:    cert.CreatedAt,
		UpdatedAt:    cert.UpdatedAt,
	}
}

// load fetches a certificate owned by the calling installer and decodes its form.
// Certificates of other installers are reported as not found.
func (s *CertificateService) load(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Certificate, certificates.Form, error) {
	installerID, err := utils.GetInstallerIDFromCtx(ctx)
	if err != nil {
		return nil, nil, err
	}
	cert, err := s.repo.FindCertificate(ctx, tx, id)
	if err != nil {
		return nil, nil, err
	}
	if cert.InstallerID != installerID {
		return nil, nil, apperrors.ErrNotFound
	}
	form, err := certificates.DecodeForm(certificates.Kind(cert.Kind), cert.FormData)
	if err != nil {
		return nil, nil, err
	}
	return cert, form, nil
}

func (s *CertificateService) Create(ctx context.Context, req dto.CreateCertificateDTO) (*dto.CertificateDTO, error) {
	installerID, err := utils.GetInstallerIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	kind := certificates.Kind(req.Kind)
	form, err := certificates.NewForm(kind)
	if err != nil {
		return nil, err
	}
	raw, err := certificates.EncodeForm(form)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	id := uuid.New()
	cert := entities.Certificate{
		ID:           id,
		Kind:         string(kind),
		Reference:    newReference(kind, id, now),
		Status:       entities.CertificateStatusDraft,
		ClientName:   strings.TrimSpace(req.ClientName),
		ClientEmail:  req.ClientEmail,
		ClientPhone:  req.ClientPhone,
		SiteAddress:  strings.TrimSpace(req.SiteAddress),
		SitePostcode: customvalidator.NormalizePostcode(req.SitePostcode),
		InstallerID:  installerID,
		FormData:     raw,
	}
	cert.CreatedAt = &now
	cert.UpdatedAt = &now

	if err := s.repo.CreateCertificate(ctx, cert); err != nil {
		return nil, err
	}
	s.clientHistory.Invalidate(ctx, kind)
	s.bus.Publish(ctx, events.CertificateCreatedEvent{
		CertificateID: id,
		Kind:          cert.Kind,
		Reference:     cert.Reference,
		InstallerID:   installerID,
	})
	return toCertificateDTO(&cert, form), nil
}

func (s *CertificateService) Get(ctx context.Context, id uuid.UUID) (*dto.CertificateDTO, error) {
	cert, form, err := s.load(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	return toCertificateDTO(cert, form), nil
}

// List returns the caller's certificates. Any installer_id filter in the request is replaced.
func (s *CertificateService) List(ctx context.Context, filter types.Filter) ([]dto.CertificateDTO, uint64, error) {
	installerID, err := utils.GetInstallerIDFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	if filter.Filter == nil {
		filter.Filter = make(map[string]interface{})
	}
	filter.Filter["installer_id"] = installerID

	certs, total, err := s.repo.GetCertificates(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.CertificateDTO, 0, len(certs))
	for i := range certs {
		form, err := certificates.DecodeForm(certificates.Kind(certs[i].Kind), certs[i].FormData)
		if err != nil {
			s.logger.Error("stored form is unreadable", zap.Stringer("certificate_id", certs[i].ID), zap.Error(err))
			return nil, 0, err
		}
		out = append(out, *toCertificateDTO(&certs[i], form))
	}
	return out, total, nil
}

// Update changes the certificate header. Issuing a certificate archives its PDF;
// returning it to draft discards the archived copy.
func (s *CertificateService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCertificateDTO) (*dto.CertificateDTO, error) {
	var (
		result     *dto.CertificateDTO
		saved      *entities.Certificate
		savedForm  certificates.Form
		transition string
	)
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		cert, form, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}

		if req.ClientName.Valid {
			cert.ClientName = strings.TrimSpace(req.ClientName.String)
		}
		if req.ClientEmail.Valid {
			cert.ClientEmail = utils.ToPtr(req.ClientEmail.String)
		}
		if req.ClientPhone.Valid {
			cert.ClientPhone = utils.ToPtr(req.ClientPhone.String)
		}
		if req.SiteAddress.Valid {
			cert.SiteAddress = strings.TrimSpace(req.SiteAddress.String)
		}
		if req.SitePostcode.Valid {
			cert.SitePostcode = customvalidator.NormalizePostcode(req.SitePostcode.String)
		}
		if req.Status.Valid && req.Status.String != cert.Status {
			cert.Status = req.Status.String
			transition = cert.Status
			if cert.Status == entities.CertificateStatusIssued {
				cert.IssuedAt = utils.ToPtr(s.now().UTC())
			} else {
				cert.IssuedAt = nil
			}
		}

		now := s.now().UTC()
		cert.UpdatedAt = &now
		if err := s.repo.UpdateCertificate(ctx, tx, *cert); err != nil {
			return err
		}
		saved, savedForm = cert, form
		result = toCertificateDTO(cert, form)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.clientHistory.Invalidate(ctx, certificates.Kind(saved.Kind))

	switch transition {
	case entities.CertificateStatusIssued:
		s.archivePDF(saved, savedForm)
		s.bus.Publish(ctx, events.CertificateIssuedEvent{
			CertificateID: id,
			Kind:          saved.Kind,
			Reference:     saved.Reference,
			InstallerID:   saved.InstallerID,
		})
	case entities.CertificateStatusDraft:
		if err := s.archive.Delete(archivePath(saved)); err != nil {
			s.logger.Warn("failed to discard archived certificate", zap.Stringer("certificate_id", id), zap.Error(err))
		}
	}
	return result, nil
}

func archivePrefix(cert *entities.Certificate) string {
	return "certificates/" + cert.InstallerID
}

func archivePath(cert *entities.Certificate) string {
	return archivePrefix(cert) + "/" + cert.Reference + ".pdf"
}

// archivePDF stores the certificate as issued. A failure is logged and the live
// render is served instead.
func (s *CertificateService) archivePDF(cert *entities.Certificate, form certificates.Form) {
	out, err := s.render(cert, form)
	if err != nil {
		return
	}
	if _, err := s.archive.Save(bytes.NewReader(out), cert.Reference+".pdf", archivePrefix(cert)); err != nil {
		s.logger.Error("failed to archive issued certificate", zap.Stringer("certificate_id", cert.ID), zap.Error(err))
	}
}

// PatchForm applies field changes to a draft certificate. Unknown fields reject the whole patch.
func (s *CertificateService) PatchForm(ctx context.Context, id uuid.UUID, req dto.PatchFormDTO) (*dto.CertificateDTO, error) {
	var result *dto.CertificateDTO
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		cert, form, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if cert.Status == entities.CertificateStatusIssued {
			return apperrors.ErrCertificateIssued
		}
		if err := certificates.ApplyPatch(form, req.Changes); err != nil {
			return err
		}
		raw, err := certificates.EncodeForm(form)
		if err != nil {
			return err
		}
		if err := s.repo.UpdateFormData(ctx, tx, id, raw); err != nil {
			return err
		}
		cert.FormData = raw
		result = toCertificateDTO(cert, form)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type selectionOutcome struct {
	state      catalog.SelectionState
	selected   *dto.CatalogItemDTO
	recordID   string
	previousID string
}

// runSelection replays the stored selection into a controller, applies the new
// selection event and writes the selection fields after any defaults.
func runSelection[T catalog.Record](
	store *catalog.Store[T],
	resolve catalog.Resolver[T],
	emitter *certificates.FormEmitter,
	slot selectionSlot,
	selection string,
) selectionOutcome {
	stored := certificates.StringValue(emitter.Form, slot.idField)
	if stored == "" {
		stored = certificates.StringValue(emitter.Form, slot.labelField)
	}

	var change catalog.SelectionChange[T]
	ctrl := catalog.NewController(store, resolve, emitter,
		catalog.WithInitialSelection[T](stored),
		catalog.WithOnChange(func(c catalog.SelectionChange[T]) { change = c }),
	)

	rec, ok := ctrl.Select(selection)
	out := selectionOutcome{state: ctrl.State()}
	if change.HadPrevious {
		out.previousID = change.Previous.RecordID()
	}
	if !ok {
		emitter.Emit(certificates.Patch{
			{Field: slot.idField, Value: nil},
			{Field: slot.labelField, Value: nil},
		})
		return out
	}

	item := toCatalogItem(rec)
	out.selected = &item
	out.recordID = rec.RecordID()
	emitter.Emit(certificates.Patch{
		{Field: slot.idField, Value: rec.RecordID()},
		{Field: slot.labelField, Value: catalog.Label(rec)},
	})
	return out
}

func (s *CertificateService) SelectEquipment(ctx context.Context, id uuid.UUID, req dto.SelectEquipmentDTO) (*dto.SelectionResultDTO, error) {
	catKind := catalog.Kind(req.Catalog)
	slot, ok := selectionSlots[catKind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrCatalogKind, req.Catalog)
	}

	var (
		result *dto.SelectionResultDTO
		event  events.SelectionChangedEvent
	)
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		cert, form, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if cert.Kind != string(slot.certKind) {
			return apperrors.NewInvalidInputError("catalog %s does not apply to %s certificates", catKind, cert.Kind)
		}
		if cert.Status == entities.CertificateStatusIssued {
			return apperrors.ErrCertificateIssued
		}

		emitter := certificates.NewFormEmitter(form)
		var outcome selectionOutcome
		switch catKind {
		case catalog.KindFirePanel:
			outcome = runSelection(s.catalogs.FirePanels, catalog.ResolveFireAlarmPanel, emitter, slot, req.Selection)
		case catalog.KindSolarPanel:
			outcome = runSelection(s.catalogs.SolarPanels, catalog.ResolveSolarPanel, emitter, slot, req.Selection)
		case catalog.KindInverter:
			outcome = runSelection(s.catalogs.Inverters, catalog.ResolveInverter, emitter, slot, req.Selection)
		}
		if emitter.Err != nil {
			return emitter.Err
		}

		raw, err := certificates.EncodeForm(form)
		if err != nil {
			return err
		}
		if err := s.repo.UpdateFormData(ctx, tx, id, raw); err != nil {
			return err
		}

		result = &dto.SelectionResultDTO{
			Catalog:  string(catKind),
			State:    outcome.state.String(),
			Selected: outcome.selected,
			Applied:  emitter.Applied,
			Form:     form,
		}
		event = events.SelectionChangedEvent{
			CertificateID: id,
			InstallerID:   cert.InstallerID,
			Catalog:       string(catKind),
			State:         outcome.state.String(),
			RecordID:      outcome.recordID,
			PreviousID:    outcome.previousID,
			AppliedFields: emitter.Applied.Fields(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.bus.Publish(ctx, event)
	return result, nil
}

func (s *CertificateService) Delete(ctx context.Context, id uuid.UUID) error {
	cert, _, err := s.load(ctx, nil, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteCertificate(ctx, id); err != nil {
		return err
	}
	s.clientHistory.Invalidate(ctx, certificates.Kind(cert.Kind))
	s.bus.Publish(ctx, events.CertificateDeletedEvent{
		CertificateID: id,
		Kind:          cert.Kind,
		InstallerID:   cert.InstallerID,
	})
	return nil
}

func (s *CertificateService) render(cert *entities.Certificate, form certificates.Form) ([]byte, error) {
	start := time.Now()
	out, err := documents.BuildCertificatePDF(cert, form)
	if err != nil {
		metrics.ObserveRender("pdf", metrics.ResultError, time.Since(start))
		s.logger.Error("certificate render failed", zap.Stringer("certificate_id", cert.ID), zap.Error(err))
		return nil, err
	}
	metrics.ObserveRender("pdf", metrics.ResultSuccess, time.Since(start))
	return out, nil
}

// RenderPDF returns the printable certificate and its file name. Issued certificates
// are served from the archive when a copy exists.
func (s *CertificateService) RenderPDF(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	cert, form, err := s.load(ctx, nil, id)
	if err != nil {
		return nil, "", err
	}
	fileName := cert.Reference + ".pdf"

	if cert.Status == entities.CertificateStatusIssued {
		out, err := s.readArchive(cert)
		if err == nil {
			return out, fileName, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("archived certificate unreadable, rendering again", zap.Stringer("certificate_id", id), zap.Error(err))
		}
	}

	out, err := s.render(cert, form)
	if err != nil {
		return nil, "", err
	}
	return out, fileName, nil
}

func (s *CertificateService) readArchive(cert *entities.Certificate) ([]byte, error) {
	f, err := s.archive.Open(archivePath(cert))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
