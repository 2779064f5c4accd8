package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"certificate-system/internal/events"
	"certificate-system/pkg/eventbus"
	"certificate-system/pkg/metrics"
)

// AuditListener writes certificate lifecycle and selection events to the audit log and
// counts selections.
type AuditListener struct {
	logger *zap.Logger
}

func NewAuditListener(logger *zap.Logger) *AuditListener {
	return &AuditListener{logger: logger.Named("audit")}
}

func (l *AuditListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.SelectionChangedName, l.onSelectionChanged)
	bus.Subscribe(events.CertificateCreatedName, l.onCertificateCreated)
	bus.Subscribe(events.CertificateDeletedName, l.onCertificateDeleted)
	bus.Subscribe(events.CertificateIssuedName, l.onCertificateIssued)
}

func (l *AuditListener) onSelectionChanged(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.SelectionChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	metrics.IncCatalogSelection(e.Catalog, e.State)
	l.logger.Info("equipment selection changed",
		zap.Stringer("certificate_id", e.CertificateID),
		zap.String("installer_id", e.InstallerID),
		zap.String("catalog", e.Catalog),
		zap.String("state", e.State),
		zap.String("record_id", e.RecordID),
		zap.String("previous_id", e.PreviousID),
		zap.Strings("applied_fields", e.AppliedFields),
	)
	return nil
}

func (l *AuditListener) onCertificateCreated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.CertificateCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	l.logger.Info("certificate created",
		zap.Stringer("certificate_id", e.CertificateID),
		zap.String("kind", e.Kind),
		zap.String("reference", e.Reference),
		zap.String("installer_id", e.InstallerID),
	)
	return nil
}

func (l *AuditListener) onCertificateDeleted(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.CertificateDeletedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	l.logger.Info("certificate deleted",
		zap.Stringer("certificate_id", e.CertificateID),
		zap.String("kind", e.Kind),
		zap.String("installer_id", e.InstallerID),
	)
	return nil
}

func (l *AuditListener) onCertificateIssued(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.CertificateIssuedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	l.logger.Info("certificate issued",
		zap.Stringer("certificate_id", e.CertificateID),
		zap.String("reference", e.Reference),
		zap.String("installer_id", e.InstallerID),
	)
	return nil
}
