package listeners

import (
	"context"
	"fmt"

	"certificate-system/internal/events"
	"certificate-system/pkg/eventbus"
	"certificate-system/pkg/websocket"
)

// LiveUpdateListener forwards certificate events to the installer's other open devices.
type LiveUpdateListener struct {
	hub *websocket.Hub
}

func NewLiveUpdateListener(hub *websocket.Hub) *LiveUpdateListener {
	return &LiveUpdateListener{hub: hub}
}

func (l *LiveUpdateListener) Register(bus *eventbus.Bus) {
	for _, name := range []string{
		events.SelectionChangedName,
		events.CertificateCreatedName,
		events.CertificateDeletedName,
		events.CertificateIssuedName,
	} {
		bus.Subscribe(name, l.forward)
	}
}

func (l *LiveUpdateListener) forward(ctx context.Context, event eventbus.Event) error {
	var (
		installerID string
		payload     websocket.CertificatePayload
	)
	switch e := event.(type) {
	case events.SelectionChangedEvent:
		installerID = e.InstallerID
		payload = websocket.CertificatePayload{
			CertificateID: e.CertificateID.String(),
			Catalog:       e.Catalog,
			State:         e.State,
			RecordID:      e.RecordID,
			ChangedFields: e.AppliedFields,
		}
	case events.CertificateCreatedEvent:
		installerID = e.InstallerID
		payload = websocket.CertificatePayload{CertificateID: e.CertificateID.String(), Reference: e.Reference}
	case events.CertificateDeletedEvent:
		installerID = e.InstallerID
		payload = websocket.CertificatePayload{CertificateID: e.CertificateID.String()}
	case events.CertificateIssuedEvent:
		installerID = e.InstallerID
		payload = websocket.CertificatePayload{CertificateID: e.CertificateID.String(), Reference: e.Reference}
	default:
		return fmt.Errorf("unexpected event type %T", event)
	}
	if l.hub.Connections(installerID) == 0 {
		return nil
	}
	return l.hub.SendToInstaller(installerID, event.Name(), payload)
}
