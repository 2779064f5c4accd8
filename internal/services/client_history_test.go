package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"certificate-system/internal/certificates"
	"certificate-system/internal/entities"
)

func TestClientHistory_ReadThrough(t *testing.T) {
	repo := &fakeClientRepo{clients: []entities.Client{
		{Name: "A. Patel", SiteAddress: "4 Mill Lane", SitePostcode: "LS6 2AB"},
		{Name: "J. Smith", SiteAddress: "9 High St", SitePostcode: "M1 1AE"},
	}}
	cache := newFakeCache()
	svc := NewClientHistoryService(repo, cache, 20, time.Minute, zap.NewNop())

	first, err := svc.Recent(context.Background(), certificates.KindSolarPV)
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, 1, repo.calls)
	assert.Contains(t, cache.data, "clients:recent:solar_pv")

	second, err := svc.Recent(context.Background(), certificates.KindSolarPV)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.calls)

	svc.Invalidate(context.Background(), certificates.KindSolarPV)
	assert.Equal(t, []string{"clients:recent:solar_pv"}, cache.dels)

	_, err = svc.Recent(context.Background(), certificates.KindSolarPV)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestClientHistory_RespectsLimit(t *testing.T) {
	clients := make([]entities.Client, 25)
	repo := &fakeClientRepo{clients: clients}
	svc := NewClientHistoryService(repo, newFakeCache(), 20, time.Minute, zap.NewNop())

	got, err := svc.Recent(context.Background(), certificates.KindFireAlarm)
	require.NoError(t, err)
	assert.Len(t, got, 20)
}

func TestClientHistory_CacheFailureFallsBackToDatabase(t *testing.T) {
	repo := &fakeClientRepo{clients: []entities.Client{{Name: "A. Patel"}}}
	cache := newFakeCache()
	cache.getErr = errors.New("connection refused")
	svc := NewClientHistoryService(repo, cache, 20, time.Minute, zap.NewNop())

	got, err := svc.Recent(context.Background(), certificates.KindFireAlarm)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestClientHistory_DatabaseErrorSurfaces(t *testing.T) {
	dbErr := errors.New("database is down")
	svc := NewClientHistoryService(&fakeClientRepo{err: dbErr}, newFakeCache(), 20, time.Minute, zap.NewNop())

	_, err := svc.Recent(context.Background(), certificates.KindFireAlarm)
	assert.ErrorIs(t, err, dbErr)
}
