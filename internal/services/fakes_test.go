package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"certificate-system/internal/catalog"
	"certificate-system/internal/certificates"
	"certificate-system/internal/entities"
	"certificate-system/internal/repositories"
	"certificate-system/pkg/contextkeys"
	apperrors "certificate-system/pkg/errors"
	"certificate-system/pkg/types"
)

func loadCatalogs(t *testing.T) *catalog.Catalogs {
	t.Helper()
	cats, err := catalog.Load()
	require.NoError(t, err)
	return cats
}

func installerCtx(id string) context.Context {
	return context.WithValue(context.Background(), contextkeys.InstallerIDKey, id)
}

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeCertificateRepo struct {
	mu          sync.Mutex
	certs       map[uuid.UUID]entities.Certificate
	formWrites  int
	lastFilter  types.Filter
	createError error
}

func newFakeCertificateRepo() *fakeCertificateRepo {
	return &fakeCertificateRepo{certs: make(map[uuid.UUID]entities.Certificate)}
}

func (r *fakeCertificateRepo) GetCertificates(ctx context.Context, filter types.Filter) ([]entities.Certificate, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = filter
	out := make([]entities.Certificate, 0)
	for _, c := range r.certs {
		if c.DeletedAt == nil && c.InstallerID == filter.Filter["installer_id"] {
			out = append(out, c)
		}
	}
	return out, uint64(len(out)), nil
}

func (r *fakeCertificateRepo) FindCertificate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Certificate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.certs[id]
	if !ok || c.DeletedAt != nil {
		return nil, apperrors.ErrNotFound
	}
	c.FormData = append(json.RawMessage(nil), c.FormData...)
	return &c, nil
}

func (r *fakeCertificateRepo) CreateCertificate(ctx context.Context, cert entities.Certificate) error {
	if r.createError != nil {
		return r.createError
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.certs[cert.ID] = cert
	return nil
}

func (r *fakeCertificateRepo) UpdateCertificate(ctx context.Context, tx pgx.Tx, cert entities.Certificate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.certs[cert.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.certs[cert.ID] = cert
	return nil
}

func (r *fakeCertificateRepo) UpdateFormData(ctx context.Context, tx pgx.Tx, id uuid.UUID, formData json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.certs[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	c.FormData = formData
	r.certs[id] = c
	r.formWrites++
	return nil
}

func (r *fakeCertificateRepo) DeleteCertificate(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.certs[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	now := time.Now()
	c.DeletedAt = &now
	r.certs[id] = c
	return nil
}

type fakeClientRepo struct {
	clients []entities.Client
	err     error
	calls   int
}

func (r *fakeClientRepo) RecentClients(ctx context.Context, kind string, limit int) ([]entities.Client, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	if len(r.clients) > limit {
		return r.clients[:limit], nil
	}
	return r.clients, nil
}

type fakeCache struct {
	data   map[string]string
	getErr error
	dels   []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	if c.getErr != nil {
		return "", c.getErr
	}
	v, ok := c.data[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	switch v := value.(type) {
	case []byte:
		c.data[key] = string(v)
	case string:
		c.data[key] = v
	}
	return nil
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
		c.dels = append(c.dels, k)
	}
	return nil
}

type fakeClientHistory struct {
	invalidated []string
}

func (f *fakeClientHistory) Recent(ctx context.Context, kind certificates.Kind) ([]entities.Client, error) {
	return nil, nil
}

func (f *fakeClientHistory) Invalidate(ctx context.Context, kind certificates.Kind) {
	f.invalidated = append(f.invalidated, string(kind))
}
