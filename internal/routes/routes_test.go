package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"certificate-system/internal/catalog"
	"certificate-system/internal/certificates"
	"certificate-system/internal/dto"
	"certificate-system/internal/entities"
	"certificate-system/internal/services"
	"certificate-system/pkg/contextkeys"
	apperrors "certificate-system/pkg/errors"
	"certificate-system/pkg/metrics"
	"certificate-system/pkg/service"
	"certificate-system/pkg/types"
	"certificate-system/pkg/utils"
	"certificate-system/pkg/validation"
	"certificate-system/pkg/websocket"
)

const testAPIKey = "installer-api-key"

type stubCertificateService struct {
	created dto.CreateCertificateDTO
}

func (s *stubCertificateService) Create(ctx context.Context, req dto.CreateCertificateDTO) (*dto.CertificateDTO, error) {
	s.created = req
	installerID, _ := ctx.Value(contextkeys.InstallerIDKey).(string)
	return &dto.CertificateDTO{ID: uuid.NewString(), Kind: req.Kind, Reference: "FA-20260514-ABC123", InstallerID: installerID}, nil
}

func (s *stubCertificateService) Get(ctx context.Context, id uuid.UUID) (*dto.CertificateDTO, error) {
	return nil, apperrors.ErrNotFound
}

func (s *stubCertificateService) List(ctx context.Context, filter types.Filter) ([]dto.CertificateDTO, uint64, error) {
	return nil, 0, nil
}

func (s *stubCertificateService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCertificateDTO) (*dto.CertificateDTO, error) {
	return nil, apperrors.ErrNotFound
}

func (s *stubCertificateService) PatchForm(ctx context.Context, id uuid.UUID, req dto.PatchFormDTO) (*dto.CertificateDTO, error) {
	return nil, apperrors.ErrCertificateIssued
}

func (s *stubCertificateService) SelectEquipment(ctx context.Context, id uuid.UUID, req dto.SelectEquipmentDTO) (*dto.SelectionResultDTO, error) {
	return nil, apperrors.ErrNotFound
}

func (s *stubCertificateService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (s *stubCertificateService) RenderPDF(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	return []byte("%PDF-1.3 stub"), "FA-20260514-ABC123.pdf", nil
}

type stubClientHistory struct{}

func (stubClientHistory) Recent(ctx context.Context, kind certificates.Kind) ([]entities.Client, error) {
	return []entities.Client{{Name: "A. Patel", SitePostcode: "LS6 2AB"}}, nil
}

func (stubClientHistory) Invalidate(ctx context.Context, kind certificates.Kind) {}

type RouterTestSuite struct {
	suite.Suite
	Echo         *echo.Echo
	Certificates *stubCertificateService
	Token        string
}

func (s *RouterTestSuite) SetupSuite() {
	metrics.Init()
	logger := zap.NewNop()

	cats, err := catalog.Load()
	s.Require().NoError(err)

	v, err := validation.New(ValidationEnums())
	s.Require().NoError(err)

	hash, err := bcrypt.GenerateFromPassword([]byte(testAPIKey), bcrypt.MinCost)
	s.Require().NoError(err)
	jwtSvc := service.NewJWTService("test-secret", "certificate-system", time.Hour, logger)

	e := echo.New()
	e.Validator = utils.NewValidator(v)

	catalogService := services.NewCatalogService(cats, logger)
	s.Certificates = &stubCertificateService{}
	svcs := Services{
		Auth:          services.NewAuthService(jwtSvc, string(hash), logger),
		Catalog:       catalogService,
		Calculator:    services.NewCalculatorService(cats, logger),
		Certificate:   s.Certificates,
		ClientHistory: stubClientHistory{},
	}
	loggers := &Loggers{Main: logger, Auth: logger, Certificate: logger}
	RegisterRoutes(e, svcs, jwtSvc, websocket.NewHub(logger), nil, loggers)
	s.Echo = e

	rec := s.do(http.MethodPost, "/api/auth/token", map[string]string{"installer_id": "installer-1", "api_key": testAPIKey}, false)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var res struct {
		Body dto.TokenResponseDTO `json:"body"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &res))
	s.Token = res.Body.AccessToken
}

func (s *RouterTestSuite) do(method, path string, body interface{}, auth bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if auth {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.Token)
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func (s *RouterTestSuite) TestMetricsIsPublic() {
	rec := s.do(http.MethodGet, "/metrics", nil, false)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterTestSuite) TestSecureRoutesNeedToken() {
	rec := s.do(http.MethodGet, "/api/catalog/fire-panels", nil, false)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RouterTestSuite) TestWrongAPIKey() {
	rec := s.do(http.MethodPost, "/api/auth/token", map[string]string{"installer_id": "installer-1", "api_key": "nope"}, false)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RouterTestSuite) TestCatalogSearch() {
	rec := s.do(http.MethodGet, "/api/catalog/fire-panels?search=mxpro", nil, true)
	s.Require().Equal(http.StatusOK, rec.Code)

	var res struct {
		Body dto.CatalogListDTO `json:"body"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &res))
	s.True(res.Body.Filtered)
	s.Len(res.Body.Items, 2)

	rec = s.do(http.MethodGet, "/api/catalog/fire-panels", nil, true)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &res))
	s.False(res.Body.Filtered)
	s.NotEmpty(res.Body.Groups)
}

func (s *RouterTestSuite) TestCatalogUnknownKind() {
	rec := s.do(http.MethodGet, "/api/catalog/boilers", nil, true)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterTestSuite) TestCatalogExport() {
	rec := s.do(http.MethodGet, "/api/catalog/inverters/export", nil, true)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get(echo.HeaderContentType))
	s.Contains(rec.Header().Get("Content-Disposition"), "inverters_")
	// xlsx is a zip archive
	s.True(bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func (s *RouterTestSuite) TestCatalogFind() {
	rec := s.do(http.MethodGet, "/api/catalog/fire-panels/adv-mxpro5-4l", nil, true)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"loop_capacity"`)
}

func (s *RouterTestSuite) TestPowerFactor() {
	rec := s.do(http.MethodPost, "/api/calculators/power-factor", map[string]string{
		"kw": "100", "current_pf": "0.7", "target_pf": "0.95",
	}, true)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Contains(rec.Body.String(), `"capacitor_bank_kvar":75`)
}

func (s *RouterTestSuite) TestPowerFactorWithoutResult() {
	rec := s.do(http.MethodPost, "/api/calculators/power-factor", map[string]string{
		"kw": "100", "current_pf": "0.95", "target_pf": "0.9",
	}, true)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (s *RouterTestSuite) TestCreateCertificate() {
	rec := s.do(http.MethodPost, "/api/certificate", map[string]string{
		"kind": "fire_alarm", "client_name": "A. Patel", "site_address": "4 Mill Lane", "site_postcode": "LS6 2AB",
	}, true)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	s.Contains(rec.Body.String(), `"installer_id":"installer-1"`)
	s.Equal("fire_alarm", s.Certificates.created.Kind)
}

func (s *RouterTestSuite) TestCreateCertificateValidation() {
	rec := s.do(http.MethodPost, "/api/certificate", map[string]string{
		"kind": "gas_safety", "client_name": "A. Patel", "site_address": "4 Mill Lane", "site_postcode": "not a postcode",
	}, true)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) TestCertificateIDMustBeUUID() {
	rec := s.do(http.MethodGet, "/api/certificate/42", nil, true)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) TestIssuedCertificateConflict() {
	rec := s.do(http.MethodPatch, "/api/certificate/"+uuid.NewString()+"/form", map[string]interface{}{
		"changes": []map[string]interface{}{{"field": "defects", "value": "none"}},
	}, true)
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *RouterTestSuite) TestDownloadPDF() {
	rec := s.do(http.MethodGet, "/api/certificate/"+uuid.NewString()+"/pdf", nil, true)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("application/pdf", rec.Header().Get(echo.HeaderContentType))
	s.Equal("attachment; filename=FA-20260514-ABC123.pdf", rec.Header().Get("Content-Disposition"))
}

func (s *RouterTestSuite) TestRecentClients() {
	rec := s.do(http.MethodGet, "/api/clients/recent?kind=solar_pv", nil, true)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "A. Patel")

	rec = s.do(http.MethodGet, "/api/clients/recent?kind=gas", nil, true)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) TestListCertificatesIsPaginated() {
	rec := s.do(http.MethodGet, "/api/certificates?limit=10", nil, true)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"list":[]`)
	s.Contains(rec.Body.String(), `"pagination"`)
}

func (s *RouterTestSuite) TestWebSocketNeedsToken() {
	rec := s.do(http.MethodGet, "/api/ws", nil, false)
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/api/ws?token=garbage", nil, false)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
