package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"certificate-system/internal/catalog"
	"certificate-system/internal/certificates"
	"certificate-system/internal/documents"
	"certificate-system/internal/dto"
	apperrors "certificate-system/pkg/errors"
	"certificate-system/pkg/metrics"
)

// minSuggestionTokenLen skips model names too short to identify a product in OCR text.
const minSuggestionTokenLen = 4

type CatalogServiceInterface interface {
	Search(ctx context.Context, kind catalog.Kind, query string) (*dto.CatalogListDTO, error)
	Find(ctx context.Context, kind catalog.Kind, idOrLabel string) (*dto.CatalogDetailDTO, error)
	ExportXLSX(ctx context.Context, kind catalog.Kind) ([]byte, error)
	DNOs(ctx context.Context) []catalog.DNO
	Suggest(text string, limit int) []dto.CatalogItemDTO
}

type CatalogService struct {
	catalogs *catalog.Catalogs
	logger   *zap.Logger
}

func NewCatalogService(catalogs *catalog.Catalogs, logger *zap.Logger) CatalogServiceInterface {
	return &CatalogService{catalogs: catalogs, logger: logger}
}

func toCatalogItem[T catalog.Record](r T) dto.CatalogItemDTO {
	return dto.CatalogItemDTO{
		ID:     r.RecordID(),
		Label:  catalog.Label(r),
		IsNew:  catalog.IsNew(r),
		Record: r,
	}
}

func toCatalogItems[T catalog.Record](records []T) []dto.CatalogItemDTO {
	out := make([]dto.CatalogItemDTO, 0, len(records))
	for _, r := range records {
		out = append(out, toCatalogItem(r))
	}
	return out
}

// listView runs the search and shapes the result: matching records when a filter was
// applied, otherwise the whole catalog grouped by manufacturer.
func listView[T catalog.Record](store *catalog.Store[T], kind catalog.Kind, query string) *dto.CatalogListDTO {
	out := &dto.CatalogListDTO{Catalog: string(kind), Query: strings.TrimSpace(query)}

	records, filtered := store.Search(query)
	metrics.IncCatalogSearch(string(kind), filtered)
	if filtered {
		out.Filtered = true
		out.Items = toCatalogItems(records)
		out.Count = len(records)
		return out
	}

	grouping := store.GroupedByManufacturer()
	out.Groups = make([]dto.ManufacturerGroupDTO, 0, grouping.Len())
	for _, g := range grouping.Groups {
		out.Groups = append(out.Groups, dto.ManufacturerGroupDTO{
			Manufacturer: g.Manufacturer,
			Items:        toCatalogItems(g.Records),
		})
	}
	out.Count = store.Len()
	return out
}

func detailView[T catalog.Record](store *catalog.Store[T], resolve catalog.Resolver[T], idOrLabel string) (*dto.CatalogDetailDTO, error) {
	r, ok := store.Resolve(idOrLabel)
	if !ok {
		return nil, fmt.Errorf("%w: catalog entry %q", apperrors.ErrNotFound, idOrLabel)
	}
	out := &dto.CatalogDetailDTO{CatalogItemDTO: toCatalogItem(r), Defaults: certificates.Patch{}}
	if d := resolve(r); d != nil {
		out.Defaults = d.Fields
	}
	return out, nil
}

func (s *CatalogService) Search(ctx context.Context, kind catalog.Kind, query string) (*dto.CatalogListDTO, error) {
	switch kind {
	case catalog.KindFirePanel:
		return listView(s.catalogs.FirePanels, kind, query), nil
	case catalog.KindSolarPanel:
		return listView(s.catalogs.SolarPanels, kind, query), nil
	case catalog.KindInverter:
		return listView(s.catalogs.Inverters, kind, query), nil
	}
	return nil, fmt.Errorf("%w: %q", apperrors.ErrCatalogKind, kind)
}

func (s *CatalogService) Find(ctx context.Context, kind catalog.Kind, idOrLabel string) (*dto.CatalogDetailDTO, error) {
	switch kind {
	case catalog.KindFirePanel:
		return detailView(s.catalogs.FirePanels, catalog.ResolveFireAlarmPanel, idOrLabel)
	case catalog.KindSolarPanel:
		return detailView(s.catalogs.SolarPanels, catalog.ResolveSolarPanel, idOrLabel)
	case catalog.KindInverter:
		return detailView(s.catalogs.Inverters, catalog.ResolveInverter, idOrLabel)
	}
	return nil, fmt.Errorf("%w: %q", apperrors.ErrCatalogKind, kind)
}

func (s *CatalogService) ExportXLSX(ctx context.Context, kind catalog.Kind) ([]byte, error) {
	start := time.Now()
	var (
		out []byte
		err error
	)
	switch kind {
	case catalog.KindFirePanel:
		out, err = documents.BuildCatalogXLSX(string(kind), s.catalogs.FirePanels.All(), documents.FirePanelColumns)
	case catalog.KindSolarPanel:
		out, err = documents.BuildCatalogXLSX(string(kind), s.catalogs.SolarPanels.All(), documents.SolarPanelColumns)
	case catalog.KindInverter:
		out, err = documents.BuildCatalogXLSX(string(kind), s.catalogs.Inverters.All(), documents.InverterColumns)
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrCatalogKind, kind)
	}
	if err != nil {
		metrics.ObserveRender("xlsx", metrics.ResultError, time.Since(start))
		s.logger.Error("catalog export failed", zap.String("catalog", string(kind)), zap.Error(err))
		return nil, err
	}
	metrics.ObserveRender("xlsx", metrics.ResultSuccess, time.Since(start))
	return out, nil
}

func (s *CatalogService) DNOs(ctx context.Context) []catalog.DNO {
	return s.catalogs.DNOs
}

// Suggest returns catalog entries whose model name occurs in text, such as the output of
// reading a rating plate. Catalogs are scanned in a fixed order and results are capped at
// limit.
func (s *CatalogService) Suggest(text string, limit int) []dto.CatalogItemDTO {
	haystack := strings.ToLower(strings.Join(strings.Fields(text), " "))
	out := make([]dto.CatalogItemDTO, 0)
	if haystack == "" || limit <= 0 {
		return out
	}
	out = appendSuggestions(out, s.catalogs.Inverters.All(), haystack, limit)
	out = appendSuggestions(out, s.catalogs.SolarPanels.All(), haystack, limit)
	out = appendSuggestions(out, s.catalogs.FirePanels.All(), haystack, limit)
	return out
}

func appendSuggestions[T catalog.Record](out []dto.CatalogItemDTO, records []T, haystack string, limit int) []dto.CatalogItemDTO {
	for _, r := range records {
		if len(out) >= limit {
			return out
		}
		model := strings.ToLower(strings.Join(strings.Fields(r.ModelName()), " "))
		if len(model) < minSuggestionTokenLen {
			continue
		}
		if strings.Contains(haystack, model) {
			out = append(out, toCatalogItem(r))
		}
	}
	return out
}
