package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"certificate-system/internal/calculators"
	"certificate-system/internal/catalog"
	"certificate-system/internal/dto"
	apperrors "certificate-system/pkg/errors"
	"certificate-system/pkg/metrics"
)

type CalculatorServiceInterface interface {
	PowerFactor(ctx context.Context, req dto.PowerFactorRequestDTO) (*calculators.PowerFactorResult, error)
	SoundLevel(ctx context.Context, req dto.SoundLevelRequestDTO) (*dto.SoundLevelResponseDTO, error)
	PVYield(ctx context.Context, req dto.PVYieldRequestDTO) (*calculators.YieldResult, error)
}

type CalculatorService struct {
	catalogs *catalog.Catalogs
	logger   *zap.Logger
}

func NewCalculatorService(catalogs *catalog.Catalogs, logger *zap.Logger) CalculatorServiceInterface {
	return &CalculatorService{catalogs: catalogs, logger: logger}
}

func (s *CalculatorService) PowerFactor(ctx context.Context, req dto.PowerFactorRequestDTO) (*calculators.PowerFactorResult, error) {
	in, ok := calculators.ParsePowerFactorInput(req.KW, req.CurrentPF, req.TargetPF, req.VoltageV, req.Phases)
	if !ok {
		metrics.IncCalculatorRun("power_factor", metrics.ResultError)
		return nil, fmt.Errorf("%w: power factor inputs must be numbers", apperrors.ErrNoResult)
	}
	res, ok := calculators.PowerFactorCorrection(in)
	if !ok {
		metrics.IncCalculatorRun("power_factor", metrics.ResultError)
		return nil, fmt.Errorf("%w: power factor correction needs kW > 0 and 0 < current PF < target PF <= 1", apperrors.ErrNoResult)
	}
	metrics.IncCalculatorRun("power_factor", metrics.ResultSuccess)
	return res, nil
}

func (s *CalculatorService) SoundLevel(ctx context.Context, req dto.SoundLevelRequestDTO) (*dto.SoundLevelResponseDTO, error) {
	results, ok := calculators.CheckSoundLevels(req.Readings)
	if !ok {
		metrics.IncCalculatorRun("sound_level", metrics.ResultError)
		return nil, fmt.Errorf("%w: every reading needs a known area and a positive level", apperrors.ErrNoResult)
	}
	out := &dto.SoundLevelResponseDTO{
		Results:   results,
		AllPass:   true,
		MinimumDB: calculators.MinimumMeasured(req.Readings),
	}
	for _, r := range results {
		if !r.Pass {
			out.AllPass = false
			out.FailedRows++
		}
	}
	metrics.IncCalculatorRun("sound_level", metrics.ResultSuccess)
	return out, nil
}

// PVYield estimates annual generation. Panel wattage and inverter rating can come from
// the catalog by id or label; explicit values in the request win.
func (s *CalculatorService) PVYield(ctx context.Context, req dto.PVYieldRequestDTO) (*calculators.YieldResult, error) {
	in := calculators.YieldInput{
		PanelCount:    req.PanelCount,
		PanelWattage:  req.PanelWattage,
		Kk:            req.Kk,
		ShadingFactor: 1,
		InverterKW:    req.InverterKW,
	}
	if req.ShadingFactor != nil {
		in.ShadingFactor = *req.ShadingFactor
	}
	if in.PanelWattage == 0 && req.PanelID != "" {
		p, ok := s.catalogs.SolarPanels.Resolve(req.PanelID)
		if !ok {
			return nil, fmt.Errorf("%w: solar panel %q", apperrors.ErrNotFound, req.PanelID)
		}
		in.PanelWattage = float64(p.Wattage)
	}
	if in.InverterKW == 0 && req.InverterID != "" {
		inv, ok := s.catalogs.Inverters.Resolve(req.InverterID)
		if !ok {
			return nil, fmt.Errorf("%w: inverter %q", apperrors.ErrNotFound, req.InverterID)
		}
		in.InverterKW = inv.RatedPowerKW
	}

	res, ok := calculators.EstimateYield(in)
	if !ok {
		metrics.IncCalculatorRun("pv_yield", metrics.ResultError)
		return nil, fmt.Errorf("%w: yield needs panels, panel wattage and a Kk value", apperrors.ErrNoResult)
	}
	metrics.IncCalculatorRun("pv_yield", metrics.ResultSuccess)
	return res, nil
}
