package service

import (
	"context"
	"time"

	"github.com/bioaura/platform/backend-go/internal/cache"
	"github.com/bioaura/platform/backend-go/internal/config"
	"github.com/bioaura/platform/backend-go/internal/domain"
	"github.com/bioaura/platform/backend-go/internal/engine"
	"github.com/bioaura/platform/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// AuraService loads one consistent snapshot of the source stores and renders
// the analytics views from it, caching rendered payloads per view and
// parameter set.
type AuraService struct {
	pharmacies repository.PharmacyRepository
	inventory  repository.InventoryRepository
	orders     repository.OrderRepository
	cache      cache.ViewCache
	cfg        config.EngineConfig

	now func() time.Time
}

func NewAuraService(
	pharmacies repository.PharmacyRepository,
	inventory repository.InventoryRepository,
	orders repository.OrderRepository,
	cacheImpl cache.ViewCache,
	cfg config.EngineConfig,
) *AuraService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopViewCache()
	}
	return &AuraService{
		pharmacies: pharmacies,
		inventory:  inventory,
		orders:     orders,
		cache:      cacheImpl,
		cfg:        cfg,
		now:        time.Now,
	}
}

func (s *AuraService) lookbackDays(days int) int {
	if days > 0 {
		return days
	}
	if s.cfg.LookbackDays > 0 {
		return s.cfg.LookbackDays
	}
	return 30
}

// loadSnapshot fetches the five source datasets concurrently. Any fetch
// failing fails the snapshot; views never render from partial data.
func (s *AuraService) loadSnapshot(ctx context.Context, days int) (engine.Snapshot, error) {
	now := s.now()
	snap := engine.Snapshot{Days: days, Now: now}
	since := now.AddDate(0, 0, -days)

	fallbackLimit := s.cfg.FallbackStockLimit
	if fallbackLimit <= 0 {
		fallbackLimit = 100
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Identities, err = s.pharmacies.Identities(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Profiles, err = s.pharmacies.Profiles(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Inventory, err = s.inventory.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.TopInventory, err = s.inventory.TopByStock(gctx, fallbackLimit)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Orders, err = s.orders.ListSince(gctx, since)
		return err
	})

	if err := g.Wait(); err != nil {
		return engine.Snapshot{}, err
	}
	return snap, nil
}

func (s *AuraService) Overview(ctx context.Context, days int) (domain.Overview, error) {
	days = s.lookbackDays(days)
	params := cache.ViewParams{Days: days}

	var cached domain.Overview
	if s.cacheGet(ctx, "overview", params, &cached) {
		return cached, nil
	}

	snap, err := s.loadSnapshot(ctx, days)
	if err != nil {
		return domain.Overview{}, err
	}

	view := engine.BuildOverview(snap)
	s.cacheSet(ctx, "overview", params, view)
	return view, nil
}

func (s *AuraService) HealthIndex(ctx context.Context, days int, region string) (domain.HealthIndex, error) {
	days = s.lookbackDays(days)
	params := cache.ViewParams{Days: days, Region: region}

	var cached domain.HealthIndex
	if s.cacheGet(ctx, "health_index", params, &cached) {
		return cached, nil
	}

	snap, err := s.loadSnapshot(ctx, days)
	if err != nil {
		return domain.HealthIndex{}, err
	}

	view := engine.BuildHealthIndex(snap, region)
	s.cacheSet(ctx, "health_index", params, view)
	return view, nil
}

func (s *AuraService) DemandPatterns(ctx context.Context, days int, category, region string, limit int) (domain.DemandPatterns, error) {
	days = s.lookbackDays(days)
	if limit <= 0 {
		limit = s.cfg.MedicineLimit
	}
	if limit <= 0 {
		limit = 100
	}
	params := cache.ViewParams{Days: days, Category: category, Region: region, Limit: limit}

	var cached domain.DemandPatterns
	if s.cacheGet(ctx, "demand_patterns", params, &cached) {
		return cached, nil
	}

	snap, err := s.loadSnapshot(ctx, days)
	if err != nil {
		return domain.DemandPatterns{}, err
	}

	filter := engine.MedicineFilter{Category: category, Region: region}
	view := engine.BuildDemandPatterns(snap, filter, limit)
	s.cacheSet(ctx, "demand_patterns", params, view)
	return view, nil
}

func (s *AuraService) PharmacyNetwork(ctx context.Context, days int, state, region string, limit int) (domain.PharmacyNetwork, error) {
	days = s.lookbackDays(days)
	if limit <= 0 {
		limit = s.cfg.NetworkLimit
	}
	if limit <= 0 {
		limit = 50
	}
	params := cache.ViewParams{Days: days, State: state, Region: region, Limit: limit}

	var cached domain.PharmacyNetwork
	if s.cacheGet(ctx, "pharmacy_network", params, &cached) {
		return cached, nil
	}

	snap, err := s.loadSnapshot(ctx, days)
	if err != nil {
		return domain.PharmacyNetwork{}, err
	}

	view := engine.BuildPharmacyNetwork(snap, state, region, limit)
	s.cacheSet(ctx, "pharmacy_network", params, view)
	return view, nil
}

func (s *AuraService) RegionalSales(ctx context.Context, days int, region string) (domain.RegionalSales, error) {
	days = s.lookbackDays(days)
	params := cache.ViewParams{Days: days, Region: region}

	var cached domain.RegionalSales
	if s.cacheGet(ctx, "regional_sales", params, &cached) {
		return cached, nil
	}

	snap, err := s.loadSnapshot(ctx, days)
	if err != nil {
		return domain.RegionalSales{}, err
	}

	view := engine.BuildRegionalSales(snap, region)
	s.cacheSet(ctx, "regional_sales", params, view)
	return view, nil
}

func (s *AuraService) RegionalStocks(ctx context.Context, region, category string) (domain.RegionalStocks, error) {
	days := s.lookbackDays(0)
	params := cache.ViewParams{Region: region, Category: category}

	var cached domain.RegionalStocks
	if s.cacheGet(ctx, "regional_stocks", params, &cached) {
		return cached, nil
	}

	snap, err := s.loadSnapshot(ctx, days)
	if err != nil {
		return domain.RegionalStocks{}, err
	}

	view := engine.BuildRegionalStocks(snap, region, category)
	s.cacheSet(ctx, "regional_stocks", params, view)
	return view, nil
}

// cacheGet reports a hit; cache errors degrade to a miss with a warning so
// the view still renders from source data.
func (s *AuraService) cacheGet(ctx context.Context, view string, params cache.ViewParams, out any) bool {
	ok, err := s.cache.Get(ctx, view, params, out)
	if err != nil {
		log.Warn().Err(err).Str("view", view).Msg("bioaura: cache get failed")
		return false
	}
	return ok
}

func (s *AuraService) cacheSet(ctx context.Context, view string, params cache.ViewParams, value any) {
	if err := s.cache.Set(ctx, view, params, value); err != nil {
		log.Warn().Err(err).Str("view", view).Msg("bioaura: cache set failed")
	}
}
