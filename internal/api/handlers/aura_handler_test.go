package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/bioaura/platform/backend-go/internal/cache"
	"github.com/bioaura/platform/backend-go/internal/config"
	"github.com/bioaura/platform/backend-go/internal/domain"
	"github.com/bioaura/platform/backend-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	identities []domain.PharmacyIdentity
	profiles   []domain.PharmacyProfile
	inventory  []domain.InventoryRecord
	orders     []domain.Order
	err        error
}

func (f *fakeStore) Identities(ctx context.Context) ([]domain.PharmacyIdentity, error) {
	return f.identities, f.err
}

func (f *fakeStore) Profiles(ctx context.Context) ([]domain.PharmacyProfile, error) {
	return f.profiles, f.err
}

func (f *fakeStore) List(ctx context.Context) ([]domain.InventoryRecord, error) {
	return f.inventory, f.err
}

func (f *fakeStore) TopByStock(ctx context.Context, limit int) ([]domain.InventoryRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	items := append([]domain.InventoryRecord(nil), f.inventory...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Stock > items[j].Stock })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (f *fakeStore) ListSince(ctx context.Context, since time.Time) ([]domain.Order, error) {
	return f.orders, f.err
}

func newTestStore() *fakeStore {
	return &fakeStore{
		identities: []domain.PharmacyIdentity{{
			ID:           "ph1",
			Email:        "pune@pharmacy.in",
			PharmacyName: "Pune Central",
			City:         "Pune",
			State:        "Maharashtra",
		}},
		inventory: []domain.InventoryRecord{{
			ID:         "med1",
			PharmacyID: "ph1",
			Name:       "Salbutamol",
			Category:   "Respiratory",
			Stock:      5,
			Threshold:  10,
		}},
		orders: []domain.Order{{
			ID:        "ord1",
			CreatedAt: time.Now().UTC().AddDate(0, 0, -1),
			Items: []domain.OrderItem{{
				MedicineID: "med1",
				Quantity:   2,
				PackSize:   1,
				TotalPrice: 100,
			}},
		}},
	}
}

func newTestRouter(store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := service.NewAuraService(store, store, store, cache.NewNoopViewCache(), config.EngineConfig{
		LookbackDays:       30,
		NetworkLimit:       50,
		MedicineLimit:      100,
		FallbackStockLimit: 100,
	})
	handler := NewAuraHandler(svc)

	router := gin.New()
	group := router.Group("/api/v1/bioaura")
	group.GET("/overview", handler.GetOverview)
	group.GET("/health-index", handler.GetHealthIndex)
	group.GET("/demand-patterns", handler.GetDemandPatterns)
	group.GET("/pharmacy-network", handler.GetPharmacyNetwork)
	group.GET("/regional-sales", handler.GetRegionalSales)
	group.GET("/regional-stocks", handler.GetRegionalStocks)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetOverview(t *testing.T) {
	router := newTestRouter(newTestStore())

	rec := doRequest(t, router, "/api/v1/bioaura/overview")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload domain.Overview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, 22, payload.BioAuraIndex.Index)
	require.Equal(t, domain.RiskHigh, payload.BioAuraIndex.RiskLevel)
	require.Len(t, payload.Agents, 5)
	require.Len(t, payload.RegionalInsights, 1)
	require.Equal(t, 89, payload.RegionalInsights[0].Index)
}

func TestGetOverviewMalformedDaysDefaults(t *testing.T) {
	router := newTestRouter(newTestStore())

	rec := doRequest(t, router, "/api/v1/bioaura/overview?days=abc")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetOverviewStoreError(t *testing.T) {
	store := newTestStore()
	store.err = errors.New("connection refused")
	router := newTestRouter(store)

	rec := doRequest(t, router, "/api/v1/bioaura/overview")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, "failed to load dashboard overview", payload["error"])
}

func TestGetHealthIndexRegionParam(t *testing.T) {
	router := newTestRouter(newTestStore())

	rec := doRequest(t, router, "/api/v1/bioaura/health-index?region=Nagpur")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload domain.HealthIndex
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, "Nagpur", payload.Region.City)
	require.Len(t, payload.CategoryBreakdown, 1)
}

func TestGetDemandPatterns(t *testing.T) {
	router := newTestRouter(newTestStore())

	rec := doRequest(t, router, "/api/v1/bioaura/demand-patterns")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload domain.DemandPatterns
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Medicines, 1)
	require.Equal(t, "Salbutamol", payload.Medicines[0].Name)
}

func TestGetPharmacyNetworkStateFilter(t *testing.T) {
	store := newTestStore()
	store.identities = append(store.identities, domain.PharmacyIdentity{
		ID: "ph2", Email: "kochi@pharmacy.in", PharmacyName: "Kochi Meds", City: "Kochi", State: "Kerala",
	})
	router := newTestRouter(store)

	rec := doRequest(t, router, "/api/v1/bioaura/pharmacy-network?state=Kerala")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload domain.PharmacyNetwork
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Data, 1)
	require.Equal(t, "ph2", payload.Data[0].PharmacyID)
	require.Equal(t, "no-data", payload.Data[0].Status)
}

func TestGetRegionalSales(t *testing.T) {
	router := newTestRouter(newTestStore())

	rec := doRequest(t, router, "/api/v1/bioaura/regional-sales")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload domain.RegionalSales
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Regions, 1)
	require.Equal(t, "Pune", payload.Regions[0].Region)
	require.Len(t, payload.DailySummary, 1)
}

func TestGetRegionalStocksCategoryFilter(t *testing.T) {
	store := newTestStore()
	store.inventory = append(store.inventory, domain.InventoryRecord{
		ID: "med2", PharmacyID: "ph1", Name: "Vitamin C", Category: "Vitamins", Stock: 50, Threshold: 5,
	})
	router := newTestRouter(store)

	rec := doRequest(t, router, "/api/v1/bioaura/regional-stocks?category=Vitamins")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload domain.RegionalStocks
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Regions, 1)
	require.Len(t, payload.Regions[0].Categories, 1)
	require.Equal(t, "Vitamins", payload.Regions[0].Categories[0].Name)
}
