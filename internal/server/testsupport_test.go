package server

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"sync"
	"testing"

	"github.com/wealthlens/wealthlens/internal/app"
	"github.com/wealthlens/wealthlens/internal/common"
	"github.com/wealthlens/wealthlens/internal/interfaces"
	"github.com/wealthlens/wealthlens/internal/models"
	surrealstore "github.com/wealthlens/wealthlens/internal/storage/surrealdb"
)

// --- in-memory storage backing for handler tests ---

type memInternalStore struct {
	mu    sync.Mutex
	users map[string]*models.InternalUser
	kv    map[string]string
}

func newMemInternalStore() *memInternalStore {
	return &memInternalStore{
		users: make(map[string]*models.InternalUser),
		kv:    make(map[string]string),
	}
}

func (s *memInternalStore) GetUser(ctx context.Context, userID string) (*models.InternalUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, surrealstore.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *memInternalStore) GetUserByEmail(ctx context.Context, email string) (*models.InternalUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, surrealstore.ErrUserNotFound
}

func (s *memInternalStore) SaveUser(ctx context.Context, user *models.InternalUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *user
	s.users[user.UserID] = &copied
	return nil
}

func (s *memInternalStore) DeleteUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, userID)
	return nil
}

func (s *memInternalStore) ListUsers(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *memInternalStore) GetSystemKV(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv[key], nil
}

func (s *memInternalStore) SetSystemKV(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kv[key] = value
	return nil
}

func (s *memInternalStore) Close() error { return nil }

type memAssetStore struct {
	mu     sync.Mutex
	assets map[string]*models.PropertyAsset
}

func newMemAssetStore() *memAssetStore {
	return &memAssetStore{assets: make(map[string]*models.PropertyAsset)}
}

func (s *memAssetStore) Get(ctx context.Context, userID, assetID string) (*models.PropertyAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	asset, ok := s.assets[assetID]
	if !ok || asset.UserID != userID {
		return nil, surrealstore.ErrAssetNotFound
	}
	copied := *asset
	return &copied, nil
}

func (s *memAssetStore) List(ctx context.Context, userID string) ([]*models.PropertyAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.PropertyAsset
	for _, asset := range s.assets {
		if asset.UserID == userID {
			copied := *asset
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *memAssetStore) Save(ctx context.Context, asset *models.PropertyAsset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *asset
	s.assets[asset.ID] = &copied
	return nil
}

func (s *memAssetStore) Delete(ctx context.Context, userID, assetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	asset, ok := s.assets[assetID]
	if !ok || asset.UserID != userID {
		return surrealstore.ErrAssetNotFound
	}
	delete(s.assets, assetID)
	return nil
}

type memHoldingStore struct {
	mu       sync.Mutex
	holdings map[string]*models.HoldingRecord
}

func newMemHoldingStore() *memHoldingStore {
	return &memHoldingStore{holdings: make(map[string]*models.HoldingRecord)}
}

func (s *memHoldingStore) List(ctx context.Context, userID string) ([]*models.HoldingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.HoldingRecord
	for _, holding := range s.holdings {
		if holding.UserID == userID {
			copied := *holding
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *memHoldingStore) Save(ctx context.Context, holding *models.HoldingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *holding
	s.holdings[holding.ID] = &copied
	return nil
}

func (s *memHoldingStore) Delete(ctx context.Context, userID, holdingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	holding, ok := s.holdings[holdingID]
	if !ok || holding.UserID != userID {
		return surrealstore.ErrHoldingNotFound
	}
	delete(s.holdings, holdingID)
	return nil
}

type memStorageManager struct {
	internal *memInternalStore
	assets   *memAssetStore
	holdings *memHoldingStore

	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemStorageManager() *memStorageManager {
	return &memStorageManager{
		internal: newMemInternalStore(),
		assets:   newMemAssetStore(),
		holdings: newMemHoldingStore(),
		blobs:    make(map[string][]byte),
	}
}

func (m *memStorageManager) InternalStore() interfaces.InternalStore { return m.internal }
func (m *memStorageManager) AssetStore() interfaces.AssetStore       { return m.assets }
func (m *memStorageManager) HoldingStore() interfaces.HoldingStore   { return m.holdings }
func (m *memStorageManager) DataPath() string                        { return "" }

func (m *memStorageManager) WriteRaw(subdir, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[subdir+"/"+key] = data
	return nil
}

func (m *memStorageManager) Close() error { return nil }

var (
	_ interfaces.InternalStore  = (*memInternalStore)(nil)
	_ interfaces.AssetStore     = (*memAssetStore)(nil)
	_ interfaces.HoldingStore   = (*memHoldingStore)(nil)
	_ interfaces.StorageManager = (*memStorageManager)(nil)
)

// --- mock services ---

type mockNetWorthService struct {
	summary func(ctx context.Context, userID string) (*models.NetWorthSummary, error)
}

func (m *mockNetWorthService) Summary(ctx context.Context, userID string) (*models.NetWorthSummary, error) {
	if m.summary != nil {
		return m.summary(ctx, userID)
	}
	return &models.NetWorthSummary{}, nil
}

type mockAnalyticsService struct {
	computePortfolio func(ctx context.Context, userID string) (*models.AnalyticsResult, error)
	computeAsset     func(ctx context.Context, userID, assetID string) (*models.PropertyAnalytics, error)
}

func (m *mockAnalyticsService) ComputePortfolio(ctx context.Context, userID string) (*models.AnalyticsResult, error) {
	if m.computePortfolio != nil {
		return m.computePortfolio(ctx, userID)
	}
	return &models.AnalyticsResult{}, nil
}

func (m *mockAnalyticsService) ComputeAsset(ctx context.Context, userID, assetID string) (*models.PropertyAnalytics, error) {
	if m.computeAsset != nil {
		return m.computeAsset(ctx, userID, assetID)
	}
	return &models.PropertyAnalytics{AssetID: assetID}, nil
}

type mockSimulationService struct {
	simulate func(ctx context.Context, userID, assetID string, assumptions models.SimulationAssumptions) (*models.SellVsHoldResult, error)
}

func (m *mockSimulationService) Simulate(ctx context.Context, userID, assetID string, assumptions models.SimulationAssumptions) (*models.SellVsHoldResult, error) {
	if m.simulate != nil {
		return m.simulate(ctx, userID, assetID, assumptions)
	}
	return nil, nil
}

type mockInsightService struct {
	propertyAlerts    func(ctx context.Context, userID, assetID string) ([]models.Insight, error)
	portfolioInsights func(ctx context.Context, userID string) ([]models.Insight, error)
}

func (m *mockInsightService) PropertyAlerts(ctx context.Context, userID, assetID string) ([]models.Insight, error) {
	if m.propertyAlerts != nil {
		return m.propertyAlerts(ctx, userID, assetID)
	}
	return nil, nil
}

func (m *mockInsightService) PortfolioInsights(ctx context.Context, userID string) ([]models.Insight, error) {
	if m.portfolioInsights != nil {
		return m.portfolioInsights(ctx, userID)
	}
	return nil, nil
}

type mockCopilotService struct {
	query func(ctx context.Context, userID, text string) (*models.CopilotResponse, error)
}

func (m *mockCopilotService) Query(ctx context.Context, userID, text string) (*models.CopilotResponse, error) {
	if m.query != nil {
		return m.query(ctx, userID, text)
	}
	return &models.CopilotResponse{Action: models.QueryActionAllow, Answer: "ok"}, nil
}

// newTestServer builds a Server around in-memory storage and mock services.
// Callers override individual services on the returned server's app as needed.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := common.NewLoggerFromConfig(common.LoggingConfig{Level: "disabled"})
	cfg := common.NewDefaultConfig()

	a := &app.App{
		Config:            cfg,
		Logger:            logger,
		Storage:           newMemStorageManager(),
		NetWorthService:   &mockNetWorthService{},
		AnalyticsService:  &mockAnalyticsService{},
		SimulationService: &mockSimulationService{},
		InsightService:    &mockInsightService{},
		CopilotService:    &mockCopilotService{},
	}
	return &Server{app: a, logger: logger}
}

func jsonBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal JSON: %v", err)
	}
	return bytes.NewBuffer(data)
}
