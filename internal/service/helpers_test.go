package service

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Fahad602/Dash-KanBan/internal/domain"
	"github.com/Fahad602/Dash-KanBan/internal/migration"
	"github.com/Fahad602/Dash-KanBan/internal/repository"
	"github.com/Fahad602/Dash-KanBan/pkg/cache"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestStore(t *testing.T) repository.Store {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "board.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, migration.Run(db))
	return repository.NewStore(db)
}

// recordingListener collects board changes
type recordingListener struct {
	mu      sync.Mutex
	changes []domain.BoardChange
}

func (l *recordingListener) BoardChanged(_ context.Context, change domain.BoardChange) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.changes = append(l.changes, change)
}

func (l *recordingListener) Changes() []domain.BoardChange {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.BoardChange(nil), l.changes...)
}

// recordingPublisher collects published changes
type recordingPublisher struct {
	recordingListener
}

func (p *recordingPublisher) PublishChange(ctx context.Context, change domain.BoardChange) {
	p.BoardChanged(ctx, change)
}

func uint64Ptr(v uint64) *uint64 { return &v }
func strPtr(s string) *string    { return &s }

func createCard(t *testing.T, svc CardService, stock string) *domain.Card {
	t.Helper()
	card, err := svc.Create(context.Background(), &domain.CreateCardRequest{
		StockName:        stock,
		PrimaryAnalystID: uint64Ptr(1),
	})
	require.NoError(t, err)
	return card
}

// ============================================
// Mocks
// ============================================

// MockCardRepository 카드 저장소 모의 객체
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) ListByStage(ctx context.Context, stage domain.Stage) ([]*domain.Card, error) {
	args := m.Called(ctx, stage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Card), args.Error(1)
}

func (m *MockCardRepository) FindByID(ctx context.Context, id uint64) (*domain.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCardRepository) Create(ctx context.Context, card *domain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) SoftDelete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCardRepository) UpdateStage(ctx context.Context, id uint64, stage domain.Stage) error {
	args := m.Called(ctx, id, stage)
	return args.Error(0)
}

func (m *MockCardRepository) UpdateDueDate(ctx context.Context, id uint64, dueDate *time.Time) error {
	args := m.Called(ctx, id, dueDate)
	return args.Error(0)
}

func (m *MockCardRepository) UpdateAttachmentsAndAssignment(ctx context.Context, id uint64, patches []domain.AttachmentPatch, secondary *domain.Analyst) error {
	args := m.Called(ctx, id, patches, secondary)
	return args.Error(0)
}

func (m *MockCardRepository) UpdateAttachmentSlot(ctx context.Context, id uint64, slot domain.AttachmentSlot, url string) error {
	args := m.Called(ctx, id, slot, url)
	return args.Error(0)
}

// MockAnalystRepository 애널리스트 저장소 모의 객체
type MockAnalystRepository struct {
	mock.Mock
}

func (m *MockAnalystRepository) FindByID(ctx context.Context, id uint64) (*domain.Analyst, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Analyst), args.Error(1)
}

func (m *MockAnalystRepository) List(ctx context.Context) ([]domain.Analyst, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Analyst), args.Error(1)
}

// MockTransitionRepository 전이 로그 저장소 모의 객체
type MockTransitionRepository struct {
	mock.Mock
}

func (m *MockTransitionRepository) Create(ctx context.Context, log *domain.StageTransitionLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockTransitionRepository) ListByCard(ctx context.Context, cardID uint64, limit int) ([]domain.StageTransitionLog, error) {
	args := m.Called(ctx, cardID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StageTransitionLog), args.Error(1)
}

func (m *MockTransitionRepository) CountByCard(ctx context.Context, cardID uint64) (int64, error) {
	args := m.Called(ctx, cardID)
	return args.Get(0).(int64), args.Error(1)
}

// mockStore runs transactions inline against the mock repositories
type mockStore struct {
	cards       *MockCardRepository
	analysts    *MockAnalystRepository
	transitions *MockTransitionRepository
}

func newMockStore() *mockStore {
	return &mockStore{
		cards:       new(MockCardRepository),
		analysts:    new(MockAnalystRepository),
		transitions: new(MockTransitionRepository),
	}
}

func (s *mockStore) Cards() repository.CardRepository             { return s.cards }
func (s *mockStore) Analysts() repository.AnalystRepository       { return s.analysts }
func (s *mockStore) Transitions() repository.TransitionRepository { return s.transitions }

func (s *mockStore) Transaction(_ context.Context, fn func(tx repository.Store) error) error {
	return fn(s)
}

// ============================================
// Fakes
// ============================================

// memCache is an in-process cache.Service with the Redis key semantics
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gen  int64
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memCache) GetBoardView(ctx context.Context, dest interface{}) error {
	return c.Get(ctx, cache.KeyBoardView, dest)
}

func (c *memCache) SetBoardView(ctx context.Context, data interface{}, ttl time.Duration) error {
	return c.Set(ctx, cache.KeyBoardView, data, ttl)
}

func (c *memCache) InvalidateBoardView(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	delete(c.data, cache.KeyBoardView)
	return nil
}

func (c *memCache) BoardGeneration(_ context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen, nil
}

func (c *memCache) IsAvailable() bool            { return true }
func (c *memCache) Ping(_ context.Context) error { return nil }

// hookStore runs beforeList once, right before the given stage is listed
type hookStore struct {
	repository.Store
	stage      domain.Stage
	beforeList func()
	once       sync.Once
}

func (s *hookStore) Cards() repository.CardRepository {
	return &hookCards{CardRepository: s.Store.Cards(), store: s}
}

type hookCards struct {
	repository.CardRepository
	store *hookStore
}

func (c *hookCards) ListByStage(ctx context.Context, stage domain.Stage) ([]*domain.Card, error) {
	if stage == c.store.stage && c.store.beforeList != nil {
		c.store.once.Do(c.store.beforeList)
	}
	return c.CardRepository.ListByStage(ctx, stage)
}

var errLogWrite = errors.New("transition log write failed")

// failingLogStore wraps a real store so transition log inserts fail inside
// the real transaction
type failingLogStore struct {
	repository.Store
}

func (s *failingLogStore) Transitions() repository.TransitionRepository {
	return &failingTransitions{TransitionRepository: s.Store.Transitions()}
}

func (s *failingLogStore) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	return s.Store.Transaction(ctx, func(tx repository.Store) error {
		return fn(&failingLogStore{Store: tx})
	})
}

type failingTransitions struct {
	repository.TransitionRepository
}

func (r *failingTransitions) Create(_ context.Context, _ *domain.StageTransitionLog) error {
	return errLogWrite
}
