package service

import (
	"context"
	"time"

	"tradex/internal/api/dto"
	"tradex/internal/api/repository"
	"tradex/internal/entity"
)

type positionKey struct {
	userID    uint
	stockName string
}

// fakePositionRepo is an in-memory StockPositionRepository. ExecuteTx runs
// fn against the same store; row locking is a no-op.
type fakePositionRepo struct {
	positions map[positionKey]entity.StockPosition
	nextID    uint
	saveErr   error
}

func newFakePositionRepo() *fakePositionRepo {
	return &fakePositionRepo{positions: make(map[positionKey]entity.StockPosition), nextID: 1}
}

func (f *fakePositionRepo) FindByUser(ctx context.Context, userID uint) ([]entity.StockPosition, error) {
	var out []entity.StockPosition
	for key, pos := range f.positions {
		if key.userID == userID {
			out = append(out, pos)
		}
	}
	return out, nil
}

func (f *fakePositionRepo) Find(ctx context.Context, userID uint, stockName string) (*entity.StockPosition, error) {
	pos, ok := f.positions[positionKey{userID, stockName}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := pos
	return &copied, nil
}

func (f *fakePositionRepo) FindForUpdate(ctx context.Context, userID uint, stockName string) (*entity.StockPosition, error) {
	return f.Find(ctx, userID, stockName)
}

func (f *fakePositionRepo) Save(ctx context.Context, position *entity.StockPosition) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if position.ID == 0 {
		position.ID = f.nextID
		f.nextID++
	}
	f.positions[positionKey{position.UserID, position.StockName}] = *position
	return nil
}

func (f *fakePositionRepo) Delete(ctx context.Context, position *entity.StockPosition) error {
	delete(f.positions, positionKey{position.UserID, position.StockName})
	return nil
}

func (f *fakePositionRepo) ExecuteTx(ctx context.Context, fn func(txRepo repository.StockPositionRepository) error) error {
	return fn(f)
}

// fakeStockRepo is an in-memory StockRepository over an ordered slice of
// observations.
type fakeStockRepo struct {
	stocks      []entity.Stock
	latestCalls int
}

func (f *fakeStockRepo) FindAll(ctx context.Context) ([]entity.Stock, error) {
	out := make([]entity.Stock, len(f.stocks))
	copy(out, f.stocks)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (f *fakeStockRepo) FindHistory(ctx context.Context, name string) ([]entity.Stock, error) {
	var out []entity.Stock
	for _, stock := range f.stocks {
		if stock.Name == name {
			out = append(out, stock)
		}
	}
	return out, nil
}

func (f *fakeStockRepo) FindLatest(ctx context.Context, name string) (*entity.Stock, error) {
	f.latestCalls++
	var latest *entity.Stock
	for i := range f.stocks {
		stock := &f.stocks[i]
		if stock.Name != name {
			continue
		}
		if latest == nil || !stock.CreatedAt.Before(latest.CreatedAt) {
			latest = stock
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

func (f *fakeStockRepo) FindNames(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	var names []string
	for _, stock := range f.stocks {
		if _, ok := seen[stock.Name]; !ok {
			seen[stock.Name] = struct{}{}
			names = append(names, stock.Name)
		}
	}
	return names, nil
}

// fakePriceCache is an in-memory PriceCache.
type fakePriceCache struct {
	entries map[string]entity.Stock
	getErr  error
}

func newFakePriceCache() *fakePriceCache {
	return &fakePriceCache{entries: make(map[string]entity.Stock)}
}

func (f *fakePriceCache) GetLatest(ctx context.Context, name string) (*entity.Stock, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	stock, ok := f.entries[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := stock
	return &copied, nil
}

func (f *fakePriceCache) SetLatest(ctx context.Context, stock *entity.Stock) error {
	f.entries[stock.Name] = *stock
	return nil
}

// fakePricingService serves latest prices from a fixed map.
type fakePricingService struct {
	latest map[string]*entity.Stock
}

func (f *fakePricingService) GetAllStocks(ctx context.Context) ([]dto.StockResponse, error) {
	return nil, nil
}

func (f *fakePricingService) GetPriceHistory(ctx context.Context, name string) ([]dto.PricePoint, error) {
	return nil, nil
}

func (f *fakePricingService) LatestPrice(ctx context.Context, name string) (*entity.Stock, error) {
	stock, ok := f.latest[name]
	if !ok {
		return nil, ErrPriceUnavailable
	}
	copied := *stock
	return &copied, nil
}

// fakeFeedAuditRepo is an in-memory FeedAuditRepository. CommitBatch
// stamps CreatedAt the way autoCreateTime would.
type fakeFeedAuditRepo struct {
	processed map[string]struct{}
	committed []entity.Stock
	commitErr error
	nextID    uint
}

func newFakeFeedAuditRepo() *fakeFeedAuditRepo {
	return &fakeFeedAuditRepo{processed: make(map[string]struct{}), nextID: 1}
}

func (f *fakeFeedAuditRepo) FindProcessedFiles(ctx context.Context, candidates []string) ([]string, error) {
	var out []string
	for _, name := range candidates {
		if _, ok := f.processed[name]; ok {
			out = append(out, name)
		}
	}
	return out, nil
}

func (f *fakeFeedAuditRepo) CommitBatch(ctx context.Context, stocks []entity.Stock, audits []entity.FeedFileAudit) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	now := time.Now()
	for i := range stocks {
		stocks[i].ID = f.nextID
		stocks[i].CreatedAt = now
		f.nextID++
	}
	f.committed = append(f.committed, stocks...)
	for _, audit := range audits {
		f.processed[audit.FileName] = struct{}{}
	}
	return nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users  map[string]entity.User
	tokens map[uint]entity.AuthToken
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[string]entity.User),
		tokens: make(map[uint]entity.AuthToken),
		nextID: 1,
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if _, ok := f.users[user.Username]; ok {
		return repository.ErrDuplicate
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.Username] = *user
	return nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := user
	return &copied, nil
}

func (f *fakeUserRepo) GetOrCreateToken(ctx context.Context, userID uint, newKey string) (*entity.AuthToken, error) {
	if token, ok := f.tokens[userID]; ok {
		copied := token
		return &copied, nil
	}
	token := entity.AuthToken{ID: f.nextID, Key: newKey, UserID: userID}
	f.nextID++
	f.tokens[userID] = token
	copied := token
	return &copied, nil
}

func (f *fakeUserRepo) FindTokenByKey(ctx context.Context, key string) (*entity.AuthToken, error) {
	for _, token := range f.tokens {
		if token.Key == key {
			copied := token
			for _, user := range f.users {
				if user.ID == token.UserID {
					copied.User = user
				}
			}
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}
