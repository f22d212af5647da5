package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tradex/internal/api/repository"
	"tradex/internal/entity"
	"tradex/pkg/logger"

	"github.com/shopspring/decimal"
)

// IngestionService brings new price-feed files into the observation
// catalog with at-most-once-per-file-name processing. It is triggered on a
// schedule and has no caller to report to; failures are logged only.
type IngestionService interface {
	Ingest(ctx context.Context) error
}

// NewIngestionService creates a new ingestion service reading feed files
// from feedDir.
func NewIngestionService(feedDir string, auditRepo repository.FeedAuditRepository, priceCache repository.PriceCache, logger *logger.Logger) IngestionService {
	return &ingestionService{
		feedDir:    feedDir,
		auditRepo:  auditRepo,
		priceCache: priceCache,
		logger:     logger,
	}
}

type ingestionService struct {
	feedDir    string
	auditRepo  repository.FeedAuditRepository
	priceCache repository.PriceCache
	logger     *logger.Logger
}

// Ingest lists candidate files, filters out audited ones in a single
// batched membership check, parses each new file, and commits all
// observations plus one audit record per parsed file in one transaction.
// A parse failure aborts only that file; other files in the run still
// commit.
func (s *ingestionService) Ingest(ctx context.Context) error {
	candidates, err := s.listFeedFiles()
	if err != nil {
		s.logger.Error("Failed to list feed directory", logger.ErrorField(err), logger.Field("dir", s.feedDir))
		return err
	}
	if len(candidates) == 0 {
		return nil
	}

	processed, err := s.auditRepo.FindProcessedFiles(ctx, candidates)
	if err != nil {
		s.logger.Error("Failed to check feed audit set", logger.ErrorField(err))
		return err
	}
	processedSet := make(map[string]struct{}, len(processed))
	for _, name := range processed {
		processedSet[name] = struct{}{}
	}

	var (
		stocks []entity.Stock
		audits []entity.FeedFileAudit
	)
	for _, fileName := range candidates {
		if _, ok := processedSet[fileName]; ok {
			continue
		}

		parsed, err := s.parseFeedFile(filepath.Join(s.feedDir, fileName))
		if err != nil {
			s.logger.Error("Failed to parse feed file, skipping",
				logger.ErrorField(err), logger.Field("file", fileName))
			continue
		}

		stocks = append(stocks, parsed...)
		audits = append(audits, entity.FeedFileAudit{FileName: fileName})
	}
	if len(audits) == 0 {
		return nil
	}

	// Observations and audit records land atomically, so a committed
	// observation can never be re-ingested because its audit record was
	// lost.
	if err := s.auditRepo.CommitBatch(ctx, stocks, audits); err != nil {
		s.logger.Error("Failed to commit feed batch", logger.ErrorField(err),
			logger.Field("files", len(audits)), logger.Field("observations", len(stocks)))
		return err
	}

	s.logger.Info("Feed batch ingested",
		logger.Field("files", len(audits)), logger.Field("observations", len(stocks)))

	s.refreshPriceIndex(ctx, stocks)
	return nil
}

// listFeedFiles returns the names of regular .csv files in the feed
// directory.
func (s *ingestionService) listFeedFiles() ([]string, error) {
	entries, err := os.ReadDir(s.feedDir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && strings.HasSuffix(entry.Name(), ".csv") {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}

// parseFeedFile reads one feed file into observation candidates. The
// header row must contain name and price columns; any malformed row fails
// the whole file.
func (s *ingestionService) parseFeedFile(path string) ([]entity.Stock, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("missing header row")
	}

	nameCol, priceCol := -1, -1
	for i, col := range records[0] {
		switch strings.TrimSpace(col) {
		case "name":
			nameCol = i
		case "price":
			priceCol = i
		}
	}
	if nameCol < 0 || priceCol < 0 {
		return nil, fmt.Errorf("header must contain name and price columns")
	}

	stocks := make([]entity.Stock, 0, len(records)-1)
	for i, record := range records[1:] {
		name := strings.TrimSpace(record[nameCol])
		if name == "" || len(name) > 10 {
			return nil, fmt.Errorf("row %d: invalid stock name %q", i+2, name)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(record[priceCol]))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid price: %w", i+2, err)
		}
		stocks = append(stocks, entity.Stock{Name: name, Price: price})
	}
	return stocks, nil
}

// refreshPriceIndex writes the newest committed observation per name into
// the price cache. Cache failures are logged; the catalog remains the
// source of truth.
func (s *ingestionService) refreshPriceIndex(ctx context.Context, stocks []entity.Stock) {
	latest := make(map[string]*entity.Stock, len(stocks))
	for i := range stocks {
		stock := &stocks[i]
		current, ok := latest[stock.Name]
		if !ok || !stock.CreatedAt.Before(current.CreatedAt) {
			latest[stock.Name] = stock
		}
	}

	for name, stock := range latest {
		if err := s.priceCache.SetLatest(ctx, stock); err != nil {
			s.logger.Warn("Failed to refresh price index", logger.ErrorField(err), logger.Field("stock", name))
		}
	}
}
