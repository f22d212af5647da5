package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tradex/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFeedFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func newIngestionFixture(t *testing.T) (IngestionService, *fakeFeedAuditRepo, *fakePriceCache, string) {
	t.Helper()
	dir := t.TempDir()
	auditRepo := newFakeFeedAuditRepo()
	cache := newFakePriceCache()
	svc := NewIngestionService(dir, auditRepo, cache, logger.NewNop())
	return svc, auditRepo, cache, dir
}

func TestIngest_CommitsObservationsAndAudits(t *testing.T) {
	svc, auditRepo, cache, dir := newIngestionFixture(t)
	writeFeedFile(t, dir, "feed1.csv", "name,price\nAAA,45.123456\nBBB,67.000000\n")

	require.NoError(t, svc.Ingest(context.Background()))

	require.Len(t, auditRepo.committed, 2)
	assert.Equal(t, "AAA", auditRepo.committed[0].Name)
	assert.True(t, auditRepo.committed[0].Price.Equal(decimal.RequireFromString("45.123456")))
	assert.Contains(t, auditRepo.processed, "feed1.csv")

	cached, err := cache.GetLatest(context.Background(), "BBB")
	require.NoError(t, err)
	assert.True(t, cached.Price.Equal(decimal.RequireFromString("67.000000")))
}

func TestIngest_SecondRunIsIdempotent(t *testing.T) {
	svc, auditRepo, _, dir := newIngestionFixture(t)
	writeFeedFile(t, dir, "feed1.csv", "name,price\nAAA,45.123456\nBBB,67.000000\n")

	require.NoError(t, svc.Ingest(context.Background()))
	require.NoError(t, svc.Ingest(context.Background()))

	assert.Len(t, auditRepo.committed, 2, "re-running over the same directory must append nothing")
	assert.Len(t, auditRepo.processed, 1)
}

func TestIngest_MalformedFileAbortsOnlyThatFile(t *testing.T) {
	svc, auditRepo, _, dir := newIngestionFixture(t)
	writeFeedFile(t, dir, "bad.csv", "name,price\nAAA,not-a-price\n")
	writeFeedFile(t, dir, "good.csv", "name,price\nCCC,10.000000\n")

	require.NoError(t, svc.Ingest(context.Background()))

	require.Len(t, auditRepo.committed, 1)
	assert.Equal(t, "CCC", auditRepo.committed[0].Name)
	assert.Contains(t, auditRepo.processed, "good.csv")
	assert.NotContains(t, auditRepo.processed, "bad.csv", "a failed file must not be marked audited")
}

func TestIngest_RejectsBadHeaderAndLongNames(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing price column", "name\nAAA\n"},
		{"empty file", ""},
		{"name too long", "name,price\nTOOLONGNAME,1.000000\n"},
		{"empty name", "name,price\n,1.000000\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, auditRepo, _, dir := newIngestionFixture(t)
			writeFeedFile(t, dir, "feed.csv", tt.content)

			require.NoError(t, svc.Ingest(context.Background()))

			assert.Empty(t, auditRepo.committed)
			assert.Empty(t, auditRepo.processed)
		})
	}
}

func TestIngest_CommitFailureLeavesNothingAudited(t *testing.T) {
	svc, auditRepo, cache, dir := newIngestionFixture(t)
	writeFeedFile(t, dir, "feed.csv", "name,price\nAAA,1.000000\n")
	auditRepo.commitErr = errors.New("connection reset")

	err := svc.Ingest(context.Background())

	assert.Error(t, err)
	assert.Empty(t, auditRepo.processed)
	_, cacheErr := cache.GetLatest(context.Background(), "AAA")
	assert.Error(t, cacheErr, "price index must not be refreshed on a failed commit")
}

func TestIngest_IgnoresNonCSVFiles(t *testing.T) {
	svc, auditRepo, _, dir := newIngestionFixture(t)
	writeFeedFile(t, dir, "notes.txt", "hello")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0o755))

	require.NoError(t, svc.Ingest(context.Background()))

	assert.Empty(t, auditRepo.committed)
	assert.Empty(t, auditRepo.processed)
}

func TestIngest_EmptyDirectoryIsANoOp(t *testing.T) {
	svc, auditRepo, _, _ := newIngestionFixture(t)

	require.NoError(t, svc.Ingest(context.Background()))

	assert.Empty(t, auditRepo.committed)
}

func TestIngest_LatestPerNameWinsInPriceIndex(t *testing.T) {
	svc, _, cache, dir := newIngestionFixture(t)
	writeFeedFile(t, dir, "feed.csv", "name,price\nAAA,1.000000\nAAA,2.000000\n")

	require.NoError(t, svc.Ingest(context.Background()))

	cached, err := cache.GetLatest(context.Background(), "AAA")
	require.NoError(t, err)
	assert.True(t, cached.Price.Equal(decimal.RequireFromString("2.000000")))
}
