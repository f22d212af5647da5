package feedgen

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"tradex/internal/api/repository"
)

const fileNameLength = 10

var letters = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// Options controls one generation run.
type Options struct {
	Count            int
	MinPrice         float64
	MaxPrice         float64
	UseExistingNames bool
}

// Generator writes random price-feed CSV files for the ingestion pipeline
// to pick up. Test-data utility; it never touches the catalog itself.
type Generator struct {
	feedDir   string
	stockRepo repository.StockRepository
}

// New creates a generator writing into feedDir.
func New(feedDir string, stockRepo repository.StockRepository) *Generator {
	return &Generator{feedDir: feedDir, stockRepo: stockRepo}
}

// Generate writes one CSV feed file and returns its name. With
// UseExistingNames the file re-quotes every name already in the catalog;
// otherwise it invents Count random 3-4 letter names.
func (g *Generator) Generate(ctx context.Context, opts Options) (string, error) {
	if err := os.MkdirAll(g.feedDir, 0o755); err != nil {
		return "", err
	}

	var names []string
	if opts.UseExistingNames {
		existing, err := g.stockRepo.FindNames(ctx)
		if err != nil {
			return "", err
		}
		if len(existing) == 0 {
			return "", fmt.Errorf("no existing stock names to quote")
		}
		names = existing
	} else {
		names = make([]string, 0, opts.Count)
		for i := 0; i < opts.Count; i++ {
			names = append(names, RandomStockName())
		}
	}

	fileName := randomString(fileNameLength) + ".csv"
	f, err := os.Create(filepath.Join(g.feedDir, fileName))
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"name", "price"}); err != nil {
		return "", err
	}
	for _, name := range names {
		price := RandomStockPrice(opts.MinPrice, opts.MaxPrice)
		if err := w.Write([]string{name, strconv.FormatFloat(price, 'f', 6, 64)}); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return fileName, nil
}

// RandomStockName returns a random 3 or 4 letter uppercase name.
func RandomStockName() string {
	length := 3 + rand.Intn(2)
	return randomString(length)
}

// RandomStockPrice returns a price uniform in [min, max], rounded to six
// decimal places by the caller's formatting.
func RandomStockPrice(min, max float64) float64 {
	return min + rand.Float64()*(max-min)
}

func randomString(n int) string {
	runes := make([]rune, n)
	for i := range runes {
		runes[i] = letters[rand.Intn(len(letters))]
	}
	return string(runes)
}
