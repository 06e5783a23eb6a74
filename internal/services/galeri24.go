package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/wsantoso/gold-tracker/internal/metrics"
	"github.com/wsantoso/gold-tracker/internal/models"
)

const (
	galeri24DefaultURL = "https://galeri24.co.id/harga-emas"
	galeri24Timeout    = 10 * time.Second

	// The price page blocks default Go user agents.
	galeri24UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// Snapshots stay fresh for the same window the clients use to refresh
	// their ticker, so repeated /api/prices and /api/portfolio calls do not
	// hammer the upstream page.
	priceCacheTTL = 5 * time.Minute
)

var (
	ErrSectionNotFound   = errors.New("could not find 'GALERI 24' section on the page")
	ErrContainerNotFound = errors.New("could not find the gold price container")
)

// PriceService scrapes current gold prices from the Galeri24 price page.
type PriceService struct {
	client  *http.Client
	url     string
	limiter *rate.Limiter
	cache   *expirable.LRU[string, *models.PriceSnapshot]
	now     func() time.Time
}

// NewPriceService creates a price service for the given page URL.
// An empty url selects the default Galeri24 page.
func NewPriceService(url string) *PriceService {
	if url == "" {
		url = galeri24DefaultURL
	}
	return &PriceService{
		client: &http.Client{
			Timeout: galeri24Timeout,
		},
		url:     url,
		limiter: rate.NewLimiter(rate.Every(10*time.Second), 2),
		cache:   expirable.NewLRU[string, *models.PriceSnapshot](4, nil, priceCacheTTL),
		now:     time.Now,
	}
}

// Current returns the latest price snapshot, served from the cache when a
// fresh one exists.
func (s *PriceService) Current(ctx context.Context) (*models.PriceSnapshot, error) {
	if snap, ok := s.cache.Get(s.url); ok {
		metrics.PriceCacheHitsTotal.Inc()
		return snap, nil
	}
	return s.Refresh(ctx)
}

// Refresh fetches and parses the price page, bypassing the cache. A
// successful snapshot replaces the cached one.
func (s *PriceService) Refresh(ctx context.Context) (*models.PriceSnapshot, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	metrics.PriceFetchesTotal.Inc()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		metrics.PriceFetchErrorsTotal.Inc()
		return nil, err
	}
	req.Header.Set("User-Agent", galeri24UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		metrics.PriceFetchErrorsTotal.Inc()
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.PriceFetchErrorsTotal.Inc()
		return nil, fmt.Errorf("price page returned status %d", resp.StatusCode)
	}

	table, err := ParsePriceTable(resp.Body)
	if err != nil {
		metrics.PriceFetchErrorsTotal.Inc()
		return nil, err
	}

	snap := &models.PriceSnapshot{
		LastUpdate: s.now().Format(time.RFC3339),
		Data:       table,
	}
	s.cache.Add(s.url, snap)
	return snap, nil
}

// ParsePriceTable extracts the GALERI 24 denomination table from the price
// page HTML. Rows carry three columns: weight, sell price, buy price. The
// result is ordered by ascending weight.
func ParsePriceTable(r io.Reader) (models.PriceTable, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	section := doc.Find(`div[id='GALERI 24']`)
	if section.Length() == 0 {
		return nil, ErrSectionNotFound
	}

	container := section.Find("div.grid.divide-neutral-200.border-neutral-200").First()
	if container.Length() == 0 {
		return nil, ErrContainerNotFound
	}

	var table models.PriceTable
	container.Find("div.grid.grid-cols-5.divide-x").Each(func(_ int, row *goquery.Selection) {
		// Weight sits in the narrow column, sell and buy in the wide ones.
		var cols []string
		row.Find("div.p-3.col-span-1.whitespace-nowrap").Each(func(_ int, col *goquery.Selection) {
			cols = append(cols, strings.TrimSpace(col.Text()))
		})
		row.Find("div.p-3.col-span-2.whitespace-nowrap").Each(func(_ int, col *goquery.Selection) {
			cols = append(cols, strings.TrimSpace(col.Text()))
		})
		if len(cols) != 3 {
			return
		}

		weight, err := decimal.NewFromString(cols[0])
		if err != nil {
			return
		}
		sell, err := cleanPrice(cols[1])
		if err != nil {
			return
		}
		buy, err := cleanPrice(cols[2])
		if err != nil {
			return
		}

		table = append(table, models.Denomination{
			Label:  weight.String(),
			Weight: weight,
			PricePair: models.PricePair{
				Sell: sell.InexactFloat64(),
				Buy:  buy.InexactFloat64(),
			},
		})
	})

	sort.Slice(table, func(i, j int) bool {
		return table[i].Weight.LessThan(table[j].Weight)
	})
	return table, nil
}

// cleanPrice parses a quoted price like "Rp1.041.000" into a decimal.
func cleanPrice(s string) (decimal.Decimal, error) {
	s = strings.NewReplacer("Rp", "", ".", "", ",", "", " ", "").Replace(s)
	return decimal.NewFromString(strings.TrimSpace(s))
}
