package pricing

import (
	"fmt"
	"log"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/apperrors"
	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/repository"
)

// batchSize limits how many coin IDs go into one API request.
const batchSize = 25

// Service keeps the asset_price cache fresh and exposes a lookup function
// for the tax engine. Lookups only ever read the cache; network fetches
// happen on the refresh schedule.
type Service struct {
	client          *Client
	priceRepo       *repository.PriceRepository
	transactionRepo *repository.TransactionRepository
}

// NewService creates a pricing Service.
func NewService(client *Client, priceRepo *repository.PriceRepository, transactionRepo *repository.TransactionRepository) *Service {
	return &Service{
		client:          client,
		priceRepo:       priceRepo,
		transactionRepo: transactionRepo,
	}
}

// Refresh fetches current prices for every asset present in the transaction
// table and upserts them into the cache. Batches are fetched concurrently;
// a failed batch fails the refresh but already-stored prices remain usable.
func (s *Service) Refresh() error {
	assets, err := s.transactionRepo.DistinctAssets()
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToRefreshPrices, err)
	}
	if len(assets) == 0 {
		return nil
	}

	var (
		group errgroup.Group
		mu    sync.Mutex
	)
	group.SetLimit(4)

	fetched := make(map[string]decimal.Decimal)
	for start := 0; start < len(assets); start += batchSize {
		end := min(start+batchSize, len(assets))
		batch := assets[start:end]

		group.Go(func() error {
			prices, err := s.client.CurrentPrices(batch)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			for symbol, price := range prices {
				fetched[symbol] = price
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToRefreshPrices, err)
	}

	for symbol, price := range fetched {
		if err := s.priceRepo.UpsertPrice(symbol, price); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrFailedToRefreshPrices, err)
		}
	}

	log.Printf("Refreshed prices for %d of %d assets", len(fetched), len(assets))
	return nil
}

// Lookup returns the engine-facing price function, backed by the cache. A
// miss surfaces as ErrPriceLookupFailure, which the engine recovers from
// locally per asset.
func (s *Service) Lookup() func(asset string) (decimal.Decimal, error) {
	return func(asset string) (decimal.Decimal, error) {
		price, err := s.priceRepo.GetPrice(asset)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrPriceLookupFailure, asset)
		}
		return price, nil
	}
}
