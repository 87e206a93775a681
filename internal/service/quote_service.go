package service

import (
	"context"
	"log"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/tvandenberg/portfolio-tracker/internal/marketdata"
	"github.com/tvandenberg/portfolio-tracker/internal/model"
	"github.com/tvandenberg/portfolio-tracker/internal/repository"
)

// refreshConcurrency bounds the number of simultaneous provider requests
// during a refresh pass.
const refreshConcurrency = 4

// QuoteService maintains the quote cache: it fans out to the market-data
// provider for every symbol currently held and upserts the results. The
// valuation engine only ever reads the cache; it never fetches.
type QuoteService struct {
	quoteRepo    *repository.QuoteRepository
	positionRepo *repository.PositionRepository
	client       marketdata.Client
}

// NewQuoteService creates a new QuoteService with the provided dependencies.
func NewQuoteService(
	quoteRepo *repository.QuoteRepository,
	positionRepo *repository.PositionRepository,
	client marketdata.Client,
) *QuoteService {
	return &QuoteService{
		quoteRepo:    quoteRepo,
		positionRepo: positionRepo,
		client:       client,
	}
}

// GetQuote returns the cached quote for a symbol.
func (s *QuoteService) GetQuote(symbol string) (model.Quote, error) {
	return s.quoteRepo.GetQuote(symbol)
}

// RefreshAll fetches fresh quotes for every distinct symbol held in any
// position and upserts them into the cache. Fetches run concurrently,
// bounded by refreshConcurrency.
//
// A failing symbol is logged and skipped rather than failing the pass:
// quote refresh interleaves arbitrarily with user edits, and a stale cached
// quote is an accepted state — the next pass will retry. Returns the number
// of symbols refreshed.
func (s *QuoteService) RefreshAll(ctx context.Context) (int, error) {
	symbols, err := s.positionRepo.GetDistinctSymbols()
	if err != nil {
		return 0, err
	}

	var refreshed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(refreshConcurrency)

	for _, symbol := range symbols {
		symbol := symbol
		g.Go(func() error {
			quote, err := s.client.FetchQuote(ctx, symbol)
			if err != nil {
				log.Printf("quote refresh: skipping %s: %v", symbol, err)
				return nil
			}
			if err := s.quoteRepo.UpsertQuote(ctx, &quote); err != nil {
				return err
			}
			refreshed.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(refreshed.Load()), err
	}

	return int(refreshed.Load()), nil
}
