package report

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dferreira/folio-backend/internal/domain"
)

// Service exposes the user-facing views: the transaction ledger, the asset
// overview, and the currency lookup the price prompt needs.
type Service struct {
	Reports      domain.ReportRepository
	AssetMarkets domain.AssetMarketRepository
	Currencies   domain.CurrencyRepository

	log zerolog.Logger
}

// NewService creates a new report service
func NewService(
	reports domain.ReportRepository,
	assetMarkets domain.AssetMarketRepository,
	currencies domain.CurrencyRepository,
	log zerolog.Logger,
) *Service {
	return &Service{
		Reports:      reports,
		AssetMarkets: assetMarkets,
		Currencies:   currencies,
		log:          log.With().Str("service", "report").Logger(),
	}
}

// Ledger returns the full transaction listing, fully resolved rows only.
func (s *Service) Ledger(ctx context.Context) ([]domain.LedgerEntry, error) {
	return s.Reports.Ledger(ctx)
}

// AssetOverview returns owned quantity per asset per location.
func (s *Service) AssetOverview(ctx context.Context) ([]domain.AssetPosition, error) {
	return s.Reports.AssetOverview(ctx)
}

// AssetMarketCurrency returns the currency an asset market is denominated
// in, nil if the asset market does not exist.
func (s *Service) AssetMarketCurrency(ctx context.Context, assetMarketID int64) (*domain.Currency, error) {
	currencyID, err := s.AssetMarkets.CurrencyID(ctx, assetMarketID)
	if err != nil {
		return nil, err
	}
	if currencyID == nil {
		return nil, nil
	}
	return s.Currencies.GetByID(ctx, *currencyID)
}
