package recorder

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dferreira/folio-backend/internal/domain"
)

// LocationInput selects an existing location by id, or describes a new one.
type LocationInput struct {
	ID          int64
	Name        string
	Description string
}

// AssetInput selects an existing asset by id, or describes a new one.
type AssetInput struct {
	ID           int64
	Type         string
	Name         string
	Symbol       string
	Description  string
	IsHarmonised bool
}

// MarketInput selects an existing market by id, or describes a new one.
type MarketInput struct {
	ID          int64
	Name        string
	Description string
}

// CurrencyInput selects an existing currency by id, or describes a new one.
type CurrencyInput struct {
	ID   int64
	Code string
	Name string
}

// DataSourceInput selects or describes the data source to attach, and at
// which level, when the resolved asset has none.
type DataSourceInput struct {
	ID     int64
	Source string
	Target domain.AttachTarget
}

// AssetMarketInput selects an existing asset market by id, or describes a
// new one together with its constituent parts.
type AssetMarketInput struct {
	ID          int64
	Name        string
	Description string
	Asset       AssetInput
	Market      MarketInput
	Currency    CurrencyInput
	DataSource  *DataSourceInput
}

// RecordTransactionInput is the full set of answers the UI collects for one
// recorded trade.
type RecordTransactionInput struct {
	Location    LocationInput
	AssetMarket AssetMarketInput
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	Date        string
}

// Service runs the transaction recording workflow: resolve or create the
// location, the asset market (and transitively asset, market, currency,
// location-currency link and data-source linkage), then persist the trade.
//
// The steps are not atomic. Entities resolved or created early stay
// persisted even when a later step fails; callers retrying simply select
// them instead of creating them again.
type Service struct {
	Locations    domain.LocationRepository
	Currencies   domain.CurrencyRepository
	Assets       domain.AssetRepository
	Markets      domain.MarketRepository
	AssetMarkets domain.AssetMarketRepository
	DataSources  domain.DataSourceRepository
	Transactions domain.TransactionRepository

	log zerolog.Logger
}

// NewService creates a new recording workflow service
func NewService(
	locations domain.LocationRepository,
	currencies domain.CurrencyRepository,
	assets domain.AssetRepository,
	markets domain.MarketRepository,
	assetMarkets domain.AssetMarketRepository,
	dataSources domain.DataSourceRepository,
	transactions domain.TransactionRepository,
	log zerolog.Logger,
) *Service {
	return &Service{
		Locations:    locations,
		Currencies:   currencies,
		Assets:       assets,
		Markets:      markets,
		AssetMarkets: assetMarkets,
		DataSources:  dataSources,
		Transactions: transactions,
		log:          log.With().Str("service", "recorder").Logger(),
	}
}

// RecordTransaction resolves all references and persists the trade,
// returning the new transaction id.
func (s *Service) RecordTransaction(ctx context.Context, input RecordTransactionInput) (int64, error) {
	locationID, err := s.resolveLocation(ctx, input.Location)
	if err != nil {
		return 0, err
	}

	assetMarketID, err := s.resolveAssetMarket(ctx, locationID, input.AssetMarket)
	if err != nil {
		return 0, err
	}

	tx := domain.Transaction{
		AssetMarketID: assetMarketID,
		Quantity:      input.Quantity,
		Price:         input.Price,
		Date:          input.Date,
		LocationID:    locationID,
	}
	if err := tx.Validate(); err != nil {
		return 0, err
	}

	id, err := s.Transactions.Create(ctx, tx)
	if err != nil {
		return 0, err
	}

	s.log.Info().
		Int64("transaction_id", id).
		Int64("asset_market_id", assetMarketID).
		Str("date", tx.Date).
		Msg("transaction recorded")
	return id, nil
}

func (s *Service) resolveLocation(ctx context.Context, input LocationInput) (int64, error) {
	if input.ID != 0 {
		return input.ID, nil
	}

	loc := domain.Location{Name: input.Name, Description: input.Description}
	if err := loc.Validate(); err != nil {
		return 0, err
	}
	return s.Locations.Create(ctx, input.Name, input.Description)
}

func (s *Service) resolveAssetMarket(ctx context.Context, locationID int64, input AssetMarketInput) (int64, error) {
	if input.ID != 0 {
		return input.ID, nil
	}

	assetID, err := s.resolveAsset(ctx, input.Asset)
	if err != nil {
		return 0, err
	}
	marketID, err := s.resolveMarket(ctx, input.Market)
	if err != nil {
		return 0, err
	}
	currencyID, err := s.resolveCurrency(ctx, input.Currency)
	if err != nil {
		return 0, err
	}

	am := domain.AssetMarket{
		Name:        input.Name,
		Description: input.Description,
		AssetID:     assetID,
		MarketID:    marketID,
		LocationID:  locationID,
		CurrencyID:  currencyID,
	}
	if err := am.Validate(); err != nil {
		return 0, err
	}

	assetMarketID, err := s.AssetMarkets.Create(ctx, am)
	if err != nil {
		return 0, err
	}

	if err := s.Locations.LinkCurrency(ctx, locationID, currencyID); err != nil {
		return 0, err
	}

	if err := s.ensureDataSource(ctx, assetID, assetMarketID, input.DataSource); err != nil {
		return 0, err
	}

	return assetMarketID, nil
}

func (s *Service) resolveAsset(ctx context.Context, input AssetInput) (int64, error) {
	if input.ID != 0 {
		return input.ID, nil
	}

	asset := domain.Asset{
		Type:         input.Type,
		Name:         input.Name,
		Symbol:       input.Symbol,
		Description:  input.Description,
		IsHarmonised: input.IsHarmonised,
	}
	if err := asset.Validate(); err != nil {
		return 0, err
	}
	return s.Assets.Create(ctx, asset)
}

func (s *Service) resolveMarket(ctx context.Context, input MarketInput) (int64, error) {
	if input.ID != 0 {
		return input.ID, nil
	}

	market := domain.Market{Name: input.Name, Description: input.Description}
	if err := market.Validate(); err != nil {
		return 0, err
	}
	return s.Markets.Create(ctx, input.Name, input.Description)
}

func (s *Service) resolveCurrency(ctx context.Context, input CurrencyInput) (int64, error) {
	if input.ID != 0 {
		return input.ID, nil
	}

	currency := domain.Currency{Code: input.Code, Name: input.Name}
	if err := currency.Validate(); err != nil {
		return 0, err
	}
	return s.Currencies.Create(ctx, input.Code, input.Name)
}

// ensureDataSource checks whether the asset already carries a source; if not,
// the input must say which source to attach and at which level. The linkage
// is mutually exclusive between the two levels and the repository enforces it.
func (s *Service) ensureDataSource(ctx context.Context, assetID, assetMarketID int64, input *DataSourceInput) error {
	hasSource, err := s.Assets.HasDataSource(ctx, assetID)
	if err != nil {
		return err
	}
	if hasSource {
		return nil
	}

	if input == nil {
		return domain.ErrMissingDataSource
	}
	if !input.Target.Valid() {
		return domain.ErrInvalidAttachTarget
	}

	sourceID := input.ID
	if sourceID == 0 {
		if input.Source == "" {
			return fmt.Errorf("data source label cannot be empty: %w", domain.ErrMissingDataSource)
		}
		sourceID, err = s.DataSources.Create(ctx, input.Source)
		if err != nil {
			return err
		}
	}

	return s.AssetMarkets.AttachDataSource(ctx, assetID, assetMarketID, sourceID, input.Target)
}
