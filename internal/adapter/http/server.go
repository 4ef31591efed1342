package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dferreira/folio-backend/internal/domain"
	"github.com/dferreira/folio-backend/internal/usecase/recorder"
	"github.com/dferreira/folio-backend/internal/usecase/report"
)

// Server is the JSON boundary the UI talks to: one route per repository
// operation plus the two views and the recording workflow.
type Server struct {
	DataSources  domain.DataSourceRepository
	Locations    domain.LocationRepository
	Currencies   domain.CurrencyRepository
	Assets       domain.AssetRepository
	Markets      domain.MarketRepository
	AssetMarkets domain.AssetMarketRepository
	Transactions domain.TransactionRepository
	Accounts     domain.AccountRepository
	Rates        domain.ExchangeRateRepository
	Settings     domain.SettingRepository

	Recorder *recorder.Service
	Reporter *report.Service

	log zerolog.Logger
}

// NewServer creates a new HTTP server adapter
func NewServer(
	dataSources domain.DataSourceRepository,
	locations domain.LocationRepository,
	currencies domain.CurrencyRepository,
	assets domain.AssetRepository,
	markets domain.MarketRepository,
	assetMarkets domain.AssetMarketRepository,
	transactions domain.TransactionRepository,
	accounts domain.AccountRepository,
	rates domain.ExchangeRateRepository,
	settings domain.SettingRepository,
	recorderSvc *recorder.Service,
	reporterSvc *report.Service,
	log zerolog.Logger,
) *Server {
	return &Server{
		DataSources:  dataSources,
		Locations:    locations,
		Currencies:   currencies,
		Assets:       assets,
		Markets:      markets,
		AssetMarkets: assetMarkets,
		Transactions: transactions,
		Accounts:     accounts,
		Rates:        rates,
		Settings:     settings,
		Recorder:     recorderSvc,
		Reporter:     reporterSvc,
		log:          log.With().Str("adapter", "http").Logger(),
	}
}

// Router builds the gin engine with all routes registered under /api/v1,
// guarded by the static-token auth middleware.
func (s *Server) Router(apiToken string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(s.log))

	api := r.Group("/api/v1", TokenAuth(apiToken))

	api.GET("/data-sources", s.listDataSources)
	api.POST("/data-sources", s.createDataSource)
	api.GET("/data-sources/:id", s.getDataSource)

	api.GET("/locations", s.listLocations)
	api.POST("/locations", s.createLocation)
	api.GET("/locations/:id", s.getLocation)
	api.GET("/locations/:id/asset-markets", s.listAssetMarketsByLocation)
	api.GET("/locations/:id/currency", s.getLocationCurrency)

	api.GET("/currencies", s.listCurrencies)
	api.POST("/currencies", s.createCurrency)
	api.GET("/currencies/:id", s.getCurrency)

	api.GET("/markets", s.listMarkets)
	api.POST("/markets", s.createMarket)
	api.GET("/markets/:id", s.getMarket)

	api.GET("/assets", s.listAssets)
	api.POST("/assets", s.createAsset)
	api.GET("/assets/:id", s.getAsset)
	api.GET("/assets/:id/data-source", s.getAssetDataSource)

	api.GET("/asset-markets/:id", s.getAssetMarket)
	api.GET("/asset-markets/:id/currency", s.getAssetMarketCurrency)
	api.GET("/asset-markets/:id/data-source", s.getAssetMarketDataSource)

	api.GET("/transactions", s.listLedger)
	api.POST("/transactions", s.recordTransaction)
	api.GET("/overview", s.assetOverview)

	api.GET("/accounts", s.listAccounts)
	api.POST("/accounts", s.createAccount)
	api.GET("/accounts/:id", s.getAccount)
	api.GET("/accounts/:id/balances", s.listAccountBalances)
	api.POST("/accounts/:id/balances", s.addAccountBalance)

	api.POST("/exchange-rates", s.addExchangeRate)
	api.GET("/exchange-rates/latest", s.latestExchangeRate)

	api.GET("/settings", s.listSettings)
	api.GET("/settings/:key", s.getSetting)
	api.PUT("/settings/:key", s.putSetting)

	return r
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// fail maps domain errors to status codes: constraint violations are 409,
// validation and workflow input problems 422, anything else 500.
func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrConstraint):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrMissingDataSource),
		errors.Is(err, domain.ErrInvalidAttachTarget):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		s.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}

// --- data sources ---

func (s *Server) listDataSources(c *gin.Context) {
	sources, err := s.DataSources.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sources)
}

func (s *Server) createDataSource(c *gin.Context) {
	var req struct {
		Source string `json:"source" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := s.DataSources.Create(c.Request.Context(), req.Source)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) getDataSource(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ds, err := s.DataSources.GetByID(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if ds == nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, ds)
}

// --- locations ---

func (s *Server) listLocations(c *gin.Context) {
	locations, err := s.Locations.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, locations)
}

func (s *Server) createLocation(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := s.Locations.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) getLocation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	loc, err := s.Locations.GetByID(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if loc == nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, loc)
}

func (s *Server) listAssetMarketsByLocation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	markets, err := s.AssetMarkets.ListByLocation(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, markets)
}

func (s *Server) getLocationCurrency(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	currencyID, err := s.Locations.CurrencyID(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if currencyID == nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"currency_id": *currencyID})
}

// --- currencies ---

func (s *Server) listCurrencies(c *gin.Context) {
	currencies, err := s.Currencies.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, currencies)
}

func (s *Server) createCurrency(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := s.Currencies.Create(c.Request.Context(), req.Code, req.Name)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) getCurrency(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	currency, err := s.Currencies.GetByID(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if currency == nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, currency)
}

// --- markets ---

func (s *Server) listMarkets(c *gin.Context) {
	markets, err := s.Markets.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, markets)
}

func (s *Server) createMarket(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := s.Markets.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) getMarket(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	market, err := s.Markets.GetByID(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if market == nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, market)
}

// --- assets ---

func (s *Server) listAssets(c *gin.Context) {
	assets, err := s.Assets.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, assets)
}

func (s *Server) createAsset(c *gin.Context) {
	var req struct {
		Type         string `json:"type" binding:"required"`
		Name         string `json:"name" binding:"required"`
		Symbol       string `json:"symbol"`
		Description  string `json:"description"`
		IsHarmonised bool   `json:"is_harmonised"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := s.Assets.Create(c.Request.Context(), domain.Asset{
		Type:         req.Type,
		Name:         req.Name,
		Symbol:       req.Symbol,
		Description:  req.Description,
		IsHarmonised: req.IsHarmonised,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) getAsset(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	asset, err := s.Assets.GetByID(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if asset == nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, asset)
}

func (s *Server) getAssetDataSource(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ds, err := s.Assets.DataSource(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if ds == nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, ds)
}

// --- asset markets ---

func (s *Server) getAssetMarket(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	am, err := s.AssetMarkets.GetByID(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if am == nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, am)
}

func (s *Server) getAssetMarketCurrency(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	currency, err := s.Reporter.AssetMarketCurrency(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if currency == nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, currency)
}

func (s *Server) getAssetMarketDataSource(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ds, err := s.AssetMarkets.DataSource(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if ds == nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, ds)
}

// --- transactions and views ---

type dataSourceChoice struct {
	ID     int64  `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type recordTransactionRequest struct {
	Location struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"location"`
	AssetMarket struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Asset       struct {
			ID           int64  `json:"id"`
			Type         string `json:"type"`
			Name         string `json:"name"`
			Symbol       string `json:"symbol"`
			Description  string `json:"description"`
			IsHarmonised bool   `json:"is_harmonised"`
		} `json:"asset"`
		Market struct {
			ID          int64  `json:"id"`
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"market"`
		Currency struct {
			ID   int64  `json:"id"`
			Code string `json:"code"`
			Name string `json:"name"`
		} `json:"currency"`
		DataSource *dataSourceChoice `json:"data_source"`
	} `json:"asset_market"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Date     string          `json:"date" binding:"required"`
}

func (s *Server) recordTransaction(c *gin.Context) {
	var req recordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := recorder.RecordTransactionInput{
		Location: recorder.LocationInput{
			ID:          req.Location.ID,
			Name:        req.Location.Name,
			Description: req.Location.Description,
		},
		AssetMarket: recorder.AssetMarketInput{
			ID:          req.AssetMarket.ID,
			Name:        req.AssetMarket.Name,
			Description: req.AssetMarket.Description,
			Asset: recorder.AssetInput{
				ID:           req.AssetMarket.Asset.ID,
				Type:         req.AssetMarket.Asset.Type,
				Name:         req.AssetMarket.Asset.Name,
				Symbol:       req.AssetMarket.Asset.Symbol,
				Description:  req.AssetMarket.Asset.Description,
				IsHarmonised: req.AssetMarket.Asset.IsHarmonised,
			},
			Market: recorder.MarketInput{
				ID:          req.AssetMarket.Market.ID,
				Name:        req.AssetMarket.Market.Name,
				Description: req.AssetMarket.Market.Description,
			},
			Currency: recorder.CurrencyInput{
				ID:   req.AssetMarket.Currency.ID,
				Code: req.AssetMarket.Currency.Code,
				Name: req.AssetMarket.Currency.Name,
			},
		},
		Quantity: req.Quantity,
		Price:    req.Price,
		Date:     req.Date,
	}
	if ds := req.AssetMarket.DataSource; ds != nil {
		input.AssetMarket.DataSource = &recorder.DataSourceInput{
			ID:     ds.ID,
			Source: ds.Source,
			Target: domain.AttachTarget(ds.Target),
		}
	}

	id, err := s.Recorder.RecordTransaction(c.Request.Context(), input)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) listLedger(c *gin.Context) {
	entries, err := s.Reporter.Ledger(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) assetOverview(c *gin.Context) {
	positions, err := s.Reporter.AssetOverview(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, positions)
}

// --- accounts ---

func (s *Server) listAccounts(c *gin.Context) {
	accounts, err := s.Accounts.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (s *Server) createAccount(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
		Type string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := s.Accounts.Create(c.Request.Context(), req.Name, req.Type)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) getAccount(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	account, err := s.Accounts.GetByID(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if account == nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (s *Server) listAccountBalances(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	balances, err := s.Accounts.Balances(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, balances)
}

func (s *Server) addAccountBalance(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req struct {
		CurrencyID int64           `json:"currency_id" binding:"required"`
		Amount     decimal.Decimal `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := s.Accounts.AddBalance(c.Request.Context(), domain.AccountBalance{
		AccountID:  id,
		CurrencyID: req.CurrencyID,
		Amount:     req.Amount,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// --- exchange rates ---

func (s *Server) addExchangeRate(c *gin.Context) {
	var req struct {
		Date           string          `json:"date" binding:"required"`
		CurrencyFromID int64           `json:"currency_from_id" binding:"required"`
		CurrencyToID   int64           `json:"currency_to_id" binding:"required"`
		Rate           decimal.Decimal `json:"rate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := s.Rates.Add(c.Request.Context(), domain.ExchangeRate{
		Date:           req.Date,
		CurrencyFromID: req.CurrencyFromID,
		CurrencyToID:   req.CurrencyToID,
		Rate:           req.Rate,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (s *Server) latestExchangeRate(c *gin.Context) {
	from, err1 := strconv.ParseInt(c.Query("from"), 10, 64)
	to, err2 := strconv.ParseInt(c.Query("to"), 10, 64)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to currency ids are required"})
		return
	}
	rate, err := s.Rates.Latest(c.Request.Context(), from, to)
	if err != nil {
		s.fail(c, err)
		return
	}
	if rate == nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, rate)
}

// --- settings ---

func (s *Server) listSettings(c *gin.Context) {
	settings, err := s.Settings.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) getSetting(c *gin.Context) {
	value, err := s.Settings.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		s.fail(c, err)
		return
	}
	if value == "" {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": c.Param("key"), "value": value})
}

func (s *Server) putSetting(c *gin.Context) {
	var req struct {
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.Settings.Put(c.Request.Context(), c.Param("key"), req.Value); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
