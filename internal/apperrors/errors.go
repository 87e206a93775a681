package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrPortfolioNotFound indicates that a portfolio with the given ID does not exist.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrPositionNotFound indicates that a position with the given ID does not exist.
	ErrPositionNotFound = errors.New("position not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrQuoteNotFound indicates that no cached quote exists for a symbol.
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrExchangeRateNotFound indicates no rate is stored for a currency code.
	ErrExchangeRateNotFound = errors.New("exchange rate for currency not found")

	// ErrSettingNotFound indicates that a setting key has no stored value.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrLastPortfolio indicates that the only remaining portfolio cannot be
	// deleted: a user with any portfolios must always keep at least one.
	ErrLastPortfolio = errors.New("cannot delete the last portfolio")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrInvalidMetric indicates an unknown allocation metric name.
	ErrInvalidMetric = errors.New("invalid allocation metric")

	// ErrInvalidCurrency indicates a missing or malformed currency code.
	ErrInvalidCurrency = errors.New("invalid currency code")

	// ErrAPIKeyMissing indicates the market-data provider needs an API key
	// that has not been configured.
	ErrAPIKeyMissing = errors.New("market data API key not configured")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data, as opposed to missing entities or validation issues.
var (
	ErrFailedToRetrievePortfolios   = errors.New("failed to retrieve portfolios")
	ErrFailedToRetrievePositions    = errors.New("failed to retrieve positions")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToGetSummary           = errors.New("failed to get portfolio summary")
	ErrFailedToGetAllocation        = errors.New("failed to get portfolio allocation")
	ErrFailedToRefreshQuotes        = errors.New("failed to refresh quotes")
	ErrFailedToRefreshRates         = errors.New("failed to refresh exchange rates")
	ErrFailedToRetrieveRates        = errors.New("failed to retrieve exchange rates")
	ErrFailedToUpdateRate           = errors.New("failed to update exchange rate")
	ErrFailedToStoreSetting         = errors.New("failed to store setting")
)
