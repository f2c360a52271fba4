package stockbook

import "errors"

var (
	// ErrInvalidDate is returned for unparseable dates, dates before the exchange
	// inception, non-trading days where one is required and reversed windows.
	ErrInvalidDate = errors.New("invalid date")
	// ErrUnknownTicker is returned when a symbol is not tradable or not in the ledger.
	ErrUnknownTicker = errors.New("unknown ticker")
	// ErrOverdraft is returned when selling more shares than held.
	ErrOverdraft = errors.New("overdraft")
	// ErrNoTradingData is returned by price gateways when there is no bar for a day.
	ErrNoTradingData = errors.New("no trading data")
	// ErrPriceUnavailable is returned when a price cannot be resolved at all.
	ErrPriceUnavailable = errors.New("price unavailable")
	// ErrMalformedTimeline reports a timeline that cannot be walked. It is always
	// a programming error.
	ErrMalformedTimeline = errors.New("malformed timeline")
	// ErrMissingArgument is returned when neither a price nor a date was given.
	ErrMissingArgument = errors.New("missing argument")
	// ErrInvalidQuantity is returned when an amount is not a positive integer.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrInvalidPrice is returned for negative prices and for prices in another
	// currency than the quotes.
	ErrInvalidPrice = errors.New("invalid price")
)
