package statement

import "errors"

// Processing errors. Callers match them with errors.Is; every site that
// returns one wraps it with the offending row index, currency or date so
// the failure can be diagnosed.
var (
	// ErrDocumentUnreadable reports that no rows could be extracted from
	// the statement document at all.
	ErrDocumentUnreadable = errors.New("document unreadable")

	// ErrMalformedRow reports a row that could not be normalized into a
	// transaction. Rows are never skipped: dropping a transaction would
	// corrupt the totals.
	ErrMalformedRow = errors.New("malformed row")

	// ErrRateUnavailable reports that no historical rate exists for a
	// needed currency/date pair.
	ErrRateUnavailable = errors.New("exchange rate unavailable")

	// ErrUnknownCurrency reports a transaction currency with no fixed
	// rate and no lookup support.
	ErrUnknownCurrency = errors.New("unknown currency")
)
