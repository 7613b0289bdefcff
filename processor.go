package statement

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// A RowExtractor extracts the raw transaction rows from a statement
// document, in document order. A document that yields no rows at all
// must fail with an error wrapping ErrDocumentUnreadable.
type RowExtractor interface {
	Extract(ctx context.Context, r io.Reader) ([]RawRow, error)
}

// Processor drives the whole pipeline for one document: extract rows,
// normalize each, convert and aggregate. It only sequences the steps and
// translates collaborator errors, it holds no business logic of its own.
type Processor struct {
	extractor RowExtractor
	converter *Converter
}

// NewProcessor returns a Processor reading rows with the given extractor
// and rates with the given source.
func NewProcessor(extractor RowExtractor, source RateSource) *Processor {
	return &Processor{extractor: extractor, converter: NewConverter(source)}
}

// Process builds the report for one statement document.
func (p *Processor) Process(ctx context.Context, r io.Reader) (*Result, error) {
	rows, err := p.extractor.Extract(ctx, r)
	if err != nil {
		if errors.Is(err, ErrDocumentUnreadable) ||
			errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("extracting rows: %v: %w", err, ErrDocumentUnreadable)
	}

	transactions := make([]Transaction, 0, len(rows))
	for i, row := range rows {
		t, err := Normalize(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		transactions = append(transactions, t)
	}

	return Aggregate(ctx, p.converter, transactions)
}
