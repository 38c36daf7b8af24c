// Package history reads the raw purchase rows of completed orders. Rows live
// in a single append-only list, so the row cap is a plain LRANGE bound.
package history

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/kasuga-cloud/cartrec/internal/domain"
)

// DefaultRowLimit caps how many rows one recommendation reads. The scoring
// core tolerates a partial result set, so the cap trades recall for cost.
const DefaultRowLimit = 1000

// rowSeparator delimits the fields of an encoded purchase row.
const rowSeparator = "|"

// store is the consumer interface for purchase rows (ISP).
type store interface {
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
}

// Repo implements usecase/recommend.HistoryReader.
type Repo struct {
	store    store
	rowLimit int
}

// New creates a history repository. rowLimit <= 0 falls back to DefaultRowLimit.
func New(s store, rowLimit int) *Repo {
	if rowLimit <= 0 {
		rowLimit = DefaultRowLimit
	}
	return &Repo{store: s, rowLimit: rowLimit}
}

// ListCustomerPurchaseRows returns up to the configured row limit of purchase
// rows, oldest first. Rows that fail to decode are skipped: one corrupt entry
// must not poison the whole snapshot.
func (r *Repo) ListCustomerPurchaseRows(ctx context.Context) ([]domain.PurchaseRow, error) {
	raw, err := r.store.LRange(ctx, RowsKey(), 0, int64(r.rowLimit)-1)
	if err != nil {
		return nil, fmt.Errorf("lrange purchase rows: %w", err)
	}

	rows := make([]domain.PurchaseRow, 0, len(raw))
	for _, s := range raw {
		row, ok := DecodeRow(s)
		if !ok {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// RowsKey returns the Redis key of the purchase-row list: cartrec:history:rows.
func RowsKey() string {
	return domain.KeyPrefix + "history:rows"
}

// EncodeRow serializes a purchase row as customer|region|product|quantity.
func EncodeRow(row domain.PurchaseRow) string {
	return strings.Join([]string{
		row.CustomerID,
		row.RegionCode,
		row.ProductID,
		strconv.Itoa(row.Quantity),
	}, rowSeparator)
}

// DecodeRow parses an encoded purchase row. Returns false on any malformed
// input, including negative quantities.
func DecodeRow(s string) (domain.PurchaseRow, bool) {
	parts := strings.Split(s, rowSeparator)
	if len(parts) != 4 {
		return domain.PurchaseRow{}, false
	}
	qty, err := strconv.Atoi(parts[3])
	if err != nil || qty < 0 {
		return domain.PurchaseRow{}, false
	}
	if parts[0] == "" || parts[2] == "" {
		return domain.PurchaseRow{}, false
	}
	return domain.PurchaseRow{
		CustomerID: parts[0],
		RegionCode: parts[1],
		ProductID:  parts[2],
		Quantity:   qty,
	}, true
}
