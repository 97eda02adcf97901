package table

import (
	"time"

	"github.com/shopspring/decimal"
)

// isScalar reports whether v can be stored in a single cell.
func isScalar(v any) bool {
	switch v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		time.Time, decimal.Decimal:
		return true
	}
	return false
}
