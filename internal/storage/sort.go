package storage

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/documents/domain"
)

// SortDocuments orders docs in place by key for backends that cannot sort
// server-side. The order follows MongoDB's for JSON value types: missing/null,
// numbers, strings, objects, arrays, booleans. Ties keep their input order.
func SortDocuments(docs []domain.Document, key string, dir domain.SortDirection) {
	sort.SliceStable(docs, func(i, j int) bool {
		c := compareValues(docs[i][key], docs[j][key])
		if dir == domain.Descending {
			return c > 0
		}
		return c < 0
	})
}

func typeRank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case float64, float32, int, int32, int64, json.Number:
		return 1
	case string:
		return 2
	case map[string]any, domain.Document:
		return 3
	case []any:
		return 4
	case bool:
		return 5
	default:
		return 6
	}
}

func compareValues(a, b any) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}

	switch av := a.(type) {
	case string:
		return strings.Compare(av, b.(string))
	case bool:
		bv := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	}

	if ra == 1 {
		af, bf := toFloat(a), toFloat(b)
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
	}
	return 0
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, _ := n.Float64()
		return f
	}
	return 0
}
