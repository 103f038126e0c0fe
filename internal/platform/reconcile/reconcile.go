// Package reconcile builds diff plans between a stored snapshot and freshly
// fetched records, so sync jobs only write what actually changed.
package reconcile

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultBatchSize is the flush size for insert and update batches.
const DefaultBatchSize = 100

// Plan is the outcome of diffing fetched records against the snapshot.
type Plan[T any] struct {
	Inserts []T
	Updates []T
	Skipped int
}

// Build diffs fetched against existing. A record missing from the snapshot is
// queued for insert; one whose fingerprint differs is queued for update;
// identical records are skipped. Duplicate keys inside fetched keep the first
// occurrence only.
func Build[K comparable, T any](existing, fetched []T, key func(T) K, fingerprint func(T) string) Plan[T] {
	snapshot := make(map[K]string, len(existing))
	for _, item := range existing {
		snapshot[key(item)] = fingerprint(item)
	}

	var plan Plan[T]
	seen := make(map[K]struct{}, len(fetched))
	for _, item := range fetched {
		k := key(item)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		current, ok := snapshot[k]
		if !ok {
			plan.Inserts = append(plan.Inserts, item)
			continue
		}
		if current != fingerprint(item) {
			plan.Updates = append(plan.Updates, item)
			continue
		}
		plan.Skipped++
	}

	return plan
}

// InBatches invokes fn over chunks of at most size items.
func InBatches[T any](items []T, size int, fn func(batch []T) error) error {
	if size <= 0 {
		size = DefaultBatchSize
	}
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		if err := fn(items[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// Fingerprint renders values into one canonical comparison string. Times
// normalize to UTC unix seconds, floats and bools to fixed forms, nil
// pointers to an empty segment, so value-equal records always match.
func Fingerprint(parts ...any) string {
	var buf strings.Builder
	for i, part := range parts {
		if i > 0 {
			buf.WriteByte('|')
		}
		buf.WriteString(canonical(part))
	}
	return buf.String()
}

func canonical(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case time.Time:
		return strconv.FormatInt(value.UTC().Unix(), 10)
	case *int:
		if value == nil {
			return ""
		}
		return strconv.Itoa(*value)
	case *int64:
		if value == nil {
			return ""
		}
		return strconv.FormatInt(*value, 10)
	case *float64:
		if value == nil {
			return ""
		}
		return strconv.FormatFloat(*value, 'f', -1, 64)
	case *string:
		if value == nil {
			return ""
		}
		return *value
	case *time.Time:
		if value == nil {
			return ""
		}
		return strconv.FormatInt(value.UTC().Unix(), 10)
	default:
		return fmt.Sprintf("%v", value)
	}
}
