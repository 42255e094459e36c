package rerank

import (
	"encoding/json"
	"time"
)

// epochMillisFloor is the smallest numeric timestamp interpreted as epoch
// milliseconds rather than seconds.
const epochMillisFloor = 1e12

// Candidate is a caller-owned document under consideration for re-ranking.
// The pipeline never mutates a candidate; it produces augmented copies.
type Candidate struct {
	Chunk     string
	Embedding []float64
	Score     *float64 // externally supplied relevance, nil when absent
	Timestamp any      // date-parseable string or epoch number, nil when absent
	Fields    map[string]any
}

// timestampLayouts are tried in order when the timestamp is a string.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParsedTime interprets the candidate timestamp. Strings are matched against
// common date layouts, numbers are taken as epoch seconds (milliseconds when
// the magnitude makes seconds implausible). The second return value is false
// when the timestamp is absent or unparseable.
func (c Candidate) ParsedTime() (time.Time, bool) {
	switch v := c.Timestamp.(type) {
	case nil:
		return time.Time{}, false
	case string:
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	case float64:
		return epochTime(v), true
	case int64:
		return epochTime(float64(v)), true
	case int:
		return epochTime(float64(v)), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return epochTime(f), true
	default:
		return time.Time{}, false
	}
}

func epochTime(v float64) time.Time {
	if v >= epochMillisFloor || v <= -epochMillisFloor {
		return time.UnixMilli(int64(v))
	}
	return time.Unix(int64(v), 0)
}
