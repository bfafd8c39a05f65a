// Package resources provides one client per backend resource (auth, users,
// rooms, contacts, bookings) and the response normalization they share.
// The backend's envelope and field naming have drifted across revisions,
// so every response goes through alias resolution before anything else
// sees it.
package resources

import (
	"encoding/json"

	"github.com/eliteresort/resortadmin/internal/convert"
)

// Record is one backend entity as a field-name to scalar mapping, after
// normalization. The "id" key always holds the resolved canonical key.
type Record map[string]interface{}

// NormalizeList decodes a collection response. Accepted envelopes, in
// order: a bare array, {<resourceKey>: [...]}, {data: [...]}. Anything
// else normalizes to an empty collection.
func NormalizeList(raw []byte, resourceKey string) []Record {
	var bare []map[string]interface{}
	if err := json.Unmarshal(raw, &bare); err == nil {
		return toRecords(bare)
	}

	var wrapped map[string]interface{}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return []Record{}
	}
	for _, key := range []string{resourceKey, "data"} {
		if seq, ok := wrapped[key].([]interface{}); ok {
			records := make([]Record, 0, len(seq))
			for _, item := range seq {
				if m, ok := item.(map[string]interface{}); ok {
					records = append(records, Record(m))
				}
			}
			return records
		}
	}
	return []Record{}
}

// NormalizeOne decodes a single-record response, unwrapping {<itemKey>: {...}}
// and {data: {...}} envelopes; a bare object is the record itself. Returns
// nil when nothing decodable arrives.
func NormalizeOne(raw []byte, itemKey string) Record {
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	for _, key := range []string{itemKey, "data"} {
		if inner, ok := m[key].(map[string]interface{}); ok {
			return Record(inner)
		}
	}
	return Record(m)
}

func toRecords(items []map[string]interface{}) []Record {
	records := make([]Record, 0, len(items))
	for _, m := range items {
		records = append(records, Record(m))
	}
	return records
}

// First returns the first present, non-empty value among keys as a string.
func (r Record) First(fallback string, keys ...string) string {
	for _, key := range keys {
		if v, ok := r[key]; ok {
			if s := convert.ToString(v, ""); s != "" {
				return s
			}
		}
	}
	return fallback
}

// ID resolves the canonical record key: the first present key in priority
// order, stringified.
func (r Record) ID(keys ...string) string {
	return r.First("", keys...)
}

// Bool resolves a truthy field across possible key spellings.
func (r Record) Bool(fallback bool, keys ...string) bool {
	for _, key := range keys {
		if v, ok := r[key]; ok {
			return convert.ToBool(v, fallback)
		}
	}
	return fallback
}

// Float resolves a numeric field across possible key spellings.
func (r Record) Float(fallback float64, keys ...string) float64 {
	for _, key := range keys {
		if v, ok := r[key]; ok {
			return convert.ToFloat(v, fallback)
		}
	}
	return fallback
}
