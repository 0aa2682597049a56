package domain

import (
	"encoding/json"
	"sort"
)

// housekeepingFields never appear in a rendered diff: identity and audit
// columns that always differ or never matter to an operator.
var housekeepingFields = map[string]struct{}{
	"id":         {},
	"created_at": {},
	"updated_at": {},
	"timestamp":  {},
	"user_id":    {},
	"member_id":  {},
}

// FieldChange is one row of an activity diff.
type FieldChange struct {
	Field    string      `json:"field"`
	Label    string      `json:"label"`
	OldValue interface{} `json:"old_value"`
	NewValue interface{} `json:"new_value"`
}

// DiffFields computes the changed-field rows between two record snapshots.
// With both sides present it walks the union of keys and keeps those whose
// serialized values differ; with one side present it lists that side's fields
// directly. Housekeeping fields are excluded either way.
func DiffFields(oldValues, newValues map[string]interface{}) []FieldChange {
	switch {
	case oldValues != nil && newValues != nil:
		return diffBoth(oldValues, newValues)
	case newValues != nil:
		return listSide(newValues, false)
	case oldValues != nil:
		return listSide(oldValues, true)
	default:
		return nil
	}
}

func diffBoth(oldValues, newValues map[string]interface{}) []FieldChange {
	keys := make(map[string]struct{}, len(oldValues)+len(newValues))
	for k := range oldValues {
		keys[k] = struct{}{}
	}
	for k := range newValues {
		keys[k] = struct{}{}
	}

	changes := make([]FieldChange, 0, len(keys))
	for k := range keys {
		if _, skip := housekeepingFields[k]; skip {
			continue
		}
		if serialize(oldValues[k]) == serialize(newValues[k]) {
			continue
		}
		changes = append(changes, FieldChange{
			Field:    k,
			Label:    FieldLabel(k),
			OldValue: oldValues[k],
			NewValue: newValues[k],
		})
	}
	sortChanges(changes)
	return changes
}

func listSide(values map[string]interface{}, deleted bool) []FieldChange {
	changes := make([]FieldChange, 0, len(values))
	for k, v := range values {
		if _, skip := housekeepingFields[k]; skip {
			continue
		}
		fc := FieldChange{Field: k, Label: FieldLabel(k)}
		if deleted {
			fc.OldValue = v
		} else {
			fc.NewValue = v
		}
		changes = append(changes, fc)
	}
	sortChanges(changes)
	return changes
}

func sortChanges(changes []FieldChange) {
	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Field < changes[j].Field
	})
}

// serialize renders a value in its canonical JSON form for comparison, so
// 100 and "100" compare as different but map ordering never matters.
func serialize(v interface{}) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Snapshot marshals a record to the map form the diff works over.
// Returns nil when the record itself is nil.
func Snapshot(record interface{}) map[string]interface{} {
	if record == nil {
		return nil
	}
	b, err := json.Marshal(record)
	if err != nil {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	return m
}
