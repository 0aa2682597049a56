package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffFieldsUpdate(t *testing.T) {
	oldValues := map[string]interface{}{
		"id":         1,
		"name":       "রহিম",
		"phone":      "01711111111",
		"status":     "active",
		"created_at": "2024-01-01",
	}
	newValues := map[string]interface{}{
		"id":         1,
		"name":       "করিম",
		"phone":      "01711111111",
		"status":     "active",
		"created_at": "2024-06-01",
	}

	changes := DiffFields(oldValues, newValues)

	require.Len(t, changes, 1)
	assert.Equal(t, "name", changes[0].Field)
	assert.Equal(t, "রহিম", changes[0].OldValue)
	assert.Equal(t, "করিম", changes[0].NewValue)
}

func TestDiffFieldsUnionOfKeys(t *testing.T) {
	oldValues := map[string]interface{}{"guarantor": "X"}
	newValues := map[string]interface{}{"purpose": "ব্যবসা"}

	changes := DiffFields(oldValues, newValues)

	require.Len(t, changes, 2)
	// sorted by field name
	assert.Equal(t, "guarantor", changes[0].Field)
	assert.Equal(t, "X", changes[0].OldValue)
	assert.Nil(t, changes[0].NewValue)
	assert.Equal(t, "purpose", changes[1].Field)
	assert.Nil(t, changes[1].OldValue)
	assert.Equal(t, "ব্যবসা", changes[1].NewValue)
}

func TestDiffFieldsCreateAndDelete(t *testing.T) {
	record := map[string]interface{}{
		"id":     7,
		"amount": 3000,
	}

	created := DiffFields(nil, record)
	require.Len(t, created, 1)
	assert.Equal(t, "amount", created[0].Field)
	assert.Nil(t, created[0].OldValue)
	assert.Equal(t, 3000, created[0].NewValue)

	deleted := DiffFields(record, nil)
	require.Len(t, deleted, 1)
	assert.Equal(t, 3000, deleted[0].OldValue)
	assert.Nil(t, deleted[0].NewValue)

	assert.Nil(t, DiffFields(nil, nil))
}

func TestDiffFieldsTypeSensitive(t *testing.T) {
	// 100 and "100" serialize differently and must register as a change
	changes := DiffFields(
		map[string]interface{}{"amount": 100},
		map[string]interface{}{"amount": "100"},
	)
	require.Len(t, changes, 1)
	assert.Equal(t, "amount", changes[0].Field)
}

func TestFieldLabelFallsBackToKey(t *testing.T) {
	assert.Equal(t, "নাম", FieldLabel("name"))
	assert.Equal(t, "some_unknown_field", FieldLabel("some_unknown_field"))
}

func TestSnapshot(t *testing.T) {
	type record struct {
		Name   string `json:"name"`
		Amount int    `json:"amount"`
	}

	m := Snapshot(record{Name: "করিম", Amount: 3000})
	require.NotNil(t, m)
	assert.Equal(t, "করিম", m["name"])
	assert.Equal(t, float64(3000), m["amount"])

	assert.Nil(t, Snapshot(nil))
}
