package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeJSON(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestValidAgentShape(t *testing.T) {
	valid := `{
		"id": "echo-abc", "name": "Echo", "website": "https://echo.ai",
		"description": "desc", "category": ["chatbots"],
		"isOpenSource": true, "lastUpdated": "2024-01-01T00:00:00Z"
	}`
	assert.True(t, ValidAgentShape(decodeJSON(t, valid)))

	t.Run("missing field", func(t *testing.T) {
		v := decodeJSON(t, `{"id":"x","name":"n","website":"w","description":"d","isOpenSource":true,"lastUpdated":"t"}`)
		assert.False(t, ValidAgentShape(v))
	})

	t.Run("category with non-string entry", func(t *testing.T) {
		v := decodeJSON(t, `{"id":"x","name":"n","website":"w","description":"d","category":["a",1],"isOpenSource":true,"lastUpdated":"t"}`)
		assert.False(t, ValidAgentShape(v))
	})

	t.Run("isOpenSource not a bool", func(t *testing.T) {
		v := decodeJSON(t, `{"id":"x","name":"n","website":"w","description":"d","category":[],"isOpenSource":"yes","lastUpdated":"t"}`)
		assert.False(t, ValidAgentShape(v))
	})

	t.Run("not an object", func(t *testing.T) {
		assert.False(t, ValidAgentShape("nope"))
	})

	// Type checks only: business rules do not apply at this tier.
	t.Run("malformed website and empty category still pass", func(t *testing.T) {
		v := decodeJSON(t, `{"id":"x","name":"n","website":"not a url","description":"d","category":[],"isOpenSource":false,"lastUpdated":"t"}`)
		assert.True(t, ValidAgentShape(v))
	})
}

func TestValidCatalogShape(t *testing.T) {
	t.Run("valid empty catalog", func(t *testing.T) {
		assert.True(t, ValidCatalogShape(decodeJSON(t, `{"items":[],"lastUpdated":"x"}`)))
	})

	t.Run("items not an array", func(t *testing.T) {
		assert.False(t, ValidCatalogShape(decodeJSON(t, `{"items":"not-an-array","lastUpdated":"x"}`)))
	})

	t.Run("missing lastUpdated", func(t *testing.T) {
		assert.False(t, ValidCatalogShape(decodeJSON(t, `{"items":[]}`)))
	})

	t.Run("item with wrong shape", func(t *testing.T) {
		assert.False(t, ValidCatalogShape(decodeJSON(t, `{"items":[{"id":1}],"lastUpdated":"x"}`)))
	})

	t.Run("not an object", func(t *testing.T) {
		assert.False(t, ValidCatalogShape(decodeJSON(t, `[1,2,3]`)))
	})
}
