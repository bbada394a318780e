package docs_test

import (
	"encoding/json"
	"testing"

	_ "github.com/KOFI-GYIMAH/portfolio/docs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestRegisteredDocument(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc struct {
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "/v1", doc.BasePath)
	for _, path := range []string{"/contact", "/github/overview", "/github/repos", "/admin/contacts/{id}/status"} {
		assert.Contains(t, doc.Paths, path)
	}

	var list struct {
		Responses map[string]json.RawMessage `json:"responses"`
	}
	require.NoError(t, json.Unmarshal(doc.Paths["/admin/contacts"]["get"], &list))
	assert.Contains(t, list.Responses, "401")
	assert.Contains(t, list.Responses, "503")
}
