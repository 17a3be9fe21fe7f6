package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalogShape(t *testing.T) {
	svc, _ := newTestService(t, `{}`)
	catalog := Catalog(svc)

	require.Len(t, catalog, 8)

	expected := []string{
		"register",
		"who_is_online",
		"send_message",
		"check_messages",
		"heartbeat",
		"consent",
		"discover_agents",
		"get_capabilities",
	}
	for i, tool := range catalog {
		require.Equal(t, expected[i], tool.Name)
		require.NotEmpty(t, tool.Description)
		require.NotNil(t, tool.Handler)
		require.NotNil(t, tool.InputSchema)
		require.Equal(t, "object", tool.InputSchema.Type)
	}
}

func TestCatalogConsentSchemaRestrictsAction(t *testing.T) {
	svc, _ := newTestService(t, `{}`)

	for _, tool := range Catalog(svc) {
		if tool.Name != "consent" {
			continue
		}

		action := tool.InputSchema.Properties["action"]
		require.NotNil(t, action)
		require.ElementsMatch(t, []any{"accept", "block"}, action.Enum)
		require.Contains(t, tool.InputSchema.Required, "action")

		return
	}

	t.Fatal("consent tool missing from catalog")
}

func TestCatalogEndToEndThroughDispatcher(t *testing.T) {
	svc, _ := newTestService(t, `{"success":true,"token":"T"}`)
	d := NewDispatcher(testLogger())
	d.Add(Catalog(svc)...)

	result := d.Invoke(context.Background(), "register", map[string]any{"handle": "@bob"})
	require.False(t, result.IsError)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &payload))
	require.Equal(t, true, payload["success"])
	require.Equal(t, "Registered as @bob", payload["message"])
	require.True(t, svc.Session().Registered())
}

func TestCatalogNetworkFailureSurfacesAsErrorEnvelope(t *testing.T) {
	d := NewDispatcher(testLogger())
	d.Add(Catalog(newUnreachableService(t))...)

	result := d.Invoke(context.Background(), "who_is_online", nil)
	require.True(t, result.IsError)
	require.Contains(t, resultText(t, result), "/api/presence")
}
