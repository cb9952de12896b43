package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInsightRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ai-insight", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAIInsightDefaultsToCaller(t *testing.T) {
	fx := newScanFixture(t, &fakeAI{response: `{"insights": ["Spend less on dining.", "Groceries are on track."]}`})

	req := newInsightRequest(`{}`)
	req.Header.Set("Authorization", "Bearer "+fx.token)

	resp, err := fx.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success  bool     `json:"success"`
		Insights []string `json:"insights"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Len(t, body.Insights, 2)
}

func TestAIInsightRejectsOtherUser(t *testing.T) {
	fx := newScanFixture(t, &fakeAI{response: `{"insights": ["unused"]}`})

	req := newInsightRequest(`{"user_id": "` + uuid.New().String() + `"}`)
	req.Header.Set("Authorization", "Bearer "+fx.token)

	resp, err := fx.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
