package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestMapMidtransStatus(t *testing.T) {
	cases := []struct {
		name              string
		transactionStatus string
		fraudStatus       string
		want              GatewayOutcome
	}{
		{"capture accepted", "capture", "accept", OutcomeSuccess},
		{"capture without fraud verdict", "capture", "", OutcomeSuccess},
		{"capture challenged stays pending", "capture", "challenge", OutcomePending},
		{"capture denied by fraud review", "capture", "deny", OutcomeFailed},
		{"settlement", "settlement", "", OutcomeSuccess},
		{"settlement ignores fraud field", "settlement", "challenge", OutcomeSuccess},
		{"pending", "pending", "", OutcomePending},
		{"deny", "deny", "", OutcomeFailed},
		{"failure", "failure", "", OutcomeFailed},
		{"cancel", "cancel", "", OutcomeCancelled},
		{"expire", "expire", "", OutcomeExpired},
		{"refund is not handled here", "refund", "", OutcomeUnknown},
		{"empty status", "", "", OutcomeUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapMidtransStatus(tc.transactionStatus, tc.fraudStatus))
		})
	}
}

func TestMergeMetaKeepsExistingKeys(t *testing.T) {
	existing := datatypes.JSON([]byte(`{"refund_due":true,"channel":"bank_transfer"}`))

	merged := mergeMeta(existing, map[string]any{"failure_reason": "gateway status deny"})

	var got map[string]any
	require.NoError(t, json.Unmarshal(merged, &got))
	assert.Equal(t, true, got["refund_due"])
	assert.Equal(t, "bank_transfer", got["channel"])
	assert.Equal(t, "gateway status deny", got["failure_reason"])
}

func TestMergeMetaOverwritesAndStartsEmpty(t *testing.T) {
	merged := mergeMeta(nil, map[string]any{"refund_due": false})
	merged = mergeMeta(merged, map[string]any{"refund_due": true})

	var got map[string]any
	require.NoError(t, json.Unmarshal(merged, &got))
	assert.Equal(t, true, got["refund_due"])
	assert.Len(t, got, 1)
}

func TestMergeMetaToleratesGarbage(t *testing.T) {
	merged := mergeMeta(datatypes.JSON([]byte("not json")), map[string]any{"k": "v"})

	var got map[string]any
	require.NoError(t, json.Unmarshal(merged, &got))
	assert.Equal(t, "v", got["k"])
}
