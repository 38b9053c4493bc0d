package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/checkops/internal/application/console"
	"github.com/bryanwahyu/checkops/internal/domain/query"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAsk_Text(t *testing.T) {
	out, err := execute(t, "ask", "Explain", "the", "delay", "in", "Nepal")
	require.NoError(t, err)
	assert.Equal(t,
		"[delay_breakdown] Nepal delays add ~4 days (18 orders impacted).\n"+
			"Highlights:\n"+
			"  - Local municipality records offline due to security audit.\n"+
			"Recommended actions:\n"+
			"  - Route verifications through Kathmandu backup vendor until services resume.\n",
		out)
}

func TestAsk_JSONWithTimeZone(t *testing.T) {
	out, err := execute(t, "ask", "--json", "--tz", "Asia/Kolkata", "status of Jane Doe")
	require.NoError(t, err)

	var resp console.Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, query.IntentCandidateStatus, resp.Result.Intent)
	assert.Equal(t, "Jane Doe's check is in progress. Estimated completion 9/22/2025, 11:30:00 PM.", resp.Result.Summary)
}

func TestAsk_Fallback(t *testing.T) {
	out, err := execute(t, "ask", "hello there")
	require.NoError(t, err)
	assert.Equal(t, "[fallback] "+query.FallbackSummary+"\n", out)
}

func TestAsk_Errors(t *testing.T) {
	_, err := execute(t, "ask")
	assert.Error(t, err)

	_, err = execute(t, "ask", "--tz", "Mars/Olympus", "status of Jane Doe")
	assert.ErrorContains(t, err, "invalid --tz")
}

func TestIntents(t *testing.T) {
	out, err := execute(t, "intents")
	require.NoError(t, err)
	assert.Equal(t, "1. candidate_status\n2. benchmark_lookup\n3. verification_delta\n4. delay_breakdown\n5. fallback\n", out)
}
