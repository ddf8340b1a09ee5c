package hint

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoOpAlwaysDeclines(t *testing.T) {
	ok, found := NoOp{}.SuggestTop(context.Background(), "repo", []string{"cpu"})
	require.False(t, found)
	require.Empty(t, ok)
}

func TestFromEnvReturnsNoOpWhenUnset(t *testing.T) {
	o := FromEnv(func(string) (string, bool) { return "", false })
	_, ok := o.(NoOp)
	require.True(t, ok)
}

func TestHTTPOracleReturnsConfidentSuggestion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"top":"cpu","confident":true}`))
	}))
	defer server.Close()

	o := HTTPOracle{URL: server.URL, Client: server.Client()}
	top, ok := o.SuggestTop(context.Background(), "repo", []string{"cpu", "alu"})
	require.True(t, ok)
	require.Equal(t, "cpu", top)
}

func TestHTTPOracleDeclinesOnLowConfidence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"top":"cpu","confident":false}`))
	}))
	defer server.Close()

	o := HTTPOracle{URL: server.URL, Client: server.Client()}
	_, ok := o.SuggestTop(context.Background(), "repo", []string{"cpu"})
	require.False(t, ok)
}

func TestApplyTiebreakMovesSuggestionToFront(t *testing.T) {
	ranked := []string{"alu", "cpu", "uart"}
	out := ApplyTiebreak(ranked, "cpu", true)
	require.Equal(t, []string{"cpu", "alu", "uart"}, out)
}

func TestApplyTiebreakIgnoresUnknownSuggestion(t *testing.T) {
	ranked := []string{"alu", "cpu"}
	out := ApplyTiebreak(ranked, "decoder", true)
	require.Equal(t, ranked, out)
}

func TestApplyTiebreakNoOpWhenNotOk(t *testing.T) {
	ranked := []string{"alu", "cpu"}
	out := ApplyTiebreak(ranked, "cpu", false)
	require.Equal(t, ranked, out)
}

func TestRerankLeavesOrderUnchangedWhenEnvUnset(t *testing.T) {
	prev := lookupEnv
	lookupEnv = func(string) (string, bool) { return "", false }
	defer func() { lookupEnv = prev }()

	ranked := []string{"alu", "cpu"}
	out := Rerank(context.Background(), "repo", ranked)
	require.Equal(t, ranked, out)
}
