package hint

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

type suggestRequest struct {
	RepositoryName string   `json:"repository_name"`
	Candidates     []string `json:"candidates"`
}

type suggestResponse struct {
	Top       string `json:"top"`
	Confident bool   `json:"confident"`
}

// SuggestTop posts the candidate set and returns the service's pick. Any
// transport error, non-2xx status, or malformed body degrades to "no
// opinion" rather than propagating, per the hint path's best-effort
// contract.
func (o HTTPOracle) SuggestTop(ctx context.Context, repoName string, candidates []string) (string, bool) {
	body, err := json.Marshal(suggestRequest{RepositoryName: repoName, Candidates: candidates})
	if err != nil {
		return "", false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.URL, bytes.NewReader(body))
	if err != nil {
		return "", false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", false
	}

	var out suggestResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", false
	}
	if !out.Confident || out.Top == "" {
		return "", false
	}
	return out.Top, true
}
