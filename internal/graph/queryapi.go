package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "github.com/xliberty2008x/dubovyk-ai-digital-brain/pkg/errors"
)

// queryAPIRunner executes statements against the stateless Neo4j Query API v2
// endpoint. Each statement is one POST; responses come back columnar and are
// re-zipped into row maps.
type queryAPIRunner struct {
	client   *http.Client
	url      string
	user     string
	password string
}

// queryRequest is the Query API request body.
type queryRequest struct {
	Statement  string         `json:"statement"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// queryResponse is the columnar Query API response shape.
type queryResponse struct {
	Data struct {
		Fields []string `json:"fields"`
		Values [][]any  `json:"values"`
	} `json:"data"`
}

// NewQueryAPIStore builds the HTTP-backed store and ensures the schema, which
// doubles as the reachability probe for the fallback chain.
func NewQueryAPIStore(ctx context.Context, url, user, password string, embeddingDim int) (Store, error) {
	runner := &queryAPIRunner{
		client:   &http.Client{Timeout: 60 * time.Second},
		url:      url,
		user:     user,
		password: password,
	}
	return newCypherStore(ctx, runner, embeddingDim)
}

func (r *queryAPIRunner) Run(ctx context.Context, statement string, params map[string]any) ([]map[string]any, error) {
	payload, err := json.Marshal(queryRequest{Statement: statement, Parameters: params})
	if err != nil {
		return nil, apperrors.NewQueryRejected(statement, "failed to encode parameters", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.NewBackendUnavailable(r.url, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(r.user, r.password)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, apperrors.NewBackendUnavailable(r.url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewBackendUnavailable(r.url, err)
	}
	if resp.StatusCode >= 400 {
		detail := fmt.Sprintf("status %d: %s", resp.StatusCode, string(body))
		return nil, apperrors.NewQueryRejected(statement, detail, nil)
	}

	var decoded queryResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, apperrors.NewQueryRejected(statement, "malformed response body", err)
	}

	rows := make([]map[string]any, 0, len(decoded.Data.Values))
	for _, value := range decoded.Data.Values {
		row := make(map[string]any, len(decoded.Data.Fields))
		for i, field := range decoded.Data.Fields {
			if i < len(value) {
				row[field] = value[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (r *queryAPIRunner) Close(ctx context.Context) error {
	r.client.CloseIdleConnections()
	return nil
}
