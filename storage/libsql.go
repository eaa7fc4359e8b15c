package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// LibSQL executes statements against a remote libsql (Turso) database via
// its v2/pipeline HTTP API. Result cells come back as tagged {type, value}
// objects and are handed to the row mapper as-is.
type LibSQL struct {
	endpoint  string
	authToken string
	client    *http.Client
}

// NewLibSQL builds an executor for dbURL, which may use the libsql://
// scheme as handed out by Turso.
func NewLibSQL(dbURL, authToken string) *LibSQL {
	endpoint := strings.Replace(dbURL, "libsql://", "https://", 1)
	endpoint = strings.TrimSuffix(endpoint, "/") + "/v2/pipeline"
	return &LibSQL{
		endpoint:  endpoint,
		authToken: authToken,
		client:    &http.Client{Timeout: DefaultQueryTimeout},
	}
}

type pipelineRequest struct {
	Requests []pipelineEntry `json:"requests"`
}

type pipelineEntry struct {
	Type string        `json:"type"`
	Stmt *pipelineStmt `json:"stmt,omitempty"`
}

type pipelineStmt struct {
	SQL  string         `json:"sql"`
	Args []pipelineCell `json:"args"`
}

type pipelineCell struct {
	Type  string `json:"type"`
	Value any    `json:"value,omitempty"`
}

type pipelineResponse struct {
	Results []struct {
		Type  string `json:"type"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
		Response *struct {
			Result *struct {
				Cols []struct {
					Name string `json:"name"`
				} `json:"cols"`
				Rows             [][]map[string]any `json:"rows"`
				AffectedRowCount int64              `json:"affected_row_count"`
			} `json:"result"`
		} `json:"response"`
	} `json:"results"`
}

func (l *LibSQL) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	result, err := l.execute(ctx, query, args)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(result.Rows))
	for _, cells := range result.Rows {
		if len(cells) != len(result.Cols) {
			return nil, fmt.Errorf("libsql: row has %d cells for %d columns", len(cells), len(result.Cols))
		}
		row := Row{}
		for i, col := range result.Cols {
			row[col.Name] = cells[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (l *LibSQL) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	result, err := l.execute(ctx, query, args)
	if err != nil {
		return Result{}, err
	}
	return Result{RowsAffected: result.AffectedRowCount}, nil
}

type stmtResult struct {
	Cols []struct {
		Name string `json:"name"`
	}
	Rows             [][]map[string]any
	AffectedRowCount int64
}

func (l *LibSQL) execute(ctx context.Context, query string, args []any) (*stmtResult, error) {
	cells := make([]pipelineCell, len(args))
	for i, arg := range args {
		cell, err := encodeArg(arg)
		if err != nil {
			return nil, err
		}
		cells[i] = cell
	}

	payload := pipelineRequest{Requests: []pipelineEntry{
		{Type: "execute", Stmt: &pipelineStmt{SQL: query, Args: cells}},
		{Type: "close"},
	}}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("libsql: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("libsql: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+l.authToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("libsql: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("libsql: pipeline returned status %d", resp.StatusCode)
	}

	var decoded pipelineResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("libsql: decode response: %w", err)
	}
	if len(decoded.Results) == 0 {
		return nil, fmt.Errorf("libsql: empty pipeline response")
	}
	first := decoded.Results[0]
	if first.Error != nil {
		return nil, fmt.Errorf("libsql: %s", first.Error.Message)
	}
	if first.Response == nil || first.Response.Result == nil {
		return nil, fmt.Errorf("libsql: pipeline response missing result")
	}
	r := first.Response.Result
	return &stmtResult{
		Cols:             r.Cols,
		Rows:             r.Rows,
		AffectedRowCount: r.AffectedRowCount,
	}, nil
}

// encodeArg converts a Go value into a pipeline argument cell. Integers
// travel as decimal strings per the protocol.
func encodeArg(arg any) (pipelineCell, error) {
	switch x := arg.(type) {
	case nil:
		return pipelineCell{Type: "null"}, nil
	case string:
		return pipelineCell{Type: "text", Value: x}, nil
	case bool:
		if x {
			return pipelineCell{Type: "integer", Value: "1"}, nil
		}
		return pipelineCell{Type: "integer", Value: "0"}, nil
	case int:
		return pipelineCell{Type: "integer", Value: strconv.Itoa(x)}, nil
	case int64:
		return pipelineCell{Type: "integer", Value: strconv.FormatInt(x, 10)}, nil
	case uint64:
		return pipelineCell{Type: "integer", Value: strconv.FormatUint(x, 10)}, nil
	case float64:
		return pipelineCell{Type: "float", Value: x}, nil
	case time.Time:
		return pipelineCell{Type: "text", Value: x.UTC().Format(time.RFC3339Nano)}, nil
	case *string:
		if x == nil {
			return pipelineCell{Type: "null"}, nil
		}
		return pipelineCell{Type: "text", Value: *x}, nil
	case *float64:
		if x == nil {
			return pipelineCell{Type: "null"}, nil
		}
		return pipelineCell{Type: "float", Value: *x}, nil
	case *time.Time:
		if x == nil {
			return pipelineCell{Type: "null"}, nil
		}
		return pipelineCell{Type: "text", Value: x.UTC().Format(time.RFC3339Nano)}, nil
	}
	return pipelineCell{}, fmt.Errorf("libsql: unsupported argument type %T", arg)
}
