package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/poiesic/maamar/core"
)

// searchRequest is the normalized form of the search endpoint's two request
// shapes. Downstream code never sees the raw envelope.
type searchRequest struct {
	Query     core.Query
	Enveloped bool
}

// parseSearchRequest normalizes a GET query string, a direct JSON object,
// or the platform's enveloped array form into a searchRequest. The envelope
// is an array whose first element is an object with a "value" key holding a
// JSON string; its fields are article and quastion, which map onto name and
// question.
func parseSearchRequest(c echo.Context) (searchRequest, error) {
	if c.Request().Method == http.MethodGet {
		return parseQueryParams(c)
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return searchRequest{}, err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return searchRequest{}, nil
	}

	if fields, ok := envelopeValue(body); ok {
		query, err := queryFromFields(fields, []string{"article"}, []string{"quastion"})
		return searchRequest{Query: query, Enveloped: true}, err
	}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return searchRequest{}, fmt.Errorf("invalid JSON body: %w", err)
	}
	query, err := queryFromFields(fields, []string{"name", "article"}, []string{"question", "quastion"})
	return searchRequest{Query: query}, err
}

func parseQueryParams(c echo.Context) (searchRequest, error) {
	name := c.QueryParam("name")
	if name == "" {
		name = c.QueryParam("article")
	}
	question := c.QueryParam("question")
	if question == "" {
		question = c.QueryParam("quastion")
	}

	topN := 0
	if raw := c.QueryParam("top_n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return searchRequest{}, fmt.Errorf("invalid top_n: %q", raw)
		}
		topN = n
	}

	return searchRequest{Query: core.Query{
		Name:     strings.TrimSpace(name),
		Question: strings.TrimSpace(question),
		TopN:     topN,
	}}, nil
}

// envelopeValue detects the enveloped array form and returns the decoded
// inner fields. Detection requires a non-empty array whose first element
// carries a "value" key.
func envelopeValue(body []byte) (map[string]any, bool) {
	var arr []map[string]any
	if err := json.Unmarshal(body, &arr); err != nil || len(arr) == 0 {
		return nil, false
	}
	raw, ok := arr[0]["value"]
	if !ok {
		return nil, false
	}

	inner, ok := raw.(string)
	if !ok {
		return nil, false
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(inner), &fields); err != nil {
		return nil, false
	}
	return fields, true
}

// queryFromFields reads the first present name alias and question alias
// from the decoded fields.
func queryFromFields(fields map[string]any, nameKeys, questionKeys []string) (core.Query, error) {
	query := core.Query{}
	for _, key := range nameKeys {
		if value := stringField(fields, key); value != "" {
			query.Name = value
			break
		}
	}
	for _, key := range questionKeys {
		if value := stringField(fields, key); value != "" {
			query.Question = value
			break
		}
	}

	topN, err := intField(fields, "top_n")
	if err != nil {
		return query, err
	}
	query.TopN = topN
	return query, nil
}

func stringField(fields map[string]any, key string) string {
	value, _ := fields[key].(string)
	return strings.TrimSpace(value)
}

func intField(fields map[string]any, key string) (int, error) {
	raw, ok := fields[key]
	if !ok || raw == nil {
		return 0, nil
	}
	switch v := raw.(type) {
	case float64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %q", key, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("invalid %s", key)
	}
}
