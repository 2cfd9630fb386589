package jira

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/kurihiro0119/unowned-components/internal/domain"
)

// Response elements are decoded field by field. A field with an unexpected
// type is treated as absent instead of failing the whole response.

type componentsResponse []componentResponse

type componentResponse struct {
	ID   flexibleID
	Name string
	Lead *leadResponse
}

type leadResponse struct {
	AccountID   string `json:"accountId"`
	DisplayName string `json:"displayName"`
}

type rawComponent struct {
	ID   json.RawMessage `json:"id"`
	Name json.RawMessage `json:"name"`
	Lead json.RawMessage `json:"lead"`
}

// decodeComponents tolerates a null body, bodies that are not a JSON array
// and elements that are not objects. Syntax errors are still reported.
func decodeComponents(body []byte) (componentsResponse, error) {
	elements, err := decodeArray(body)
	if err != nil {
		return nil, err
	}

	resp := make(componentsResponse, 0, len(elements))
	for _, el := range elements {
		var raw rawComponent
		if isNull(el) || json.Unmarshal(el, &raw) != nil {
			continue
		}

		var c componentResponse
		_ = json.Unmarshal(raw.ID, &c.ID)
		c.Name, _ = decodeString(raw.Name)
		// Any non-null lead counts as an owner, even when its shape is unexpected.
		if len(raw.Lead) > 0 && !isNull(raw.Lead) {
			c.Lead = &leadResponse{}
			_ = json.Unmarshal(raw.Lead, c.Lead)
		}
		resp = append(resp, c)
	}

	return resp, nil
}

func (r componentsResponse) ToComponents() []domain.Component {
	cs := make([]domain.Component, 0, len(r))
	for _, el := range r {
		c := domain.Component{
			ID:   string(el.ID),
			Name: el.Name,
		}
		if el.Lead != nil {
			c.Lead = &domain.Lead{
				AccountID:   el.Lead.AccountID,
				DisplayName: el.Lead.DisplayName,
			}
		}
		cs = append(cs, c)
	}

	return cs
}

// flexibleID accepts both "10000" and 10000.
type flexibleID string

func (id *flexibleID) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = flexibleID(n.String())
	return nil
}

type searchRequestBody struct {
	JQL        string   `json:"jql"`
	Fields     []string `json:"fields,omitempty"`
	StartAt    int      `json:"startAt"`
	MaxResults int      `json:"maxResults"`
}

type searchResponse struct {
	StartAt    int
	MaxResults int
	Total      int
	Issues     []domain.Issue
}

type rawSearchResponse struct {
	StartAt    json.RawMessage `json:"startAt"`
	MaxResults json.RawMessage `json:"maxResults"`
	Total      json.RawMessage `json:"total"`
	Issues     json.RawMessage `json:"issues"`
}

type rawIssue struct {
	Key    json.RawMessage `json:"key"`
	Fields json.RawMessage `json:"fields"`
}

type rawIssueFields struct {
	Components json.RawMessage `json:"components"`
}

type rawIssueComponent struct {
	Name json.RawMessage `json:"name"`
}

// decodeSearch tolerates an empty body and mistyped fields at every level.
// Syntax errors are still reported.
func decodeSearch(body []byte) (searchResponse, error) {
	var resp searchResponse

	body = bytes.TrimSpace(body)
	if len(body) == 0 || isNull(body) {
		return resp, nil
	}
	var raw rawSearchResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return resp, nil
		}
		return resp, err
	}

	resp.StartAt, _ = decodeInt(raw.StartAt)
	resp.MaxResults, _ = decodeInt(raw.MaxResults)
	resp.Total, _ = decodeInt(raw.Total)

	issues, _ := decodeArray(raw.Issues)
	for _, el := range issues {
		if issue, ok := decodeIssue(el); ok {
			resp.Issues = append(resp.Issues, issue)
		}
	}

	return resp, nil
}

func decodeIssue(b json.RawMessage) (domain.Issue, bool) {
	var raw rawIssue
	if isNull(b) || json.Unmarshal(b, &raw) != nil {
		return domain.Issue{}, false
	}

	issue := domain.Issue{}
	issue.Key, _ = decodeString(raw.Key)

	var fields rawIssueFields
	if len(raw.Fields) == 0 || json.Unmarshal(raw.Fields, &fields) != nil {
		return issue, true
	}
	components, _ := decodeArray(fields.Components)
	for _, el := range components {
		var comp rawIssueComponent
		if isNull(el) || json.Unmarshal(el, &comp) != nil {
			continue
		}
		name, ok := decodeString(comp.Name)
		if !ok {
			continue
		}
		issue.Components = append(issue.Components, domain.IssueComponent{Name: name})
	}

	return issue, true
}

func (s searchResponse) ToPage() *domain.IssuePage {
	page := &domain.IssuePage{
		StartAt:    s.StartAt,
		MaxResults: s.MaxResults,
		Total:      s.Total,
		Issues:     s.Issues,
	}
	if page.Issues == nil {
		page.Issues = []domain.Issue{}
	}

	return page
}

type errorResponse struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}

// decodeArray splits a JSON array into its elements.
// Anything that is valid JSON but not an array yields no elements.
func decodeArray(b []byte) ([]json.RawMessage, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || isNull(b) {
		return nil, nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(b, &elements); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, nil
		}
		return nil, err
	}
	return elements, nil
}

func decodeString(b json.RawMessage) (string, bool) {
	var s string
	if len(b) == 0 || isNull(b) || json.Unmarshal(b, &s) != nil {
		return "", false
	}
	return s, true
}

func decodeInt(b json.RawMessage) (int, bool) {
	var n int
	if len(b) == 0 || isNull(b) || json.Unmarshal(b, &n) != nil {
		return 0, false
	}
	return n, true
}

func isNull(b []byte) bool {
	return bytes.Equal(bytes.TrimSpace(b), []byte("null"))
}
