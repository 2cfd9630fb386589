// Package jiratest provides an in-memory Jira REST API for tests.
package jiratest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"
)

// Issue is an issue served by the fake search endpoint.
// A nil Components slice is served without a components field.
type Issue struct {
	Key        string
	Components []string
}

// SearchCall records one request made to the search endpoint
type SearchCall struct {
	JQL        string   `json:"jql"`
	Fields     []string `json:"fields"`
	StartAt    int      `json:"startAt"`
	MaxResults int      `json:"maxResults"`
}

type failure struct {
	status   int
	messages []string
}

// Server fakes the subset of the Jira Cloud REST API v3 used by the client
type Server struct {
	*httptest.Server

	mu             sync.Mutex
	components     map[string]any
	componentCalls int
	issues         []Issue
	totalFunc      func(page int) int
	searchCalls    []SearchCall
	searchFailures map[int]failure
	componentsFail *failure
	authHeaders    []string
}

// NewServer starts a fake Jira server. Close it when done.
func NewServer() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		components:     make(map[string]any),
		searchFailures: make(map[int]failure),
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.recordAuth())

	v3 := router.Group("/rest/api/3")
	{
		v3.GET("/project/:key/components", s.getComponents)
		v3.POST("/search", s.search)
	}

	return router
}

// SetComponents sets the response body served for a project's components.
// Any JSON-encodable value is accepted so malformed payloads can be served too.
func (s *Server) SetComponents(projectKey string, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.components[projectKey] = body
}

// SetIssues sets the issues returned by the search endpoint, in order
func (s *Server) SetIssues(issues []Issue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issues = issues
}

// SetTotalFunc overrides the total reported for the zero based page number
func (s *Server) SetTotalFunc(f func(page int) int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalFunc = f
}

// FailSearch makes the zero based page number fail with status and Jira error messages
func (s *Server) FailSearch(page, status int, messages ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchFailures[page] = failure{status: status, messages: messages}
}

// FailComponents makes the components endpoint fail with status and Jira error messages
func (s *Server) FailComponents(status int, messages ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.componentsFail = &failure{status: status, messages: messages}
}

// SearchCalls returns the search requests received so far
func (s *Server) SearchCalls() []SearchCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SearchCall(nil), s.searchCalls...)
}

// ComponentCalls returns how many times the components endpoint was hit
func (s *Server) ComponentCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.componentCalls
}

// AuthHeaders returns the Authorization header of every request received
func (s *Server) AuthHeaders() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.authHeaders...)
}

func (s *Server) recordAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		s.authHeaders = append(s.authHeaders, c.GetHeader("Authorization"))
		s.mu.Unlock()
		c.Next()
	}
}

// GET /rest/api/3/project/:key/components
func (s *Server) getComponents(c *gin.Context) {
	key := c.Param("key")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.componentCalls++

	if s.componentsFail != nil {
		respondError(c, *s.componentsFail)
		return
	}
	body, ok := s.components[key]
	if !ok {
		respondError(c, failure{
			status:   http.StatusNotFound,
			messages: []string{fmt.Sprintf("No project could be found with key '%s'.", key)},
		})
		return
	}

	c.JSON(http.StatusOK, body)
}

// POST /rest/api/3/search
func (s *Server) search(c *gin.Context) {
	var call SearchCall
	if err := c.ShouldBindJSON(&call); err != nil {
		respondError(c, failure{status: http.StatusBadRequest, messages: []string{err.Error()}})
		return
	}
	if call.MaxResults <= 0 {
		call.MaxResults = 50
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	page := len(s.searchCalls)
	s.searchCalls = append(s.searchCalls, call)

	if f, ok := s.searchFailures[page]; ok {
		respondError(c, f)
		return
	}

	total := len(s.issues)
	if s.totalFunc != nil {
		total = s.totalFunc(page)
	}

	issues := make([]gin.H, 0, call.MaxResults)
	for i := call.StartAt; i < len(s.issues) && i < call.StartAt+call.MaxResults; i++ {
		issues = append(issues, issueJSON(s.issues[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"startAt":    call.StartAt,
		"maxResults": call.MaxResults,
		"total":      total,
		"issues":     issues,
	})
}

func issueJSON(issue Issue) gin.H {
	fields := gin.H{}
	if issue.Components != nil {
		components := make([]gin.H, 0, len(issue.Components))
		for _, name := range issue.Components {
			components = append(components, gin.H{"name": name})
		}
		fields["components"] = components
	}
	return gin.H{
		"key":    issue.Key,
		"fields": fields,
	}
}

func respondError(c *gin.Context, f failure) {
	messages := f.messages
	if messages == nil {
		messages = []string{}
	}
	c.JSON(f.status, gin.H{
		"errorMessages": messages,
		"errors":        gin.H{},
	})
}
