package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponentIssueCounts_Add(t *testing.T) {
	tests := []struct {
		name   string
		issues []Issue
		want   ComponentIssueCounts
	}{
		{
			name: "multi component issue counts for each component",
			issues: []Issue{
				{Components: []IssueComponent{{Name: "A"}}},
				{Components: []IssueComponent{{Name: "A"}, {Name: "B"}}},
			},
			want: ComponentIssueCounts{"A": 2, "B": 1},
		},
		{
			name: "nil and empty components are ignored",
			issues: []Issue{
				{Key: "SP-1"},
				{Key: "SP-2", Components: []IssueComponent{}},
				{Key: "SP-3", Components: []IssueComponent{{Name: "A"}}},
			},
			want: ComponentIssueCounts{"A": 1},
		},
		{
			name:   "no issues",
			issues: nil,
			want:   ComponentIssueCounts{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComponentIssueCounts{}
			for _, issue := range tt.issues {
				got.Add(issue)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComponentIssueCounts_Rows(t *testing.T) {
	counts := ComponentIssueCounts{"Frontend": 2, "Backend": 5, "API": 2}

	assert.Equal(t, []ComponentIssueCount{
		{Component: "Backend", Issues: 5},
		{Component: "API", Issues: 2},
		{Component: "Frontend", Issues: 2},
	}, counts.Rows())
	assert.Empty(t, ComponentIssueCounts{}.Rows())
}

func TestPageCursor(t *testing.T) {
	c := NewPageCursor(0)
	assert.Equal(t, DefaultPageSize, c.MaxResults)
	assert.Equal(t, 0, c.StartAt)

	c.Advance(120)
	assert.Equal(t, 50, c.StartAt)
	assert.True(t, c.HasNext())

	c.Advance(120)
	assert.True(t, c.HasNext())

	c.Advance(120)
	assert.Equal(t, 150, c.StartAt)
	assert.False(t, c.HasNext())
}

func TestPageCursor_TotalShrinks(t *testing.T) {
	c := NewPageCursor(50)
	c.Advance(500)
	c.Advance(60)
	assert.False(t, c.HasNext())
}
