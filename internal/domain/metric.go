package domain

import "sort"

// ComponentIssueCounts maps a component name to the number of issues referencing it
type ComponentIssueCounts map[string]int

// ComponentIssueCount is a single row of ComponentIssueCounts
type ComponentIssueCount struct {
	Component string `json:"component"`
	Issues    int    `json:"issues"`
}

// Add counts one issue for every component it references
func (c ComponentIssueCounts) Add(issue Issue) {
	for _, component := range issue.Components {
		if _, ok := c[component.Name]; !ok {
			c[component.Name] = 0
		}
		c[component.Name]++
	}
}

// Rows returns the counts sorted by issue count descending, then by name
func (c ComponentIssueCounts) Rows() []ComponentIssueCount {
	rows := make([]ComponentIssueCount, 0, len(c))
	for name, count := range c {
		rows = append(rows, ComponentIssueCount{Component: name, Issues: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Issues != rows[j].Issues {
			return rows[i].Issues > rows[j].Issues
		}
		return rows[i].Component < rows[j].Component
	})
	return rows
}
