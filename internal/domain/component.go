package domain

// Component represents a Jira project component
type Component struct {
	ID   string
	Name string
	Lead *Lead // nil means the component has no owner
}

// Lead represents the owner of a component
type Lead struct {
	AccountID   string
	DisplayName string
}

// HasLead reports whether the component has an assigned owner
func (c Component) HasLead() bool {
	return c.Lead != nil
}

// Issue represents a Jira issue snapshot. Only component names are kept.
type Issue struct {
	Key        string
	Components []IssueComponent
}

// IssueComponent is a component reference attached to an issue
type IssueComponent struct {
	Name string
}
