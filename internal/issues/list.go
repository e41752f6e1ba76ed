package issues

import "github.com/erraggy/asyncforge/internal/severity"

// List is an ordered collection of issues. The zero value is ready to use.
type List struct {
	items []Issue
}

// Add appends issues in order.
func (l *List) Add(items ...Issue) {
	l.items = append(l.items, items...)
}

// Items returns the issues in the order they were added.
func (l *List) Items() []Issue {
	if l == nil {
		return nil
	}
	return l.items
}

// Len returns the number of issues.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// Filter returns the issues with the given severity, preserving order.
func (l *List) Filter(sev severity.Severity) []Issue {
	var out []Issue
	for _, it := range l.Items() {
		if it.Severity == sev {
			out = append(out, it)
		}
	}
	return out
}

// HasBlocking reports whether any issue blocks validity.
func (l *List) HasBlocking() bool {
	for _, it := range l.Items() {
		if it.Severity.Blocks() {
			return true
		}
	}
	return false
}

// Texts converts issues to their plain "path: message" strings.
func Texts(items []Issue) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Text())
	}
	return out
}
