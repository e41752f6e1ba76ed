package issues

import (
	"testing"

	"github.com/erraggy/asyncforge/internal/severity"
	"github.com/stretchr/testify/assert"
)

func TestIssueString(t *testing.T) {
	tests := []struct {
		name     string
		issue    Issue
		contains []string
	}{
		{
			name:     "error severity",
			issue:    Issue{Path: "operations.publishOrder", Message: "missing action", Severity: severity.SeverityError},
			contains: []string{"✗", "operations.publishOrder", "missing action"},
		},
		{
			name:     "warning severity",
			issue:    Issue{Path: "channels", Message: "no channels", Severity: severity.SeverityWarning},
			contains: []string{"⚠", "channels", "no channels"},
		},
		{
			name:     "info severity with element",
			issue:    Issue{Path: "bindings", Message: "skipped", Severity: severity.SeverityInfo, Element: "publishOrder"},
			contains: []string{"ℹ", "element: publishOrder"},
		},
		{
			name:     "empty path falls back to document",
			issue:    Issue{Message: "x", Severity: severity.Severity(42)},
			contains: []string{"?", "document: x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.issue.String()
			for _, want := range tt.contains {
				assert.Contains(t, s, want)
			}
		})
	}
}

func TestIssueText(t *testing.T) {
	assert.Equal(t, "info.title: required", Issue{Path: "info.title", Message: "required"}.Text())
	assert.Equal(t, "bare", Issue{Message: "bare"}.Text())
}

func TestList(t *testing.T) {
	var l List
	assert.Equal(t, 0, l.Len())
	assert.False(t, l.HasBlocking())

	l.Add(Warningf(StageDiscovery, "", "root %s", "missing"))
	l.Add(Errorf(StageValidation, "info", "title required").WithElement("doc"))

	assert.Equal(t, 2, l.Len())
	assert.True(t, l.HasBlocking())
	assert.Len(t, l.Filter(severity.SeverityWarning), 1)
	assert.Equal(t, "root missing", l.Items()[0].Message)
	assert.Equal(t, "doc", l.Items()[1].Element)
	assert.Equal(t, []string{"root missing", "info: title required"}, Texts(l.Items()))

	var nilList *List
	assert.Nil(t, nilList.Items())
	assert.Equal(t, 0, nilList.Len())
}
