package issue

// Labeler resolves a label key into display text.
type Labeler interface {
	Label(key string) string
}

// LabelMap is a Labeler backed by a map. Unknown keys resolve to themselves.
type LabelMap map[string]string

// Label implements Labeler.
func (m LabelMap) Label(key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return key
}

// DefaultLabels are the English labels for the catalog.
var DefaultLabels = LabelMap{
	"issue.low_confidence":      "Low confidence",
	"issue.no_evidence":         "No evidence",
	"issue.unresolved_comments": "Unresolved comments",
	"issue.unapproved_answer":   "Unapproved answer",
	"issue.unanswered":          "Unanswered",
}

func orDefault(l Labeler) Labeler {
	if l == nil {
		return DefaultLabels
	}
	return l
}
