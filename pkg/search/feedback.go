package search

// UserFeedback is the result of a query: a one-line status, plain text and
// optional HTML. It is immutable; the With methods return modified copies.
type UserFeedback struct {
	status string
	text   string
	html   string
}

// Feedback returns feedback carrying only a status line.
func Feedback(status string) UserFeedback {
	return UserFeedback{status: status}
}

func (f UserFeedback) WithStatus(s string) UserFeedback { f.status = s; return f }
func (f UserFeedback) WithText(s string) UserFeedback   { f.text = s; return f }
func (f UserFeedback) WithHTML(s string) UserFeedback   { f.html = s; return f }

func (f UserFeedback) Status() string { return f.status }
func (f UserFeedback) Text() string   { return f.text }

// HTML returns the HTML body, falling back to nothing when none was set.
func (f UserFeedback) HTML() string { return f.html }

// IsZero reports whether no field is set.
func (f UserFeedback) IsZero() bool { return f == UserFeedback{} }
