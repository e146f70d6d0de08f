package domain

import "fmt"

// FailKind classifies a failed delivery attempt.
type FailKind string

const (
	FailBlocked      FailKind = "blocked"
	FailChatNotFound FailKind = "chat-not-found"
	FailOther        FailKind = "other"
)

// DeliveryFailure is a single failed send during a broadcast run.
type DeliveryFailure struct {
	UserID   int64
	Username string
	Kind     FailKind
	Detail   string
}

func (f DeliveryFailure) String() string {
	info := fmt.Sprintf("ID: %d", f.UserID)
	if f.Username != "" {
		info += fmt.Sprintf(" (@%s)", f.Username)
	}
	return fmt.Sprintf("%s (%s)", info, f.Detail)
}

// maxReportedFailures bounds how many failures the final report lists
// verbatim; the rest are summarized by count.
const maxReportedFailures = 5

// Report accumulates per-recipient outcomes of one broadcast run.
// Invariant: Success+Failed == Total once the run completes.
type Report struct {
	RunID    string
	Total    int
	Success  int
	Failed   int
	Failures []DeliveryFailure
	Extra    int
}

// AddSuccess records one delivered message.
func (r *Report) AddSuccess() {
	r.Success++
}

// AddFailure records one failed delivery, keeping only the first few
// entries for the report.
func (r *Report) AddFailure(f DeliveryFailure) {
	r.Failed++
	if len(r.Failures) < maxReportedFailures {
		r.Failures = append(r.Failures, f)
	} else {
		r.Extra++
	}
}

// previewLimit is the maximum number of characters shown when an admin
// confirms a broadcast payload.
const previewLimit = 100

// TruncatePreview shortens text to the confirmation preview length,
// appending an ellipsis marker when anything was cut.
func TruncatePreview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLimit {
		return text
	}
	return string(runes[:previewLimit]) + "..."
}
