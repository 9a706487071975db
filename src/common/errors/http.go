package errors

// Summary is a flattened, loggable view of an Error's classification. It
// replaces the HTTP response shape used by server-oriented callers: this
// module has no HTTP surface, so the only consumer is structured logging
// and the orchestrator's per-component failure accounting.
type Summary struct {
	Domain    string `json:"domain"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Skippable bool   `json:"skippable"`
	Transient bool   `json:"transient"`
	Fatal     bool   `json:"fatal"`
}

// Summarize converts an error into a Summary. Non-*Error values are reported
// as fatal/internal since their recoverability is unknown.
func Summarize(err error) Summary {
	var e *Error
	if As(err, &e) {
		return Summary{
			Domain:    string(e.Domain),
			Code:      string(e.Code),
			Message:   e.Error(),
			Skippable: e.IsSkippable(),
			Transient: e.IsTransient(),
			Fatal:     e.IsFatal(),
		}
	}
	return Summary{
		Domain:  string(DomainInternal),
		Code:    "unknown",
		Message: err.Error(),
		Fatal:   true,
	}
}
