// internal/domain/homework/catalog.go
package homework

var verdicts = map[Status]string{
	StatusReviewing: "taken for review",
	StatusApproved:  "reviewer satisfied, accepted",
	StatusRejected:  "errors found, not accepted",
}

// Verdict returns the display text for a known status code.
func Verdict(s Status) (string, bool) {
	v, ok := verdicts[s]
	return v, ok
}

// KnownStatuses lists the codes present in the catalog.
func KnownStatuses() []Status {
	return []Status{StatusReviewing, StatusApproved, StatusRejected}
}
