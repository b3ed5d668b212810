// internal/domain/homework/homework.go
package homework

// Status is the review state code reported by the review API.
type Status string

const (
	StatusReviewing Status = "reviewing"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

// Record is a single reviewed submission as returned by the review API.
type Record struct {
	Name   string `json:"homework_name"`
	Status Status `json:"status"`
}

// StatusResponse is the decoded payload of one status request.
type StatusResponse struct {
	Homeworks []Record
	// CurrentDate is the server-side unix time of the request, nil when the API did not echo one.
	CurrentDate *int64
}
