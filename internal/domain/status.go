package domain

import "slices"

type Status string

const (
	StatusPending   Status = "Pending"
	StatusAccepted  Status = "Accepted"
	StatusRejected  Status = "Rejected"
	StatusCompleted Status = "Completed"
)

var statuses = []Status{StatusPending, StatusAccepted, StatusRejected, StatusCompleted}

// PublicStatuses are the statuses that make an order visible on the project board.
var PublicStatuses = []Status{StatusAccepted, StatusCompleted}

func Statuses() []Status {
	return slices.Clone(statuses)
}

func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	if !slices.Contains(statuses, s) {
		return "", false
	}
	return s, true
}

func (s Status) IsPublic() bool {
	return slices.Contains(PublicStatuses, s)
}

func (s Status) String() string {
	return string(s)
}
