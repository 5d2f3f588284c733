package booking

import (
	"strings"

	"github.com/glossbook/salon-booking/internal/httperr"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

func InitialStatus() Status {
	return StatusPending
}

func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusAccepted:
		return StatusAccepted, nil
	case StatusRejected:
		return StatusRejected, nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

// ===============================
// Transitions
// ===============================

// Only a pending booking may move, and only to a terminal decision.
// Accepted and rejected are final: no re-acceptance after a rejection
// and no way back to pending.
var allowedTransitions = map[Status][]Status{
	StatusPending: {StatusAccepted, StatusRejected},
}

func CanTransition(from, to Status) error {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}

// ===============================
// Blocking policy
// ===============================

// BlockingStatuses is the set of statuses that keep a stylist's slot
// occupied for conflict purposes.
type BlockingStatuses []Status

// DefaultBlocking blocks on every status, rejected included. Whether a
// rejected booking should keep its slot blocked is an open product
// question; deployments decide via configuration.
func DefaultBlocking() BlockingStatuses {
	return BlockingStatuses{StatusPending, StatusAccepted, StatusRejected}
}

func ParseBlockingStatuses(csv string) BlockingStatuses {
	var out BlockingStatuses
	for _, part := range strings.Split(csv, ",") {
		if st, err := ParseStatus(part); err == nil {
			out = append(out, st)
		}
	}
	if len(out) == 0 {
		return DefaultBlocking()
	}
	return out
}

func (b BlockingStatuses) Strings() []string {
	out := make([]string, len(b))
	for i, st := range b {
		out[i] = string(st)
	}
	return out
}
