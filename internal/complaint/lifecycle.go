package complaint

// Status is a complaint's lifecycle status.
type Status string

// Lifecycle statuses. Closed and Rejected represent logical deletion;
// complaints are never physically removed.
const (
	// StatusNew is the status of a freshly submitted complaint.
	StatusNew Status = "New"
	// StatusUnderReview means the owning department acknowledged the complaint.
	StatusUnderReview Status = "UnderReview"
	// StatusInProgress means the department is actively working the complaint.
	StatusInProgress Status = "InProgress"
	// StatusResponded means the complainant received a response.
	StatusResponded Status = "Responded"
	// StatusResolved means the response settled the complaint.
	StatusResolved Status = "Resolved"
	// StatusRejected means the complaint was dismissed.
	StatusRejected Status = "Rejected"
	// StatusClosed is the final archived state.
	StatusClosed Status = "Closed"
)

// Statuses lists every lifecycle status in progression order, for rendering
// counters and filter dropdowns.
var Statuses = []Status{
	StatusNew,
	StatusUnderReview,
	StatusInProgress,
	StatusResponded,
	StatusResolved,
	StatusRejected,
	StatusClosed,
}

// transitions is the complete edge table of the state machine. A requested
// status change is legal iff it appears here; there is no skipping and no
// reversing. Closed has no outgoing edges.
var transitions = map[Status][]Status{
	StatusNew:         {StatusUnderReview},
	StatusUnderReview: {StatusInProgress},
	StatusInProgress:  {StatusResponded},
	StatusResponded:   {StatusResolved, StatusRejected},
	StatusResolved:    {StatusClosed},
	StatusRejected:    {StatusClosed},
	StatusClosed:      {},
}

// KnownStatus reports whether s is a defined lifecycle status.
func KnownStatus(s Status) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether the edge from -> to exists. A transition to
// the current status is never legal; it indicates a stale client.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

// NextStatuses returns the statuses reachable from s, for rendering the
// transition controls on the detail page.
func NextStatuses(s Status) []Status {
	out := make([]Status, len(transitions[s]))
	copy(out, transitions[s])

	return out
}

// Terminal reports whether s is an archival status with the complaint's
// handling finished. Rejected still has its bookkeeping edge to Closed.
func Terminal(s Status) bool {
	return s == StatusClosed || s == StatusRejected
}
