package material

// TransitionGuard lists, per request status, the statuses it may move to.
// A nil guard allows every change.
type TransitionGuard map[RequestStatus][]RequestStatus

// PermissiveGuard allows any status to be set from any other.
func PermissiveGuard() TransitionGuard {
	return nil
}

// StrictGuard follows the procurement pipeline forward only.
func StrictGuard() TransitionGuard {
	return TransitionGuard{
		RequestPending:   {RequestApproved, RequestRejected},
		RequestApproved:  {RequestOrdered, RequestRejected},
		RequestOrdered:   {RequestInTransit},
		RequestInTransit: {RequestDelivered},
	}
}

// Allows reports whether from -> to is permitted. Re-saving the same status
// is always permitted.
func (g TransitionGuard) Allows(from, to RequestStatus) bool {
	if g == nil || from == to {
		return true
	}
	for _, next := range g[from] {
		if next == to {
			return true
		}
	}
	return false
}
