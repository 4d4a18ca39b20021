package domain

// RequestStatus is the state of a position request. Pending is the only
// non-terminal state; exactly one terminal transition closes a request.
type RequestStatus uint8

const (
	RequestStatusPending RequestStatus = iota
	RequestStatusAccepted
	RequestStatusRejected
	RequestStatusExpired
)

func (s RequestStatus) String() string {
	switch s {
	case RequestStatusPending:
		return "pending"
	case RequestStatusAccepted:
		return "accepted"
	case RequestStatusRejected:
		return "rejected"
	case RequestStatusExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// PositionRequest is the ephemeral two-phase-commit record of a user's
// purchase intent, pending maker confirmation within the fixed window.
// No funds move while a request is pending.
type PositionRequest struct {
	ID           string
	UserID       string
	MakerID      string
	QuoteKey     string
	Strategy     StrategyType
	AssetID      string
	QuoteAssetID string
	StrikePrice  uint64
	ContractSize uint64
	Premium      uint64
	CreatedAt    int64
	ExpiresAt    int64
	Status       RequestStatus
}

// RequestKey is the (user, request id) storage key.
func RequestKey(userID, requestID string) string {
	return userID + ":" + requestID
}

// Key returns the request's storage key.
func (r *PositionRequest) Key() string {
	return RequestKey(r.UserID, r.ID)
}

// IsPending returns whether the request can still transition.
func (r *PositionRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}

// IsExpired returns whether the confirmation window has elapsed.
func (r *PositionRequest) IsExpired(now int64) bool {
	return now >= r.ExpiresAt
}

// Accept brings a pending request to Accepted. It fails with
// ErrRequestExpired once the confirmation window has elapsed: an
// unresponsive maker cannot confirm late.
func (r *PositionRequest) Accept(now int64) error {
	if !r.IsPending() {
		return ErrRequestNotPending
	}
	if r.IsExpired(now) {
		return ErrRequestExpired
	}
	r.Status = RequestStatusAccepted
	return nil
}

// Reject brings a pending request to Rejected. Only the owning maker may
// reject; callers enforce that. Rejection is allowed at any time while
// pending, including before the window elapses.
func (r *PositionRequest) Reject() error {
	if !r.IsPending() {
		return ErrRequestNotPending
	}
	r.Status = RequestStatusRejected
	return nil
}

// Expire closes a pending request once the window has elapsed. Any caller
// may trigger it; this is the liveness guarantee against a maker that
// never answers.
func (r *PositionRequest) Expire(now int64) error {
	if !r.IsPending() {
		return ErrRequestNotPending
	}
	if !r.IsExpired(now) {
		return ErrRequestNotExpired
	}
	r.Status = RequestStatusExpired
	return nil
}
