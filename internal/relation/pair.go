package relation

import (
	"fmt"
	"strings"
)

// Action is how a responder resolves a pending request.
type Action int

const (
	ActionAccept Action = iota + 1
	ActionReject
)

// ParseAction maps the wire value to an Action. Anything other than
// "accept" or "reject" is ErrInvalidAction.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "accept":
		return ActionAccept, nil
	case "reject":
		return ActionReject, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAction, s)
}

func (a Action) Valid() bool {
	return a == ActionAccept || a == ActionReject
}

func (a Action) String() string {
	switch a {
	case ActionAccept:
		return "accept"
	case ActionReject:
		return "reject"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// State is a pair's relationship as seen by one of its two users.
type State string

const (
	StateNone            State = "none"
	StateRequestSent     State = "request_sent"
	StateRequestReceived State = "request_received"
	StateRequestsCrossed State = "requests_crossed"
	StateFriends         State = "friends"
)

// Pair is the whole relationship between two distinct users. Both half-edges
// and the friendship live in one record so every transition is a single write.
//
// LowRequested means Low has a pending request to High, i.e. High is in
// SentRequests(Low) and Low is in ReceivedRequests(High).
type Pair struct {
	Low           uint64
	High          uint64
	LowRequested  bool
	HighRequested bool
	Friends       bool
	// Version is 0 while the record does not exist in the backend.
	Version uint64
}

// Order returns a and b as (low, high).
func Order(a, b uint64) (uint64, uint64) {
	if a > b {
		return b, a
	}
	return a, b
}

// NewPair returns the empty record for {a, b}.
func NewPair(a, b uint64) (Pair, error) {
	if a == b {
		return Pair{}, ErrSelfRequest
	}
	low, high := Order(a, b)
	return Pair{Low: low, High: high}, nil
}

func (p Pair) Has(u uint64) bool {
	return u == p.Low || u == p.High
}

// Other returns the member of the pair that is not u.
func (p Pair) Other(u uint64) uint64 {
	if u == p.Low {
		return p.High
	}
	return p.Low
}

// Requested reports whether u has a pending request to the other member.
func (p Pair) Requested(u uint64) bool {
	if u == p.Low {
		return p.LowRequested
	}
	return p.HighRequested
}

func (p *Pair) setRequested(u uint64, v bool) {
	if u == p.Low {
		p.LowRequested = v
		return
	}
	p.HighRequested = v
}

// Empty reports whether the pair carries no edge at all.
func (p Pair) Empty() bool {
	return !p.LowRequested && !p.HighRequested && !p.Friends
}

// StateFor describes the pair from viewer's side.
func (p Pair) StateFor(viewer uint64) State {
	if p.Friends {
		return StateFriends
	}
	out, in := p.Requested(viewer), p.Requested(p.Other(viewer))
	switch {
	case out && in:
		return StateRequestsCrossed
	case out:
		return StateRequestSent
	case in:
		return StateRequestReceived
	}
	return StateNone
}

// Send applies SendRequest(requester, other). A pending request in the
// opposite direction is left alone.
func (p *Pair) Send(requester uint64) error {
	if p.Friends {
		return ErrAlreadyFriends
	}
	if p.Requested(requester) {
		return ErrDuplicateRequest
	}
	p.setRequested(requester, true)
	return nil
}

// Resolve applies ResolveRequest(responder, other, action).
func (p *Pair) Resolve(responder uint64, action Action) error {
	if !action.Valid() {
		return ErrInvalidAction
	}
	requester := p.Other(responder)
	if p.Friends || !p.Requested(requester) {
		return ErrNoPendingRequest
	}
	switch action {
	case ActionAccept:
		// The reverse half-edge, if any, cannot outlive the friendship.
		p.LowRequested = false
		p.HighRequested = false
		p.Friends = true
	case ActionReject:
		p.setRequested(requester, false)
	}
	return nil
}
