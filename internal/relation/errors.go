package relation

import "errors"

// Domain errors. Every precondition failure maps to exactly one of these.
var (
	ErrSelfRequest      = errors.New("cannot send a friend request to yourself")
	ErrAlreadyFriends   = errors.New("already friends with this user")
	ErrDuplicateRequest = errors.New("friend request already sent to this user")
	ErrTargetNotFound   = errors.New("target user not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrNoPendingRequest = errors.New("no pending friend request from this user")
	ErrInvalidAction    = errors.New("invalid action")
	ErrRateLimited      = errors.New("too many friend requests, slow down")
	ErrValidation       = errors.New("validation failed")
)

// ErrConflict is returned when a pair kept changing underneath a transition
// for MaxAttempts rounds. It is a storage condition, not a domain one.
var ErrConflict = errors.New("relationship changed concurrently, try again")

var kinds = []struct {
	err  error
	kind string
}{
	{ErrSelfRequest, "self_request"},
	{ErrAlreadyFriends, "already_friends"},
	{ErrDuplicateRequest, "duplicate_request"},
	{ErrTargetNotFound, "target_not_found"},
	{ErrUserNotFound, "user_not_found"},
	{ErrNoPendingRequest, "no_pending_request"},
	{ErrInvalidAction, "invalid_action"},
	{ErrRateLimited, "rate_limited"},
	{ErrValidation, "validation_error"},
	{ErrConflict, "conflict"},
}

// KindOf returns the stable code for err, or "internal" when err is not part
// of the taxonomy.
func KindOf(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "internal"
}

// IsDomain reports whether err is one of the precondition errors above.
func IsDomain(err error) bool {
	kind := KindOf(err)
	return kind != "internal" && kind != "conflict"
}
