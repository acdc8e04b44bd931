package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"friendgraph/internal/common"
	"friendgraph/internal/dbsql"
	"friendgraph/internal/ratelimit"
	"friendgraph/internal/relation"

	"go.uber.org/zap"
)

// UserSummary is the only shape in which other users are shown.
type UserSummary struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func NewUserSummary(u *dbsql.User) UserSummary {
	return UserSummary{ID: u.UserID, Email: u.Email, Name: u.Name}
}

type UserPage struct {
	Results  []UserSummary `json:"results"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	HasMore  bool          `json:"has_more"`
}

// FriendService resolves emails to users and drives the relationship store on
// behalf of an authenticated caller.
type FriendService interface {
	SendFriendRequest(ctx context.Context, caller uint64, targetEmail string) error
	RespondFriendRequest(ctx context.Context, caller uint64, requesterEmail, action string) error
	ListFriends(ctx context.Context, caller uint64, page common.PageRequest) (*UserPage, error)
	ListPendingRequests(ctx context.Context, caller uint64, page common.PageRequest) (*UserPage, error)
	ListSentRequests(ctx context.Context, caller uint64, page common.PageRequest) (*UserPage, error)
	SearchUsers(ctx context.Context, query string, page common.PageRequest) (*UserPage, error)
	RelationshipStatus(ctx context.Context, caller uint64, email string) (relation.State, error)
}

type friendService struct {
	users     UserRepository
	graph     relation.Store
	admission ratelimit.Admission
	log       *zap.Logger
}

func NewFriendService(users UserRepository, graph relation.Store, admission ratelimit.Admission, log *zap.Logger) FriendService {
	if admission == nil {
		admission = ratelimit.AllowAll
	}
	return &friendService{users: users, graph: graph, admission: admission, log: log.Named("friends")}
}

func (s *friendService) SendFriendRequest(ctx context.Context, caller uint64, targetEmail string) error {
	ok, err := s.admission.Allow(ctx, caller)
	if err != nil {
		s.log.Error("admission check failed", zap.Uint64("caller", caller), zap.Error(err))
		return fmt.Errorf("admission check: %w", err)
	}
	if !ok {
		return relation.ErrRateLimited
	}

	if strings.TrimSpace(targetEmail) == "" {
		return fmt.Errorf("%w: email is required", relation.ErrValidation)
	}
	target, err := s.users.GetUserByEmail(ctx, targetEmail)
	if errors.Is(err, relation.ErrUserNotFound) {
		return relation.ErrTargetNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup target: %w", err)
	}

	return s.graph.SendRequest(ctx, caller, target.UserID)
}

func (s *friendService) RespondFriendRequest(ctx context.Context, caller uint64, requesterEmail, action string) error {
	if strings.TrimSpace(requesterEmail) == "" || strings.TrimSpace(action) == "" {
		return fmt.Errorf("%w: email and action are required", relation.ErrValidation)
	}
	requester, err := s.users.GetUserByEmail(ctx, requesterEmail)
	if err != nil {
		if errors.Is(err, relation.ErrUserNotFound) {
			return relation.ErrUserNotFound
		}
		return fmt.Errorf("lookup requester: %w", err)
	}
	act, err := relation.ParseAction(action)
	if err != nil {
		return err
	}

	return s.graph.ResolveRequest(ctx, caller, requester.UserID, act)
}

func (s *friendService) ListFriends(ctx context.Context, caller uint64, page common.PageRequest) (*UserPage, error) {
	ids, err := s.graph.ListFriends(ctx, caller)
	if err != nil {
		return nil, err
	}
	return s.pageOf(ctx, ids, page)
}

func (s *friendService) ListPendingRequests(ctx context.Context, caller uint64, page common.PageRequest) (*UserPage, error) {
	ids, err := s.graph.ListPendingReceived(ctx, caller)
	if err != nil {
		return nil, err
	}
	return s.pageOf(ctx, ids, page)
}

func (s *friendService) ListSentRequests(ctx context.Context, caller uint64, page common.PageRequest) (*UserPage, error) {
	ids, err := s.graph.ListPendingSent(ctx, caller)
	if err != nil {
		return nil, err
	}
	return s.pageOf(ctx, ids, page)
}

// SearchUsers never lists everyone: an empty query yields an empty page.
func (s *friendService) SearchUsers(ctx context.Context, query string, page common.PageRequest) (*UserPage, error) {
	out := &UserPage{Results: []UserSummary{}, Page: page.Number, PageSize: page.Size}
	if strings.TrimSpace(query) == "" {
		return out, nil
	}

	// One extra row tells us whether another page exists.
	users, err := s.users.SearchUsers(ctx, query, page.Size+1, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	if len(users) > page.Size {
		users = users[:page.Size]
		out.HasMore = true
	}
	for _, u := range users {
		out.Results = append(out.Results, NewUserSummary(u))
	}
	return out, nil
}

func (s *friendService) RelationshipStatus(ctx context.Context, caller uint64, email string) (relation.State, error) {
	if strings.TrimSpace(email) == "" {
		return "", fmt.Errorf("%w: email is required", relation.ErrValidation)
	}
	other, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, relation.ErrUserNotFound) {
			return "", relation.ErrUserNotFound
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}
	return s.graph.Status(ctx, caller, other.UserID)
}

// pageOf cuts the page out of an ascending id snapshot and resolves it to
// summaries in the same order.
func (s *friendService) pageOf(ctx context.Context, ids []uint64, page common.PageRequest) (*UserPage, error) {
	window, more := common.SlicePage(ids, page)
	out := &UserPage{Results: make([]UserSummary, 0, len(window)), Page: page.Number, PageSize: page.Size, HasMore: more}
	if len(window) == 0 {
		return out, nil
	}

	users, err := s.users.GetUsersByIDs(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	byID := make(map[uint64]*dbsql.User, len(users))
	for _, u := range users {
		byID[u.UserID] = u
	}
	for _, id := range window {
		u, ok := byID[id]
		if !ok {
			s.log.Warn("related user missing from identity store", zap.Uint64("user_id", id))
			continue
		}
		out.Results = append(out.Results, NewUserSummary(u))
	}
	return out, nil
}
