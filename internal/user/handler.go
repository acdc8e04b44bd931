package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"friendgraph/internal/common"
	"friendgraph/internal/relation"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Handler maps the JSON API onto UserService and FriendService.
type Handler struct {
	users   UserService
	friends FriendService
	pages   common.Paginator
	log     *zap.Logger
}

func NewHandler(users UserService, friends FriendService, pages common.Paginator, log *zap.Logger) *Handler {
	return &Handler{users: users, friends: friends, pages: pages, log: log.Named("http")}
}

// RegisterRoutes mounts the API on r. Everything except health, signup and
// login goes through auth.
func (h *Handler) RegisterRoutes(r *mux.Router, auth mux.MiddlewareFunc) {
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/auth/signup", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)

	protected := r.NewRoute().Subrouter()
	protected.Use(auth)
	protected.HandleFunc("/users/me", h.GetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/users/search", h.SearchUsers).Methods(http.MethodGet)
	protected.HandleFunc("/friend-requests", h.SendFriendRequest).Methods(http.MethodPost)
	protected.HandleFunc("/friend-requests", h.RespondFriendRequest).Methods(http.MethodPut)
	protected.HandleFunc("/friend-requests/pending", h.ListPendingRequests).Methods(http.MethodGet)
	protected.HandleFunc("/friend-requests/sent", h.ListSentRequests).Methods(http.MethodGet)
	protected.HandleFunc("/friends", h.ListFriends).Methods(http.MethodGet)
	protected.HandleFunc("/relationships/{email}", h.RelationshipStatus).Methods(http.MethodGet)
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

type friendRequestBody struct {
	Email  string `json:"email"`
	Action string `json:"action,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type statusResponse struct {
	Email  string         `json:"email"`
	Status relation.State `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decode(w, r, &req) {
		return
	}
	user, token, err := h.users.RegisterUser(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: NewUserSummary(user)})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}
	user, token, err := h.users.LoginUser(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: NewUserSummary(user)})
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	user, err := h.users.GetProfile(r.Context(), caller)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, NewUserSummary(user))
}

func (h *Handler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	page, ok := h.page(w, r)
	if !ok {
		return
	}
	result, err := h.friends.SearchUsers(r.Context(), r.URL.Query().Get("query"), page)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) SendFriendRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req friendRequestBody
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.friends.SendFriendRequest(r.Context(), caller, req.Email); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse{Message: "friend request sent"})
}

func (h *Handler) RespondFriendRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req friendRequestBody
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.friends.RespondFriendRequest(r.Context(), caller, req.Email, req.Action); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "friend request resolved"})
}

func (h *Handler) ListFriends(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.friends.ListFriends)
}

func (h *Handler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.friends.ListPendingRequests)
}

func (h *Handler) ListSentRequests(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.friends.ListSentRequests)
}

func (h *Handler) RelationshipStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	email := mux.Vars(r)["email"]
	state, err := h.friends.RelationshipStatus(r.Context(), caller, email)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Email: common.NormalizeEmail(email), Status: state})
}

type listFunc func(ctx context.Context, caller uint64, page common.PageRequest) (*UserPage, error)

func (h *Handler) list(w http.ResponseWriter, r *http.Request, fn listFunc) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	page, ok := h.page(w, r)
	if !ok {
		return
	}
	result, err := fn(r.Context(), caller, page)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) caller(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, ok := common.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "user not authenticated", Code: "unauthorized"})
	}
	return id, ok
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request) (common.PageRequest, bool) {
	q := r.URL.Query()
	page, err := h.pages.Parse(q.Get("page"), q.Get("page_size"))
	if err != nil {
		h.writeError(w, r, err)
		return common.PageRequest{}, false
	}
	return page, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body", Code: relation.KindOf(relation.ErrValidation)})
		return false
	}
	return true
}

var statusByKind = map[string]int{
	"validation_error":   http.StatusBadRequest,
	"self_request":       http.StatusBadRequest,
	"invalid_action":     http.StatusBadRequest,
	"no_pending_request": http.StatusBadRequest,
	"already_friends":    http.StatusConflict,
	"duplicate_request":  http.StatusConflict,
	"conflict":           http.StatusConflict,
	"target_not_found":   http.StatusNotFound,
	"user_not_found":     http.StatusNotFound,
	"rate_limited":       http.StatusTooManyRequests,
}

// errorStatus maps err to an HTTP status and the code sent to clients.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return http.StatusConflict, "email_taken"
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials"
	}
	kind := relation.KindOf(err)
	if status, ok := statusByKind[kind]; ok {
		return status, kind
	}
	return http.StatusInternalServerError, kind
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := errorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", common.RequestIDFromContext(r.Context())),
			zap.Error(err))
		msg = "internal server error"
	}
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
