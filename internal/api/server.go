// Package api exposes the ledger over a JSON HTTP boundary. Handlers
// parse and validate the request shape, delegate to the services, and map
// service errors onto status codes; no business rules live here.
package api

import (
	"net/http"

	"tabshare/internal/service"
	"tabshare/internal/storage"
)

// Server holds the service handles behind the HTTP boundary.
type Server struct {
	users    *service.UserService
	groups   *service.GroupService
	payments *service.PaymentService
	invites  *service.InviteService
}

// NewServer wires the services onto the given storage backend.
func NewServer(store storage.Store) *Server {
	return &Server{
		users:    service.NewUserService(store),
		groups:   service.NewGroupService(store),
		payments: service.NewPaymentService(store),
		invites:  service.NewInviteService(store),
	}
}

// RegisterRoutes mounts every API endpoint on the mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/users", s.handleListUsers)
	mux.HandleFunc("POST /api/users", s.handleCreateUser)

	mux.HandleFunc("GET /api/expense-groups", s.handleListGroups)
	mux.HandleFunc("POST /api/expense-groups", s.handleCreateGroup)
	mux.HandleFunc("GET /api/expense-groups/{id}", s.handleGetGroup)

	mux.HandleFunc("POST /api/payments", s.handleAddPayment)
	mux.HandleFunc("GET /api/users/{userId}/payment-methods", s.handleListPaymentMethods)
	mux.HandleFunc("POST /api/payment-methods", s.handleAddPaymentMethod)

	mux.HandleFunc("POST /api/expense-groups/{id}/invites", s.handleCreateInvite)
	mux.HandleFunc("GET /api/expense-groups/{id}/invites", s.handleListActiveInvites)
	mux.HandleFunc("GET /api/invites/{code}", s.handleResolveInvite)
	mux.HandleFunc("POST /api/invites/{code}/join", s.handleRedeemInvite)

	mux.HandleFunc("GET /healthz", handleHealth)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
