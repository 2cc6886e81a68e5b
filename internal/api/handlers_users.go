package api

import "net/http"

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.ListUsers(r.Context())
	if err != nil {
		serviceError(w, err, "Failed to fetch users")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(users))
}

type createUserRequest struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := s.users.CreateUser(r.Context(), req.Name, req.Email)
	if err != nil {
		serviceError(w, err, "Failed to create user")
		return
	}
	writeJSON(w, http.StatusCreated, user)
}
