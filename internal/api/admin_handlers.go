package api

import (
	"net/http"
	"strings"

	"github.com/kidandcat/taskboard/internal/auth"
	"github.com/kidandcat/taskboard/internal/model"
	"github.com/kidandcat/taskboard/internal/service"
)

// Admin user management. Role changes happen only here; everywhere
// else the role set at creation is immutable.

func (s *Server) handleAdminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers()
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]*UserResource, len(users))
	for i := range users {
		out[i] = NewUserResource(&users[i], s.now())
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": out})
}

func (s *Server) handleAdminCreateUser(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if !readJSON(w, r, &in) {
		return
	}

	errs := service.ValidationError{}
	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "name is required"
	}
	if strings.TrimSpace(in.Email) == "" {
		errs["email"] = "email is required"
	}
	role := model.RoleUser
	if in.Role != "" {
		role = model.UserRole(in.Role)
		if !role.Valid() {
			errs["role"] = "invalid role"
		}
	}
	if len(errs) > 0 {
		writeError(w, errs)
		return
	}

	u, err := s.store.CreateUser(strings.TrimSpace(in.Name), in.Email, role)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			writeError(w, service.ValidationError{"email": "email already taken"})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, NewUserResource(u, s.now()))
}

func (s *Server) handleAdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, service.ErrNotFound)
		return
	}
	if id == auth.CurrentUser(r).ID {
		writeError(w, service.ValidationError{"id": "cannot delete yourself"})
		return
	}
	if err := s.store.DeleteUser(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
