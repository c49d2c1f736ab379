package http

import (
	"net/http"

	"comissoes/internal/core"
	applog "comissoes/internal/log"
)

type adminUsersPage struct {
	Title    string
	UserName string
	Flash    string
	Users    []core.User
}

// handleAdminUsers lists every registered account. Only the configured
// admin name may see it; everyone else is bounced to the home screen.
func (s *Server) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user := userFrom(r)
	if !s.isAdmin(user) {
		setFlash(w, "Acesso restrito.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		applog.FromContext(r.Context()).Error("Failed to list users", "error", err)
		http.Error(w, "erro interno", http.StatusInternalServerError)
		return
	}

	s.render(w, r, "admin_users.html", adminUsersPage{
		Title:    "Usuários",
		UserName: user.Name,
		Flash:    popFlash(w, r),
		Users:    users,
	})
}
