package http

import (
	"errors"
	"net/http"

	"comissoes/internal/auth"
	"comissoes/internal/core"
	applog "comissoes/internal/log"
)

type authPage struct {
	Title    string
	UserName string // always empty on the credential screens
	Flash    string
	Error    string
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, r, "login.html", authPage{Title: "Entrar", Flash: popFlash(w, r)})
	case http.MethodPost:
		if !s.credLimiter.allow(remoteIP(r)) {
			s.render(w, r, "login.html", authPage{Title: "Entrar", Error: "Muitas tentativas. Aguarde um momento."})
			return
		}
		name := r.FormValue("nome")
		password := r.FormValue("senha")

		user, err := s.accounts.Login(r.Context(), name, password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				s.render(w, r, "login.html", authPage{Title: "Entrar", Error: "Nome ou senha incorretos."})
				return
			}
			applog.FromContext(r.Context()).Error("Login failed", "error", err)
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}

		if err := s.issueSession(w, user.ID, user.Name); err != nil {
			applog.FromContext(r.Context()).Error("Failed to issue session", "error", err)
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, r, "register.html", authPage{Title: "Cadastro", Flash: popFlash(w, r)})
	case http.MethodPost:
		if !s.credLimiter.allow(remoteIP(r)) {
			s.render(w, r, "register.html", authPage{Title: "Cadastro", Error: "Muitas tentativas. Aguarde um momento."})
			return
		}
		name := r.FormValue("nome")
		password := r.FormValue("senha")

		user, err := s.accounts.Register(r.Context(), name, password)
		if err != nil {
			var msg string
			switch {
			case errors.Is(err, auth.ErrNameTaken):
				msg = "Já existe um cadastro com esse nome."
			case errors.Is(err, core.ErrEmptyName), errors.Is(err, core.ErrEmptyPassword):
				msg = "Preencha nome e senha."
			default:
				applog.FromContext(r.Context()).Error("Registration failed", "error", err)
				msg = "Não foi possível concluir o cadastro."
			}
			s.render(w, r, "register.html", authPage{Title: "Cadastro", Error: msg})
			return
		}

		if err := s.issueSession(w, user.ID, user.Name); err != nil {
			applog.FromContext(r.Context()).Error("Failed to issue session", "error", err)
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleRecoverPassword(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, r, "recover_password.html", authPage{Title: "Recuperar senha", Flash: popFlash(w, r)})
	case http.MethodPost:
		if !s.credLimiter.allow(remoteIP(r)) {
			s.render(w, r, "recover_password.html", authPage{Title: "Recuperar senha", Error: "Muitas tentativas. Aguarde um momento."})
			return
		}
		name := r.FormValue("nome")
		email := r.FormValue("email")
		newPassword := r.FormValue("nova_senha")

		err := s.accounts.RecoverPassword(r.Context(), name, email, newPassword)
		if err != nil {
			var msg string
			switch {
			case errors.Is(err, auth.ErrRecoveryMismatch):
				msg = "Não foi possível confirmar os dados informados."
			case errors.Is(err, core.ErrEmptyPassword):
				msg = "Informe a nova senha."
			default:
				applog.FromContext(r.Context()).Error("Password recovery failed", "error", err)
				msg = "Não foi possível redefinir a senha."
			}
			s.render(w, r, "recover_password.html", authPage{Title: "Recuperar senha", Error: msg})
			return
		}

		setFlash(w, "Senha redefinida. Entre com a nova senha.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
