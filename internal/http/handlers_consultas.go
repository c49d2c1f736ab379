package http

import (
	"errors"
	"net/http"
	"strings"

	"comissoes/internal/amqp"
	"comissoes/internal/core"
	applog "comissoes/internal/log"
)

type consultationsPage struct {
	Title         string
	UserName      string
	Flash         string
	Consultations []core.Consultation
}

type consultationEditPage struct {
	Title        string
	UserName     string
	Flash        string
	Consultation core.Consultation
}

func consultationFromForm(r *http.Request, ownerID int64) core.Consultation {
	status := strings.TrimSpace(r.FormValue("status"))
	if status == "" {
		status = core.DefaultConsultationStatus
	}
	return core.Consultation{
		OwnerID:          ownerID,
		ClientName:       strings.TrimSpace(r.FormValue("cliente")),
		ConsultationDate: parseDateField(r.FormValue("data")),
		Status:           status,
		Commission:       core.ConsultationCommission(),
	}
}

func (s *Server) handleConsultations(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	switch r.Method {
	case http.MethodGet:
		consultations, err := s.store.ListConsultationsByOwner(r.Context(), user.ID)
		if err != nil {
			applog.FromContext(r.Context()).Error("Failed to list consultations", "error", err)
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}
		s.render(w, r, "consultas.html", consultationsPage{
			Title:         "Consultas",
			UserName:      user.Name,
			Flash:         popFlash(w, r),
			Consultations: consultations,
		})
	case http.MethodPost:
		consultation := consultationFromForm(r, user.ID)
		if err := consultation.Validate(); err != nil {
			setFlash(w, "Dados inválidos: "+err.Error())
			http.Redirect(w, r, "/consultas", http.StatusSeeOther)
			return
		}
		if err := s.store.CreateConsultation(r.Context(), &consultation); err != nil {
			applog.FromContext(r.Context()).Error("Failed to create consultation", "error", err)
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}
		s.publishEvent(r.Context(), "consultas", amqp.ActionCreated, consultation.ID, user.ID, consultation.Commission.Cents)
		setFlash(w, "Consulta registrada.")
		http.Redirect(w, r, "/consultas", http.StatusSeeOther)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleConsultationEdit(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	id, err := parseID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	consultation, err := s.store.GetConsultation(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.FromContext(r.Context()).Error("Failed to load consultation", "error", err)
		http.Error(w, "erro interno", http.StatusInternalServerError)
		return
	}
	if consultation.OwnerID != user.ID {
		setFlash(w, "Acesso negado.")
		http.Redirect(w, r, "/consultas", http.StatusSeeOther)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.render(w, r, "consulta_edit.html", consultationEditPage{
			Title:        "Editar consulta",
			UserName:     user.Name,
			Flash:        popFlash(w, r),
			Consultation: *consultation,
		})
	case http.MethodPost:
		updated := consultationFromForm(r, user.ID)
		updated.ID = consultation.ID
		if err := updated.Validate(); err != nil {
			setFlash(w, "Dados inválidos: "+err.Error())
			http.Redirect(w, r, "/consultas", http.StatusSeeOther)
			return
		}
		if err := s.store.UpdateConsultation(r.Context(), &updated); err != nil {
			applog.FromContext(r.Context()).Error("Failed to update consultation", "error", err)
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}
		s.publishEvent(r.Context(), "consultas", amqp.ActionUpdated, updated.ID, user.ID, updated.Commission.Cents)
		setFlash(w, "Consulta atualizada.")
		http.Redirect(w, r, "/consultas", http.StatusSeeOther)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleConsultationDelete(w http.ResponseWriter, r *http.Request) {
	// Delete is reachable from both a plain link and a form.
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user := userFrom(r)

	id, err := parseID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	consultation, err := s.store.GetConsultation(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.FromContext(r.Context()).Error("Failed to load consultation", "error", err)
		http.Error(w, "erro interno", http.StatusInternalServerError)
		return
	}
	if consultation.OwnerID != user.ID {
		setFlash(w, "Acesso negado.")
		http.Redirect(w, r, "/consultas", http.StatusSeeOther)
		return
	}

	if err := s.store.DeleteConsultation(r.Context(), id); err != nil {
		applog.FromContext(r.Context()).Error("Failed to delete consultation", "error", err)
		http.Error(w, "erro interno", http.StatusInternalServerError)
		return
	}
	s.publishEvent(r.Context(), "consultas", amqp.ActionDeleted, id, user.ID, consultation.Commission.Cents)
	setFlash(w, "Consulta removida.")
	http.Redirect(w, r, "/consultas", http.StatusSeeOther)
}
