package http

import (
	"errors"
	"net/http"
	"strings"

	"comissoes/internal/amqp"
	"comissoes/internal/core"
	applog "comissoes/internal/log"
)

type proceduresPage struct {
	Title      string
	UserName   string
	Flash      string
	Procedures []core.Procedure
}

type procedureEditPage struct {
	Title     string
	UserName  string
	Flash     string
	Procedure core.Procedure
}

func procedureFromForm(r *http.Request, ownerID int64) core.Procedure {
	procType := strings.TrimSpace(r.FormValue("tipo"))
	if procType == "" {
		procType = core.DefaultProcedureType
	}
	return core.Procedure{
		OwnerID:       ownerID,
		ClientName:    strings.TrimSpace(r.FormValue("cliente")),
		ProcedureDate: parseDateField(r.FormValue("data")),
		ProcedureType: procType,
		Commission:    core.ProcedureCommission(),
	}
}

func (s *Server) handleProcedures(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	switch r.Method {
	case http.MethodGet:
		procedures, err := s.store.ListProceduresByOwner(r.Context(), user.ID)
		if err != nil {
			applog.FromContext(r.Context()).Error("Failed to list procedures", "error", err)
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}
		s.render(w, r, "procedimentos.html", proceduresPage{
			Title:      "Procedimentos",
			UserName:   user.Name,
			Flash:      popFlash(w, r),
			Procedures: procedures,
		})
	case http.MethodPost:
		procedure := procedureFromForm(r, user.ID)
		if err := procedure.Validate(); err != nil {
			setFlash(w, "Dados inválidos: "+err.Error())
			http.Redirect(w, r, "/procedimentos", http.StatusSeeOther)
			return
		}
		if err := s.store.CreateProcedure(r.Context(), &procedure); err != nil {
			applog.FromContext(r.Context()).Error("Failed to create procedure", "error", err)
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}
		s.publishEvent(r.Context(), "procedimentos", amqp.ActionCreated, procedure.ID, user.ID, procedure.Commission.Cents)
		setFlash(w, "Procedimento registrado.")
		http.Redirect(w, r, "/procedimentos", http.StatusSeeOther)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleProcedureEdit(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	id, err := parseID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	procedure, err := s.store.GetProcedure(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.FromContext(r.Context()).Error("Failed to load procedure", "error", err)
		http.Error(w, "erro interno", http.StatusInternalServerError)
		return
	}
	if procedure.OwnerID != user.ID {
		setFlash(w, "Acesso negado.")
		http.Redirect(w, r, "/procedimentos", http.StatusSeeOther)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.render(w, r, "procedimento_edit.html", procedureEditPage{
			Title:     "Editar procedimento",
			UserName:  user.Name,
			Flash:     popFlash(w, r),
			Procedure: *procedure,
		})
	case http.MethodPost:
		updated := procedureFromForm(r, user.ID)
		updated.ID = procedure.ID
		if err := updated.Validate(); err != nil {
			setFlash(w, "Dados inválidos: "+err.Error())
			http.Redirect(w, r, "/procedimentos", http.StatusSeeOther)
			return
		}
		if err := s.store.UpdateProcedure(r.Context(), &updated); err != nil {
			applog.FromContext(r.Context()).Error("Failed to update procedure", "error", err)
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}
		s.publishEvent(r.Context(), "procedimentos", amqp.ActionUpdated, updated.ID, user.ID, updated.Commission.Cents)
		setFlash(w, "Procedimento atualizado.")
		http.Redirect(w, r, "/procedimentos", http.StatusSeeOther)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleProcedureDelete(w http.ResponseWriter, r *http.Request) {
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
	procedure, err := s.store.GetProcedure(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.FromContext(r.Context()).Error("Failed to load procedure", "error", err)
		http.Error(w, "erro interno", http.StatusInternalServerError)
		return
	}
	if procedure.OwnerID != user.ID {
		setFlash(w, "Acesso negado.")
		http.Redirect(w, r, "/procedimentos", http.StatusSeeOther)
		return
	}

	if err := s.store.DeleteProcedure(r.Context(), id); err != nil {
		applog.FromContext(r.Context()).Error("Failed to delete procedure", "error", err)
		http.Error(w, "erro interno", http.StatusInternalServerError)
		return
	}
	s.publishEvent(r.Context(), "procedimentos", amqp.ActionDeleted, id, user.ID, procedure.Commission.Cents)
	setFlash(w, "Procedimento removido.")
	http.Redirect(w, r, "/procedimentos", http.StatusSeeOther)
}
