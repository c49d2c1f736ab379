package http

import (
	"errors"
	"net/http"
	"strings"

	"comissoes/internal/amqp"
	"comissoes/internal/core"
	applog "comissoes/internal/log"
)

type collectionsPage struct {
	Title       string
	UserName    string
	Flash       string
	Collections []core.Collection
}

type collectionEditPage struct {
	Title      string
	UserName   string
	Flash      string
	Collection core.Collection
}

func collectionFromForm(r *http.Request, ownerID int64) core.Collection {
	cents, err := core.ParseDecimalToCents(r.FormValue("valor"))
	if err != nil {
		cents = 0
	}
	negotiated := core.Money{Cents: cents}
	return core.Collection{
		OwnerID:         ownerID,
		ClientName:      strings.TrimSpace(r.FormValue("cliente")),
		NegotiationDate: parseDateField(r.FormValue("data")),
		Negotiated:      negotiated,
		Commission:      core.CollectionCommission(negotiated),
	}
}

func (s *Server) handleCollections(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	switch r.Method {
	case http.MethodGet:
		collections, err := s.store.ListCollectionsByOwner(r.Context(), user.ID)
		if err != nil {
			applog.FromContext(r.Context()).Error("Failed to list collections", "error", err)
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}
		s.render(w, r, "cobrancas.html", collectionsPage{
			Title:       "Cobranças",
			UserName:    user.Name,
			Flash:       popFlash(w, r),
			Collections: collections,
		})
	case http.MethodPost:
		collection := collectionFromForm(r, user.ID)
		if err := collection.Validate(); err != nil {
			setFlash(w, "Dados inválidos: "+err.Error())
			http.Redirect(w, r, "/cobrancas", http.StatusSeeOther)
			return
		}
		if err := s.store.CreateCollection(r.Context(), &collection); err != nil {
			applog.FromContext(r.Context()).Error("Failed to create collection", "error", err)
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}
		s.publishEvent(r.Context(), "cobrancas", amqp.ActionCreated, collection.ID, user.ID, collection.Commission.Cents)
		setFlash(w, "Cobrança registrada.")
		http.Redirect(w, r, "/cobrancas", http.StatusSeeOther)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCollectionEdit(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	id, err := parseID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	collection, err := s.store.GetCollection(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.FromContext(r.Context()).Error("Failed to load collection", "error", err)
		http.Error(w, "erro interno", http.StatusInternalServerError)
		return
	}
	if collection.OwnerID != user.ID {
		setFlash(w, "Acesso negado.")
		http.Redirect(w, r, "/cobrancas", http.StatusSeeOther)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.render(w, r, "cobranca_edit.html", collectionEditPage{
			Title:      "Editar cobrança",
			UserName:   user.Name,
			Flash:      popFlash(w, r),
			Collection: *collection,
		})
	case http.MethodPost:
		updated := collectionFromForm(r, user.ID)
		updated.ID = collection.ID
		if err := updated.Validate(); err != nil {
			setFlash(w, "Dados inválidos: "+err.Error())
			http.Redirect(w, r, "/cobrancas", http.StatusSeeOther)
			return
		}
		if err := s.store.UpdateCollection(r.Context(), &updated); err != nil {
			applog.FromContext(r.Context()).Error("Failed to update collection", "error", err)
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}
		s.publishEvent(r.Context(), "cobrancas", amqp.ActionUpdated, updated.ID, user.ID, updated.Commission.Cents)
		setFlash(w, "Cobrança atualizada.")
		http.Redirect(w, r, "/cobrancas", http.StatusSeeOther)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCollectionDelete(w http.ResponseWriter, r *http.Request) {
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
	collection, err := s.store.GetCollection(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.FromContext(r.Context()).Error("Failed to load collection", "error", err)
		http.Error(w, "erro interno", http.StatusInternalServerError)
		return
	}
	if collection.OwnerID != user.ID {
		setFlash(w, "Acesso negado.")
		http.Redirect(w, r, "/cobrancas", http.StatusSeeOther)
		return
	}

	if err := s.store.DeleteCollection(r.Context(), id); err != nil {
		applog.FromContext(r.Context()).Error("Failed to delete collection", "error", err)
		http.Error(w, "erro interno", http.StatusInternalServerError)
		return
	}
	s.publishEvent(r.Context(), "cobrancas", amqp.ActionDeleted, id, user.ID, collection.Commission.Cents)
	setFlash(w, "Cobrança removida.")
	http.Redirect(w, r, "/cobrancas", http.StatusSeeOther)
}
