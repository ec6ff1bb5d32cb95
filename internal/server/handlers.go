package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mikecinchan/tcg-deck-editor/pkg/auth"
	"github.com/mikecinchan/tcg-deck-editor/pkg/catalog"
	"github.com/mikecinchan/tcg-deck-editor/pkg/decks"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"catalog": s.opts.Catalog.Status().State,
	})
}

func (s *Server) listCards(w http.ResponseWriter, r *http.Request) {
	var (
		items []catalog.Item
		err   error
	)
	if group := r.URL.Query().Get("group"); group != "" {
		items, err = s.opts.Catalog.ByGroup(r.Context(), group)
	} else {
		items, err = s.opts.Catalog.All(r.Context())
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) getCard(w http.ResponseWriter, r *http.Request) {
	item, err := s.opts.Catalog.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) listGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.opts.Catalog.Groups(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) catalogStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.opts.Catalog.Status())
}

func (s *Server) clearCache(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.opts.Catalog.Invalidate()

	n, err := s.opts.Cache.Clear(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.opts.Seed != nil {
		if err := s.opts.Seed.Clear(ctx); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	s.logger.Info("catalog cache cleared", "entries", n, "by", auth.FromContext(ctx).Subject)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listDecks(w http.ResponseWriter, r *http.Request) {
	list, err := s.opts.Decks.List(r.Context(), owner(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) getDeck(w http.ResponseWriter, r *http.Request) {
	d, err := s.opts.Decks.Get(r.Context(), owner(r), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) createDeck(w http.ResponseWriter, r *http.Request) {
	var in decks.Input
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := s.opts.Decks.Create(r.Context(), owner(r), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/decks/"+d.ID)
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) updateDeck(w http.ResponseWriter, r *http.Request) {
	var in decks.Input
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := s.opts.Decks.Update(r.Context(), owner(r), chi.URLParam(r, "id"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) deleteDeck(w http.ResponseWriter, r *http.Request) {
	if err := s.opts.Decks.Delete(r.Context(), owner(r), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// owner returns the authenticated subject; routes using it sit behind
// authenticate.
func owner(r *http.Request) string {
	return auth.FromContext(r.Context()).Subject
}
