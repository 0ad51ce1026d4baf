package transport

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/siteledger/internal/domain/activity"
	"github.com/rpggio/siteledger/internal/domain/faults"
	"github.com/rpggio/siteledger/internal/domain/material"
)

func (s *Server) listMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := s.svc.Materials.ListMaterials(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, materials)
}

func (s *Server) createMaterial(w http.ResponseWriter, r *http.Request) {
	var m material.Material
	if err := decodeBody(r, &m); err != nil {
		s.writeError(w, r, err)
		return
	}
	m.ID = ""
	saved, err := s.svc.Materials.Upsert(r.Context(), m)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) updateMaterial(w http.ResponseWriter, r *http.Request) {
	var m material.Material
	if err := decodeBody(r, &m); err != nil {
		s.writeError(w, r, err)
		return
	}
	m.ID = chi.URLParam(r, "materialID")
	saved, err := s.svc.Materials.Upsert(r.Context(), m)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) materialSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.svc.Materials.Summary(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) materialImpact(w http.ResponseWriter, r *http.Request) {
	impact, err := s.svc.Reconciler.MaterialImpact(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, impact)
}

func (s *Server) listRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := s.svc.Requests.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

func (s *Server) getRequest(w http.ResponseWriter, r *http.Request) {
	req, err := s.svc.Requests.Get(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) createRequest(w http.ResponseWriter, r *http.Request) {
	var req material.Request
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	created, err := s.svc.Requests.Create(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updateRequest(w http.ResponseWriter, r *http.Request) {
	var req material.Request
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	updated, err := s.svc.Requests.Update(r.Context(), chi.URLParam(r, "requestID"), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteRequest(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Requests.Delete(r.Context(), chi.URLParam(r, "requestID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listActivity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := activity.ListOptions{
		EntityType: q.Get("entityType"),
		EntityID:   q.Get("entityId"),
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			s.writeError(w, r, fmt.Errorf("%w: limit must be a non-negative integer", faults.ErrValidation))
			return
		}
		opts.Limit = limit
	}
	entries, err := s.svc.Activity.Recent(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
