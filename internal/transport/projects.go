package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/siteledger/internal/domain/project"
	"github.com/rpggio/siteledger/internal/domain/worklog"
)

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.svc.Projects.ListProjects(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	proj, err := s.svc.Projects.Get(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var req project.CreateRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	proj, err := s.svc.Projects.Create(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, proj)
}

func (s *Server) addTask(w http.ResponseWriter, r *http.Request) {
	var req project.TaskRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	task, err := s.svc.Projects.AddTask(r.Context(), chi.URLParam(r, "projectID"), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

type completionRequest struct {
	IsCompleted bool `json:"isCompleted"`
}

func (s *Server) setTaskCompletion(w http.ResponseWriter, r *http.Request) {
	var req completionRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	projectID, taskID := chi.URLParam(r, "projectID"), chi.URLParam(r, "taskID")
	if err := s.svc.Projects.SetTaskCompletion(r.Context(), projectID, taskID, req.IsCompleted); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"_id": taskID, "projectId": projectID, "isCompleted": req.IsCompleted})
}

func (s *Server) createWorkLog(w http.ResponseWriter, r *http.Request) {
	var in worklog.Input
	if err := decodeBody(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	log, err := s.svc.WorkLogs.Create(r.Context(), chi.URLParam(r, "projectID"), chi.URLParam(r, "taskID"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, log)
}

func (s *Server) updateWorkLog(w http.ResponseWriter, r *http.Request) {
	var in worklog.Input
	if err := decodeBody(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	log, err := s.svc.WorkLogs.Update(r.Context(),
		chi.URLParam(r, "projectID"), chi.URLParam(r, "taskID"), chi.URLParam(r, "logID"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, log)
}
