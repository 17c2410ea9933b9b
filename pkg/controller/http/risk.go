package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/secmon-lab/riskreg/pkg/usecase"
	"github.com/secmon-lab/riskreg/pkg/utils/errutil"
)

type tokenRequest struct {
	Token string `json:"token" masq:"secret"`
}

func (x tokenRequest) session() *model.Session {
	return &model.Session{Token: x.Token}
}

type queryRisksRequest struct {
	tokenRequest
	model.PageRequest
}

func (s *Server) queryRisksHandler(w http.ResponseWriter, r *http.Request) {
	var req queryRisksRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	page, err := s.uc.Risk.FetchPage(r.Context(), req.session(), req.PageRequest)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	writeJSON(w, r, http.StatusOK, page)
}

func (s *Server) getRiskHandler(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	record, err := s.uc.Risk.GetRisk(r.Context(), req.session(), chi.URLParam(r, "riskID"))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	writeJSON(w, r, http.StatusOK, record)
}

type createRiskRequest struct {
	tokenRequest
	Record      model.RiskRecord `json:"record"`
	ShowPayload bool             `json:"show_payload"`
}

type createRiskResponse struct {
	Payload json.RawMessage `json:"payload"`
}

func (s *Server) createRiskHandler(w http.ResponseWriter, r *http.Request) {
	var req createRiskRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	form := model.NewRiskForm(req.Record.Name, req.Record.Category, req.Record.Subcategory, req.Record.RiskType)
	result, err := s.uc.Risk.Submit(r.Context(), req.session(), form, usecase.SubmitOptions{DryRun: req.ShowPayload})
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	if req.ShowPayload {
		writeJSON(w, r, http.StatusOK, createRiskResponse{Payload: result.Payload})
		return
	}
	writeJSON(w, r, http.StatusCreated, result.Record)
}

func (s *Server) analyticsHandler(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	dist, err := s.uc.Risk.Analytics(r.Context(), req.session())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dist)
}
