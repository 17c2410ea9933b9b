package http

import (
	"net/http"

	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/secmon-lab/riskreg/pkg/utils/errutil"
)

type scalesResponse struct {
	Impact            []model.ScaleLevel `json:"impact"`
	Likelihood        []model.ScaleLevel `json:"likelihood"`
	Effort            []model.ScaleLevel `json:"effort"`
	LikelihoodOptions []int              `json:"likelihood_options"`
}

type taxonomyResponse struct {
	Categories []model.Category `json:"categories"`
	Scales     scalesResponse   `json:"scales"`
}

func (s *Server) taxonomyHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, taxonomyResponse{
		Categories: s.uc.Taxonomy().Tree(),
		Scales: scalesResponse{
			Impact:            model.ImpactScale.Levels,
			Likelihood:        model.LikelihoodScale.Levels,
			Effort:            model.EffortScale.Levels,
			LikelihoodOptions: model.LikelihoodOptions,
		},
	})
}

func (s *Server) priorityHandler(w http.ResponseWriter, r *http.Request) {
	var input model.RiskScoringInput
	if err := decodeJSON(r, &input); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	assessment, err := s.uc.Risk.Priority(input)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	writeJSON(w, r, http.StatusOK, assessment)
}

type prioritySummaryRequest struct {
	Risks []model.RiskScoringInput `json:"risks"`
}

func (s *Server) prioritySummaryHandler(w http.ResponseWriter, r *http.Request) {
	var req prioritySummaryRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	summary, err := s.uc.Risk.Summarize(req.Risks)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	writeJSON(w, r, http.StatusOK, summary)
}
