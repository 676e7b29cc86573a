package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/GiuseppeDM98/net-worth-tracker-sub003/internal/scenario"
	"github.com/GiuseppeDM98/net-worth-tracker-sub003/internal/simulation"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	params, err := s.parametersFromRequest(req.Parameters)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid parameters: "+err.Error())
		return
	}
	runID := uuid.NewString()

	start := time.Now()
	results, err := s.sim.Run(r.Context(), params)
	if err != nil {
		s.writeRunError(w, err)
		return
	}

	s.logger.WithFields(logrus.Fields{
		"runId":    runID,
		"trials":   params.NumSimulations,
		"years":    params.RetirementYears,
		"duration": time.Since(start).String(),
	}).Info("simulation completed")

	writeJSON(w, http.StatusOK, simulateResponse{
		RunID:      runID,
		Parameters: params,
		Results:    results,
	})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	params, err := s.parametersFromRequest(req.Parameters)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid parameters: "+err.Error())
		return
	}
	definitions := req.Scenarios
	if len(definitions) == 0 {
		definitions = s.settings.Scenarios
	}

	runID := uuid.NewString()
	start := time.Now()

	set, err := s.compare.Compare(r.Context(), params, definitions)
	if err != nil {
		s.writeRunError(w, err)
		return
	}

	s.logger.WithFields(logrus.Fields{
		"runId":     runID,
		"scenarios": len(definitions),
		"trials":    params.NumSimulations,
		"duration":  time.Since(start).String(),
	}).Info("comparison completed")

	writeJSON(w, http.StatusOK, compareResponse{
		RunID:      runID,
		Comparison: set,
	})
}

// parametersFromRequest overlays the request payload onto the settings
// store's defaults, so the dashboard can post only what the user changed.
// Unmarshalling into a pre-filled struct replaces only the fields present in
// the JSON, which keeps an explicit zero distinct from an absent field.
func (s *Server) parametersFromRequest(raw json.RawMessage) (simulation.Parameters, error) {
	params := s.settings.ToParameters()
	if len(raw) == 0 {
		return params, nil
	}
	if err := json.Unmarshal(raw, &params); err != nil {
		return simulation.Parameters{}, err
	}
	return params, nil
}

// writeRunError maps engine failures to status codes: validation problems are
// the client's to fix, anything else is ours.
func (s *Server) writeRunError(w http.ResponseWriter, err error) {
	var verr *simulation.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Message)
		return
	}
	if errors.Is(err, scenario.ErrBaseScenarioMissing) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.WithError(err).Error("simulation failed")
	writeError(w, http.StatusInternalServerError, "simulation failed")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// simulateRequest is the dashboard's run-simulation payload. Parameter
// fields absent from the payload fall back to the settings store's defaults.
type simulateRequest struct {
	Parameters json.RawMessage `json:"parameters"`
}

type simulateResponse struct {
	RunID      string                `json:"runId"`
	Parameters simulation.Parameters `json:"parameters"`
	Results    *simulation.Results   `json:"results"`
}

type compareRequest struct {
	Parameters json.RawMessage       `json:"parameters"`
	Scenarios  []scenario.Definition `json:"scenarios,omitempty"`
}

type compareResponse struct {
	RunID      string                  `json:"runId"`
	Comparison *scenario.ComparisonSet `json:"comparison"`
}

type errorResponse struct {
	Error string `json:"error"`
}
