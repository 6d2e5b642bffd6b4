package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/driftlab/sponge/internal/domain"
	"github.com/driftlab/sponge/internal/service"
)

type SpongeHandler struct {
	svc *service.SpongeService
}

func NewSpongeHandler(svc *service.SpongeService) *SpongeHandler {
	return &SpongeHandler{svc: svc}
}

type interactionRequest struct {
	Message    string                     `json:"message,omitempty"`
	Assessment *domain.EvidenceAssessment `json:"assessment,omitempty"`
	Provenance string                     `json:"provenance,omitempty"`
}

// ProcessInteraction feeds one message or pre-rated assessment through
// the sponge. Exactly one of message/assessment must be set.
func (h *SpongeHandler) ProcessInteraction(w http.ResponseWriter, r *http.Request) {
	var req interactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if (req.Message == "") == (req.Assessment == nil) {
		writeError(w, http.StatusBadRequest, "exactly one of message or assessment is required")
		return
	}

	var (
		result *service.InteractionResult
		err    error
	)
	if req.Message != "" {
		result, err = h.svc.ProcessMessage(r.Context(), req.Message)
	} else {
		provenance := req.Provenance
		if provenance == "" {
			provenance = "api assessment"
		}
		result, err = h.svc.ProcessAssessment(r.Context(), req.Assessment, provenance)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type stateResponse struct {
	Snapshot         string `json:"snapshot"`
	Version          int    `json:"version"`
	InteractionCount int    `json:"interaction_count"`
	Tone             string `json:"tone"`
}

func (h *SpongeHandler) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stateResponse{
		Snapshot:         h.svc.Snapshot(),
		Version:          h.svc.Version(),
		InteractionCount: h.svc.InteractionCount(),
		Tone:             h.svc.Tone(),
	})
}

func (h *SpongeHandler) GetOpinions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.OpinionVectors())
}

func (h *SpongeHandler) GetBeliefs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.BeliefMeta())
}

func (h *SpongeHandler) GetShifts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.RecentShifts())
}

func (h *SpongeHandler) GetStaged(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.StagedUpdates())
}

func (h *SpongeHandler) GetSignature(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.BehavioralSignature())
}

func (h *SpongeHandler) GetContradictions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Contradictions())
}

func (h *SpongeHandler) GetEntrenched(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Entrenched())
}

type insightRequest struct {
	Text string `json:"text"`
}

func (h *SpongeHandler) RecordInsight(w http.ResponseWriter, r *http.Request) {
	var req insightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	if err := h.svc.RecordInsight(req.Text); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "recorded",
		"version": h.svc.Version(),
	})
}

func (h *SpongeHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.PendingInsights())
}

func (h *SpongeHandler) Reflect(w http.ResponseWriter, r *http.Request) {
	accepted, err := h.svc.Reflect(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"accepted": accepted,
		"version":  h.svc.Version(),
	})
}

func (h *SpongeHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reset(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
