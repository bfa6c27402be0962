package handler

import (
	"context"
	"net/http"

	"github.com/osse101/BrandishReveal_Go/internal/domain"
	"github.com/osse101/BrandishReveal_Go/internal/logger"
	"github.com/osse101/BrandishReveal_Go/internal/session"
)

// Sessions is the playback surface the handlers drive
type Sessions interface {
	StartBattle(ctx context.Context, b *domain.BattleOutcome) (session.Info, error)
	StartBattleByID(ctx context.Context, battleID int64) (session.Info, error)
	StartSpins(ctx context.Context, spins []domain.SpinOutcome) (session.Info, error)
	StartSpinsByID(ctx context.Context, spinIDs []int64) (session.Info, error)
	View(ctx context.Context, id string) (session.View, error)
	List() []session.Info
	Stop(ctx context.Context, id string) error
}

// StartBattleRequest starts a battle playback from a stored id or an inline
// outcome
type StartBattleRequest struct {
	BattleID int64                 `json:"battle_id" validate:"gte=0"`
	Outcome  *domain.BattleOutcome `json:"outcome"`
}

// StartSpinsRequest starts side by side solo playback
type StartSpinsRequest struct {
	SpinIDs []int64              `json:"spin_ids" validate:"max=8,dive,gt=0"`
	Spins   []domain.SpinOutcome `json:"spins" validate:"max=8,dive"`
}

// PlaybackHandler serves the playback session routes
type PlaybackHandler struct {
	sessions Sessions
}

// NewPlaybackHandler creates a handler over sessions
func NewPlaybackHandler(sessions Sessions) *PlaybackHandler {
	return &PlaybackHandler{sessions: sessions}
}

// HandleStartBattle handles POST /api/v1/playback/battles
// @Summary Start a battle playback
// @Description Queue playback of a stored battle id or an inline outcome. Exactly one must be given.
// @Tags playback
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body StartBattleRequest true "Battle to play"
// @Success 202 {object} session.Info "Playback queued"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 401 {object} ErrorResponse "Missing or invalid API key"
// @Failure 503 {object} ErrorResponse "Playback queue is full"
// @Router /playback/battles [post]
func (h *PlaybackHandler) HandleStartBattle(w http.ResponseWriter, r *http.Request) {
	var req StartBattleRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Start battle"); err != nil {
		return
	}
	if (req.BattleID == 0) == (req.Outcome == nil) {
		respondError(w, http.StatusBadRequest, ErrMsgBattleIDOrOutcome)
		return
	}

	var (
		info session.Info
		err  error
	)
	if req.Outcome != nil {
		info, err = h.sessions.StartBattle(r.Context(), req.Outcome)
	} else {
		info, err = h.sessions.StartBattleByID(r.Context(), req.BattleID)
	}
	if err != nil {
		respondServiceError(w, r, ErrMsgStartPlayback, err)
		return
	}

	logger.FromContext(r.Context()).Info(LogMsgPlaybackQueued, "session_id", info.ID, "kind", info.Kind)
	respondJSON(w, http.StatusAccepted, info)
}

// HandleStartSpins handles POST /api/v1/playback/spins
// @Summary Start solo spin playback
// @Description Queue side by side playback of up to eight stored or inline spins
// @Tags playback
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body StartSpinsRequest true "Spins to play"
// @Success 202 {object} session.Info "Playback queued"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 503 {object} ErrorResponse "Playback queue is full"
// @Router /playback/spins [post]
func (h *PlaybackHandler) HandleStartSpins(w http.ResponseWriter, r *http.Request) {
	var req StartSpinsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Start spins"); err != nil {
		return
	}
	if (len(req.SpinIDs) == 0) == (len(req.Spins) == 0) {
		respondError(w, http.StatusBadRequest, ErrMsgSpinIDsOrOutcomes)
		return
	}

	var (
		info session.Info
		err  error
	)
	if len(req.Spins) > 0 {
		info, err = h.sessions.StartSpins(r.Context(), req.Spins)
	} else {
		info, err = h.sessions.StartSpinsByID(r.Context(), req.SpinIDs)
	}
	if err != nil {
		respondServiceError(w, r, ErrMsgStartPlayback, err)
		return
	}

	logger.FromContext(r.Context()).Info(LogMsgPlaybackQueued, "session_id", info.ID, "kind", info.Kind)
	respondJSON(w, http.StatusAccepted, info)
}

// HandleList handles GET /api/v1/playback
// @Summary List playback sessions
// @Tags playback
// @Produce json
// @Success 200 {object} DataResponse{data=[]session.Info}
// @Router /playback [get]
func (h *PlaybackHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, DataResponse{Data: h.sessions.List()})
}

// HandleGet handles GET /api/v1/playback/{id}
// @Summary Get a playback session with its snapshot
// @Tags playback
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} session.View
// @Failure 404 {object} ErrorResponse "Unknown session"
// @Router /playback/{id} [get]
func (h *PlaybackHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathParam(r, w, ParamSessionID)
	if !ok {
		return
	}
	view, err := h.sessions.View(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetPlayback, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// HandleStop handles DELETE /api/v1/playback/{id}
// @Summary Stop a playback session
// @Tags playback
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session id"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "Unknown session"
// @Router /playback/{id} [delete]
func (h *PlaybackHandler) HandleStop(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathParam(r, w, ParamSessionID)
	if !ok {
		return
	}
	if err := h.sessions.Stop(r.Context(), id); err != nil {
		respondServiceError(w, r, ErrMsgStopPlayback, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgPlaybackStopped})
}

var _ Sessions = (*session.Manager)(nil)
