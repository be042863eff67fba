// internal/handlers/hint_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"go_5_vocab_hint/internal/model"
	"go_5_vocab_hint/internal/service"
	"go_5_vocab_hint/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type HintHandler struct {
	service service.HintService
	logger  *slog.Logger
}

func NewHintHandler(s service.HintService, logger *slog.Logger) *HintHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HintHandler{
		service: s,
		logger:  logger,
	}
}

// GetBestHintType は単語に対して次に出すヒントを1つ返すハンドラ
func (h *HintHandler) GetBestHintType(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetBestHintType"))

	var req model.HintRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Invalid request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("word_id", req.WordID.String()))

	payload, err := h.service.BestHint(r.Context(), req.WordID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Best hint selected", slog.String("hint_type", string(payload.HintType)))
	webutil.RespondWithJSON(w, http.StatusOK, payload)
}

// GetRankedHintType はヒント種別を推奨順に並べて返すハンドラ
func (h *HintHandler) GetRankedHintType(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetRankedHintType"))

	var req model.HintRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Invalid request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	ranked, err := h.service.RankedHints(r.Context(), req.WordID)
	if err != nil {
		webutil.HandleError(w, logger.With(slog.String("word_id", req.WordID.String())), err)
		return
	}
	if ranked == nil {
		ranked = []model.HintType{}
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.RankedHintsResponse{RankedHintTypes: ranked})
}

// UpdateModel はクイズの正誤を受け取りモデルを更新するハンドラ。
// 保存に失敗してもメモリ上の更新は有効なので 200 を返し、persisted=false で知らせる。
func (h *HintHandler) UpdateModel(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateModel"))

	var req model.UpdateModelRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Invalid request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(
		slog.String("word_id", req.WordID.String()),
		slog.String("hint_type", string(req.HintType)),
	)

	result, err := h.service.RecordOutcome(r.Context(), req.WordID, req.HintType, req.IsCorrect)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if result.PersistErr != nil {
		logger.Warn("Model updated but not persisted", slog.Any("error", result.PersistErr))
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.UpdateModelResponse{OK: true, Persisted: result.Persisted})
}

// GetQValues は単語の Q 値を返すハンドラ
func (h *HintHandler) GetQValues(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetQValues"))

	wordID, err := model.NormalizeWordID(chi.URLParam(r, "word_id"))
	if err != nil {
		logger.Warn("Invalid word ID", slog.String("word_id", chi.URLParam(r, "word_id")))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_INPUT", "invalid word_id", "word_id", err))
		return
	}

	row, err := h.service.QValues(r.Context(), wordID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.QValuesResponse{WordID: wordID, QValues: row})
}

// GetOutcomes は単語の学習履歴を新しい順に返すハンドラ (?limit=N)
func (h *HintHandler) GetOutcomes(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetOutcomes"))

	wordID, err := model.NormalizeWordID(chi.URLParam(r, "word_id"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_INPUT", "invalid word_id", "word_id", err))
		return
	}

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		limit, err = strconv.Atoi(s)
		if err != nil || limit < 0 {
			webutil.HandleError(w, logger, model.NewAppError("INVALID_INPUT", "limit must be a non-negative integer", "limit", model.ErrInvalidInput))
			return
		}
	}

	outcomes, err := h.service.Outcomes(r.Context(), wordID, limit)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if outcomes == nil {
		outcomes = []*model.OutcomeRecord{}
	}

	webutil.RespondWithJSON(w, http.StatusOK, outcomes)
}
