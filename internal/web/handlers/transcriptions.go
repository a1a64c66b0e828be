package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jusunglee/mapuipa/internal/db"
	"github.com/jusunglee/mapuipa/internal/metrics"
	"github.com/jusunglee/mapuipa/internal/transliteration"
)

type TranscriptionHandler struct {
	repo db.Repository
	log  *slog.Logger
}

func NewTranscriptionHandler(repo db.Repository, log *slog.Logger) *TranscriptionHandler {
	return &TranscriptionHandler{repo: repo, log: log}
}

type transcriptionResponse struct {
	ID        int64          `json:"id"`
	Source    string         `json:"source"`
	IPA       string         `json:"ipa"`
	Config    configResponse `json:"config"`
	CreatedAt string         `json:"created_at"`
}

type paginationMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type listResponse struct {
	Data       []transcriptionResponse `json:"data"`
	Pagination paginationMeta          `json:"pagination"`
}

func toTranscriptionResponse(t db.Transcription) transcriptionResponse {
	return transcriptionResponse{
		ID:     t.ID,
		Source: t.Source,
		IPA:    t.IPA,
		Config: configResponse{
			UVariant: t.UVariant,
			RVariant: t.RVariant,
			GVariant: t.GVariant,
			Simple:   t.Simple,
		},
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
}

func (h *TranscriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 25
	}
	offset := (page - 1) * limit

	total, err := h.repo.CountTranscriptions(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "counting transcriptions", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	transcriptions, err := h.repo.ListTranscriptions(r.Context(), db.ListTranscriptionsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		h.log.ErrorContext(r.Context(), "listing transcriptions", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	data := make([]transcriptionResponse, 0, len(transcriptions))
	for _, t := range transcriptions {
		data = append(data, toTranscriptionResponse(t))
	}

	writeJSON(w, http.StatusOK, listResponse{
		Data: data,
		Pagination: paginationMeta{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// lookup resolves the {id} path value, writing the error response itself
// when it returns false.
func (h *TranscriptionHandler) lookup(w http.ResponseWriter, r *http.Request) (db.Transcription, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return db.Transcription{}, false
	}

	t, err := h.repo.GetTranscription(r.Context(), id)
	if err != nil {
		if db.IsNoRows(err) {
			writeError(w, http.StatusNotFound, "transcription not found")
			return db.Transcription{}, false
		}
		h.log.ErrorContext(r.Context(), "getting transcription", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return db.Transcription{}, false
	}
	return t, true
}

func (h *TranscriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toTranscriptionResponse(t))
}

func (h *TranscriptionHandler) Export(w http.ResponseWriter, r *http.Request) {
	t, ok := h.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="transcription-%d.txt"`, t.ID))
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, t.IPA)
}

func (h *TranscriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req transliterateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	cfg, err := req.configuration()
	if err != nil {
		metrics.InvalidConfigurations.WithLabelValues("web").Inc()
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	source := strings.TrimSpace(req.Text)
	normalized := transliteration.Normalize(source)
	ipa := transliteration.Transliterate(normalized, cfg)
	metrics.ObserveTransliteration("web", cfg.Simple, utf8.RuneCountInString(normalized))

	t, err := h.repo.CreateTranscription(r.Context(), db.CreateTranscriptionParams{
		Source:   source,
		IPA:      ipa,
		UVariant: cfg.U.String(),
		RVariant: cfg.R.String(),
		GVariant: cfg.G.String(),
		Simple:   cfg.Simple,
	})
	if err != nil {
		h.log.ErrorContext(r.Context(), "creating transcription", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	metrics.TranscriptionsStored.Inc()

	h.log.InfoContext(r.Context(), "transcription stored", "id", t.ID, "config", cfg.String())
	writeJSON(w, http.StatusCreated, toTranscriptionResponse(t))
}

func (h *TranscriptionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	rows, err := h.repo.DeleteTranscription(r.Context(), id)
	if err != nil {
		h.log.ErrorContext(r.Context(), "deleting transcription", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if rows == 0 {
		writeError(w, http.StatusNotFound, "transcription not found")
		return
	}

	h.log.InfoContext(r.Context(), "transcription deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}
