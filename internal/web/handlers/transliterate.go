package handlers

import (
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/jusunglee/mapuipa/internal/metrics"
	"github.com/jusunglee/mapuipa/internal/transliteration"
)

type TransliterateHandler struct {
	log *slog.Logger
}

func NewTransliterateHandler(log *slog.Logger) *TransliterateHandler {
	return &TransliterateHandler{log: log}
}

type transliterateRequest struct {
	Text     string `json:"text"`
	UVariant string `json:"u_variant"`
	RVariant string `json:"r_variant"`
	GVariant string `json:"g_variant"`
	Simple   bool   `json:"simple"`
}

type configResponse struct {
	UVariant string `json:"u_variant"`
	RVariant string `json:"r_variant"`
	GVariant string `json:"g_variant"`
	Simple   bool   `json:"simple"`
}

type transliterateResponse struct {
	Input      string         `json:"input"`
	Normalized string         `json:"normalized"`
	IPA        string         `json:"ipa"`
	Config     configResponse `json:"config"`
}

type rulesResponse struct {
	Config        configResponse         `json:"config"`
	MaxPatternLen int                    `json:"max_pattern_len"`
	Rules         []transliteration.Rule `json:"rules"`
	SimpleRules   []transliteration.Rule `json:"simple_rules"`
}

func toConfigResponse(cfg transliteration.Configuration) configResponse {
	return configResponse{
		UVariant: cfg.U.String(),
		RVariant: cfg.R.String(),
		GVariant: cfg.G.String(),
		Simple:   cfg.Simple,
	}
}

func (req transliterateRequest) configuration() (transliteration.Configuration, error) {
	return transliteration.NewConfiguration(req.UVariant, req.RVariant, req.GVariant, req.Simple)
}

func (h *TransliterateHandler) Transliterate(w http.ResponseWriter, r *http.Request) {
	var req transliterateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	cfg, err := req.configuration()
	if err != nil {
		metrics.InvalidConfigurations.WithLabelValues("web").Inc()
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	normalized := transliteration.Normalize(req.Text)
	ipa := transliteration.Transliterate(normalized, cfg)
	metrics.ObserveTransliteration("web", cfg.Simple, utf8.RuneCountInString(normalized))

	h.log.DebugContext(r.Context(), "transliterated", "config", cfg.String(), "runes", utf8.RuneCountInString(normalized))
	writeJSON(w, http.StatusOK, transliterateResponse{
		Input:      req.Text,
		Normalized: normalized,
		IPA:        ipa,
		Config:     toConfigResponse(cfg),
	})
}

func (h *TransliterateHandler) Rules(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cfg, err := transliteration.NewConfiguration(q.Get("u_variant"), q.Get("r_variant"), q.Get("g_variant"), q.Get("simple") == "true")
	if err != nil {
		metrics.InvalidConfigurations.WithLabelValues("web").Inc()
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	table := transliteration.DefaultCache.Table(cfg)
	writeJSON(w, http.StatusOK, rulesResponse{
		Config:        toConfigResponse(cfg),
		MaxPatternLen: table.MaxPatternLen(),
		Rules:         table.Rules(),
		SimpleRules:   transliteration.SimpleRules(),
	})
}
