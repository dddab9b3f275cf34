package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const (
	ttsVoiceID = "21m00Tcm4TlvDq8ikWAM"
	ttsModelID = "eleven_multilingual_v2"
	ttsBaseURL = "https://api.elevenlabs.io/v1/text-to-speech/"
)

// TTSHandler relays text to the ElevenLabs speech API and streams the
// audio back to the caller.
type TTSHandler struct {
	apiKey string
	client *http.Client
}

// NewTTSHandler creates a new TTS relay. An empty apiKey disables the
// endpoint (503).
func NewTTSHandler(apiKey string) *TTSHandler {
	return &TTSHandler{
		apiKey: apiKey,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// RegisterRoutes registers the TTS route.
func (h *TTSHandler) RegisterRoutes(r chi.Router) {
	r.Post("/tts", h.Speak)
}

// Speak converts text into speech audio.
func (h *TTSHandler) Speak(w http.ResponseWriter, r *http.Request) {
	if h.apiKey == "" {
		Error(w, http.StatusServiceUnavailable, "text-to-speech is not configured")
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := decode(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		Error(w, http.StatusBadRequest, "No text provided")
		return
	}

	payload, err := json.Marshal(map[string]string{
		"text":     req.Text,
		"model_id": ttsModelID,
	})
	if err != nil {
		Fail(w, err)
		return
	}

	upstream, err := http.NewRequestWithContext(r.Context(), http.MethodPost, ttsBaseURL+ttsVoiceID, bytes.NewReader(payload))
	if err != nil {
		Fail(w, err)
		return
	}
	upstream.Header.Set("Content-Type", "application/json")
	upstream.Header.Set("xi-api-key", h.apiKey)

	resp, err := h.client.Do(upstream)
	if err != nil {
		slog.Error("tts relay failed", "error", err)
		Error(w, http.StatusBadGateway, "speech service unavailable")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("tts upstream error", "status", resp.StatusCode)
		Error(w, http.StatusBadGateway, "speech service error")
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, resp.Body); err != nil {
		slog.Warn("tts stream interrupted", "error", err)
	}
}
