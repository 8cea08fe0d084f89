package agi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/julienschmidt/httprouter"
)

var proxyClient = &http.Client{Timeout: 30 * time.Second}

// PromptProxy forwards a prompt to the configured upstream model endpoint and
// streams the response body back. Returns 503 when no upstream is configured.
func PromptProxy(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	upstream := os.Getenv("AI_UPSTREAM_URL")
	if upstream == "" {
		http.Error(w, "AI upstream not configured", http.StatusServiceUnavailable)
		return
	}

	var input struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Prompt == "" {
		http.Error(w, "A prompt is required", http.StatusBadRequest)
		return
	}

	body, err := json.Marshal(map[string]string{"prompt": input.Prompt})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, upstream, bytes.NewReader(body))
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if key := os.Getenv("AI_API_KEY"); key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	resp, err := proxyClient.Do(req)
	if err != nil {
		http.Error(w, "Upstream request failed", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", resp.Header.Get("Content-Type"))
	w.WriteHeader(resp.StatusCode)
	io.Copy(w, resp.Body)
}
