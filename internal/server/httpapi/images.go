package httpapi

import (
	"encoding/json"
	"net/http"
)

type presignRequest struct {
	Filename string `json:"filename"`
}

// handlePresignImage returns a presigned PUT URL so the admin frontend can
// upload an image straight to object storage, plus the public URL to embed
// in a post body.
func (s *Server) handlePresignImage(w http.ResponseWriter, r *http.Request) {
	var req presignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Filename == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false})
		return
	}

	key, uploadURL, err := s.images.PresignUpload(r.Context(), req.Filename)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"key":       key,
		"uploadUrl": uploadURL,
		"publicUrl": s.images.ImageURL(key),
	})
}
