package web

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/VitaminP8/blogery/internal/blog"
	"github.com/VitaminP8/blogery/models"
)

type apiAuthor struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type apiComment struct {
	ID     uint      `json:"id"`
	Text   string    `json:"text"`
	Author apiAuthor `json:"author"`
}

type apiPostDetails struct {
	*models.Post
	Author   apiAuthor    `json:"author"`
	Comments []apiComment `json:"comments"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, map[string]string{"error": http.StatusText(status)})
}

func (h *Handler) apiListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.content.ListPosts()
	if err != nil {
		writeJSONError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *Handler) apiGetPost(w http.ResponseWriter, r *http.Request) {
	id, err := postIDParam(r)
	if err != nil {
		writeJSONError(w, r, err)
		return
	}

	details, err := h.content.PostDetails(id)
	if err != nil {
		writeJSONError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAPIPost(details))
}

func toAPIPost(d *blog.PostDetails) apiPostDetails {
	out := apiPostDetails{
		Post:     d.Post,
		Author:   apiAuthor{ID: d.Author.ID, Name: d.Author.Name},
		Comments: make([]apiComment, 0, len(d.Comments)),
	}
	for _, c := range d.Comments {
		out.Comments = append(out.Comments, apiComment{
			ID:     c.ID,
			Text:   c.Text,
			Author: apiAuthor{ID: c.Author.ID, Name: c.Author.Name},
		})
	}
	return out
}

// healthHandler: 200 если хранилище отвечает, иначе 503
func healthHandler(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				log.Printf("health check failed: %v", err)
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
