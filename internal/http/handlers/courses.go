package handlers

import (
	"net/http"

	"github.com/abhi-28-key/abhimusickeys-server/internal/domain"
)

type lessonItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	MIME      string `json:"mime"`
	SizeBytes int64  `json:"size_bytes"`
}

// Course returns the lesson index for a tier. The route guard enforces the
// plan before this handler runs, so there is no access check here.
func (a *App) Course(plan domain.Plan, category string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		files, err := a.Downloads.List(r.Context(), category)
		if err != nil {
			a.Logger.Error().Err(err).Str("category", category).Msg("courses: list")
			a.error(w, http.StatusInternalServerError, "list_failed", "Could not load the course.")
			return
		}
		lessons := make([]lessonItem, 0, len(files))
		for _, f := range files {
			lessons = append(lessons, lessonItem{ID: f.ID, Name: f.Name, MIME: f.MIME, SizeBytes: f.SizeBytes})
		}
		a.json(w, http.StatusOK, map[string]any{"plan": string(plan), "lessons": lessons})
	}
}
