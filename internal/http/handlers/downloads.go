package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/abhi-28-key/abhimusickeys-server/internal/domain"
	zipkit "github.com/abhi-28-key/abhimusickeys-server/pkg/zip"
)

const maxUploadBytes = 256 << 20 // style packs can run large

type downloadListItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	MIME         string `json:"mime"`
	SizeBytes    int64  `json:"size_bytes"`
	RequiredPlan string `json:"required_plan"`
	Accessible   bool   `json:"accessible"`
}

type downloadDescriptor struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	URL          string `json:"url"`
	MIME         string `json:"mime"`
	SizeBytes    int64  `json:"size_bytes"`
	Mode         string `json:"mode"`
	Instructions string `json:"instructions,omitempty"`
}

// DownloadsList returns the catalog, optionally filtered by category, with a
// per-file accessible flag for the current user. Anonymous callers see the
// catalog too, with only free files marked accessible.
func (a *App) DownloadsList(w http.ResponseWriter, r *http.Request) {
	user := a.currentUser(r)
	files, err := a.Downloads.List(r.Context(), strings.TrimSpace(r.URL.Query().Get("category")))
	if err != nil {
		a.Logger.Error().Err(err).Msg("downloads: list")
		a.error(w, http.StatusInternalServerError, "list_failed", "Could not load downloads.")
		return
	}
	items := make([]downloadListItem, 0, len(files))
	for _, f := range files {
		plan := f.PlanRequired()
		items = append(items, downloadListItem{
			ID:           f.ID,
			Name:         f.Name,
			Category:     f.Category,
			MIME:         f.MIME,
			SizeBytes:    f.SizeBytes,
			RequiredPlan: string(plan),
			Accessible:   a.Access.HasPlanAccess(r.Context(), user, plan),
		})
	}
	a.json(w, http.StatusOK, map[string]any{"downloads": items})
}

// DownloadsFetch gates a single file and, when access is granted, returns a
// dispatch descriptor telling the client how to trigger the download on its
// platform. The descriptor URL points at FilesServe, which re-checks access
// before handing out bytes.
func (a *App) DownloadsFetch(w http.ResponseWriter, r *http.Request) {
	user := a.currentUser(r)
	if user == nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "Sign in to download files.")
		return
	}
	file, err := a.Downloads.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "No such download.")
			return
		}
		a.Logger.Error().Err(err).Msg("downloads: fetch")
		a.error(w, http.StatusInternalServerError, "lookup_failed", "Could not load the download.")
		return
	}
	plan := file.PlanRequired()
	a.Access.Sync(r.Context(), user)
	if !a.Access.HasPlanAccess(r.Context(), user, plan) {
		a.json(w, http.StatusForbidden, map[string]string{
			"error":         "plan_required",
			"required_plan": string(plan),
			"redirect":      a.DeniedRedirect,
		})
		return
	}
	mode, instructions := ClassifyDispatch(r.UserAgent(), file.Name)
	a.json(w, http.StatusOK, downloadDescriptor{
		ID:           file.ID,
		Name:         file.Name,
		URL:          fmt.Sprintf("%s/%s", strings.TrimRight(a.DownloadBaseURL, "/"), file.StorageKey),
		MIME:         file.MIME,
		SizeBytes:    file.SizeBytes,
		Mode:         string(mode),
		Instructions: instructions,
	})
}

// FilesServe streams a stored file by its storage key. Access is checked
// again here: descriptor URLs are shareable strings, so possession of one is
// never treated as authorization.
func (a *App) FilesServe(w http.ResponseWriter, r *http.Request) {
	user := a.currentUser(r)
	key := chi.URLParam(r, "*")
	file, err := a.Downloads.GetByKey(r.Context(), key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "No such file.")
			return
		}
		a.Logger.Error().Err(err).Msg("downloads: serve lookup")
		a.error(w, http.StatusInternalServerError, "lookup_failed", "Could not load the file.")
		return
	}
	plan := file.PlanRequired()
	if plan.Paid() {
		if user == nil {
			a.error(w, http.StatusUnauthorized, "unauthorized", "Sign in to download files.")
			return
		}
		if !a.Access.HasPlanAccess(r.Context(), user, plan) {
			a.json(w, http.StatusForbidden, map[string]string{
				"error":         "plan_required",
				"required_plan": string(plan),
				"redirect":      a.DeniedRedirect,
			})
			return
		}
	}
	path, err := a.Files.Path(file.StorageKey)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "No such file.")
		return
	}
	if _, err := os.Stat(path); err != nil {
		a.Logger.Error().Err(err).Str("key", file.StorageKey).Msg("downloads: missing blob")
		a.error(w, http.StatusNotFound, "not_found", "File is missing from storage.")
		return
	}
	if file.MIME != "" {
		w.Header().Set("Content-Type", file.MIME)
	}
	mode, _ := ClassifyDispatch(r.UserAgent(), file.Name)
	disposition := "attachment"
	if mode == DispatchNewTab {
		disposition = "inline"
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, file.Name))
	http.ServeFile(w, r, path)
}

// DownloadsBundle zips every file in a category the user can access and
// streams the archive. Keyboard players load style packs from a single ZIP,
// so this saves tapping through the catalog one file at a time.
func (a *App) DownloadsBundle(w http.ResponseWriter, r *http.Request) {
	user := a.currentUser(r)
	if user == nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "Sign in to download files.")
		return
	}
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		a.error(w, http.StatusBadRequest, "category_required", "Pass a category to bundle.")
		return
	}
	files, err := a.Downloads.List(r.Context(), category)
	if err != nil {
		a.Logger.Error().Err(err).Msg("downloads: bundle list")
		a.error(w, http.StatusInternalServerError, "list_failed", "Could not load downloads.")
		return
	}
	a.Access.Sync(r.Context(), user)
	entries := make([]zipkit.Entry, 0, len(files))
	for _, f := range files {
		if !a.Access.HasPlanAccess(r.Context(), user, f.PlanRequired()) {
			continue
		}
		data, err := a.Files.Read(r.Context(), f.StorageKey)
		if err != nil {
			a.Logger.Warn().Err(err).Str("key", f.StorageKey).Msg("downloads: bundle skip")
			continue
		}
		entries = append(entries, zipkit.Entry{Name: f.Name, MIME: f.MIME, Data: data})
	}
	if len(entries) == 0 {
		a.json(w, http.StatusForbidden, map[string]string{
			"error":    "plan_required",
			"redirect": a.DeniedRedirect,
		})
		return
	}
	archive, err := zipkit.BuildBundle(entries)
	if err != nil {
		a.Logger.Error().Err(err).Msg("downloads: bundle build")
		a.error(w, http.StatusInternalServerError, "bundle_failed", "Could not build the bundle.")
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", category+"-pack.zip"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

// AdminDownloadsUpload ingests a new file via multipart form. Callers outside
// ADMIN_EMAILS get a 403 regardless of plan.
func (a *App) AdminDownloadsUpload(w http.ResponseWriter, r *http.Request) {
	user := a.currentUser(r)
	if !a.isAdmin(user) {
		a.error(w, http.StatusForbidden, "forbidden", "Admin access required.")
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_upload", "Could not parse the upload.")
		return
	}
	src, header, err := r.FormFile("file")
	if err != nil {
		a.error(w, http.StatusBadRequest, "file_required", "Attach a file field.")
		return
	}
	defer src.Close()

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		name = header.Filename
	}
	category := strings.TrimSpace(r.FormValue("category"))
	if category == "" {
		category = "general"
	}
	var requiredPlan domain.Plan
	if raw := strings.TrimSpace(r.FormValue("required_plan")); raw != "" {
		plan, err := domain.ParsePlan(raw)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_plan", "Unknown required_plan.")
			return
		}
		requiredPlan = plan
	}

	data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_upload", "Could not read the upload.")
		return
	}
	key, err := a.Files.Write(r.Context(), category+"/"+header.Filename, data)
	if err != nil {
		a.Logger.Error().Err(err).Msg("downloads: upload write")
		a.error(w, http.StatusInternalServerError, "store_failed", "Could not store the file.")
		return
	}
	mime := header.Header.Get("Content-Type")
	id, err := a.Downloads.Insert(r.Context(), &domain.DownloadFile{
		Name:         name,
		Category:     category,
		StorageKey:   key,
		MIME:         mime,
		SizeBytes:    int64(len(data)),
		RequiredPlan: requiredPlan,
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("downloads: upload insert")
		a.error(w, http.StatusInternalServerError, "store_failed", "Could not record the file.")
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"id": id, "storage_key": key})
}
