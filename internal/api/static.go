package api

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/yegors/wxwidget/pkg/logger"
)

// StaticFileHandler serves the page shell from disk without caching, so edits
// to www/ show up on the next reload
type StaticFileHandler struct {
	staticDir string
	logger    *logger.Logger
}

// NewStaticFileHandler creates a new static file handler
func NewStaticFileHandler(staticDir string, logger *logger.Logger) *StaticFileHandler {
	return &StaticFileHandler{
		staticDir: staticDir,
		logger:    logger.Named("static-handler"),
	}
}

// ServeHTTP serves one file below the static directory
func (h *StaticFileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	fullPath, ok := h.resolve(r.URL.Path)
	if !ok {
		h.logger.Warn("Rejected path outside static directory",
			logger.String("requested_path", r.URL.Path))
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	info, err := os.Stat(fullPath)
	if err == nil && info.IsDir() {
		fullPath = filepath.Join(fullPath, "index.html")
		info, err = os.Stat(fullPath)
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			h.logger.Debug("File not found", logger.String("path", fullPath))
			http.NotFound(w, r)
			return
		}
		h.logger.Error("Failed to stat file", logger.Error(err), logger.String("path", fullPath))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")

	h.logger.Debug("Serving static file",
		logger.String("requested_path", r.URL.Path),
		logger.String("file_path", fullPath),
		logger.Int64("size", info.Size()))

	http.ServeFile(w, r, fullPath)
}

// resolve maps a URL path to a file path, refusing anything that escapes the static directory
func (h *StaticFileHandler) resolve(urlPath string) (string, bool) {
	clean := strings.TrimPrefix(filepath.Clean("/"+urlPath), "/")
	if clean == "" {
		clean = "index.html"
	}

	root, err := filepath.Abs(h.staticDir)
	if err != nil {
		return "", false
	}
	full := filepath.Join(root, filepath.FromSlash(clean))

	rel, err := filepath.Rel(root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return full, true
}
