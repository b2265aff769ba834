package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/lukam/admitly/internal/storage"
)

// Certificates serves stored certificate files by exact filename. Possession
// of a filename is the only access control, so the content directory itself
// must never be browsable: anything that is not a plain single-segment name
// is answered with 404.
func Certificates(files *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		if name == "" || name == "." || name == ".." || name != filepath.Base(name) {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(files.Dir(), name))
	}
}
