package web

import (
	"bytes"
	"net/http"
	"strings"

	"avatar/internal/export"
)

// handleExport serves /export/{svg|png|gif|pdf}. The visitor's current
// avatar is the base when there is one; query parameters override it.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	format, err := export.ParseFormat(strings.TrimPrefix(r.URL.Path, "/export/"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	base := s.Defaults
	if a, ok := s.existingAvatar(r.Context(), r); ok {
		base.Values = a.Values()
	}
	p := propsFrom(base, r.URL.Query())

	frames := export.Frames(p, nil)
	if format.Animated() {
		frames = export.Frames(p, sequenceOf(p))
	}
	opts := s.Export
	if n, ok := intParam(r.URL.Query(), paramWidth); ok && n > 0 {
		opts.Width = n
	}
	if opts.Title == "" {
		opts.Title = "Avatar"
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, frames, opts); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="avatar.`+string(format)+`"`)
	if _, err := w.Write(buf.Bytes()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
