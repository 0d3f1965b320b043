package web

import (
	"bytes"
	"context"
	"html/template"
	"net/http"
	"path/filepath"
	"time"

	"github.com/justinas/alice"
	"github.com/rs/zerolog/log"

	"avatar/internal/anim"
	"avatar/internal/avatar"
	"avatar/internal/export"
	"avatar/internal/option"
	"avatar/internal/render"
	"avatar/internal/session"
)

type Server struct {
	Store session.Store[*avatar.Avatar]
	Tmpl  *template.Template
	// Defaults seed every new avatar and every stateless render.
	Defaults avatar.Props
	Export   export.Options
	// NewAvatar builds visitor avatars; nil means avatar.New.
	NewAvatar func(avatar.Props) *avatar.Avatar
}

const cookieName = "avatar_sid"

// ParseTemplates loads the page templates from dir.
func ParseTemplates(dir string) (*template.Template, error) {
	return template.ParseFiles(
		filepath.Join(dir, "layout_head.html"),
		filepath.Join(dir, "studio.html"),
		filepath.Join(dir, "avatar.html"),
	)
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/studio", s.handleStudio)
	mux.HandleFunc("/avatar", s.handleUpdate)
	mux.HandleFunc("/avatar.svg", s.handleSVG)
	mux.HandleFunc("/avatar/stream", s.handleStream)
	mux.HandleFunc("/hover/enter", s.handleHover(true))
	mux.HandleFunc("/hover/leave", s.handleHover(false))
	mux.HandleFunc("/export/", s.handleExport)
	mux.HandleFunc("/reset", s.handleReset)
	return alice.New(Recover, LogRequest).Then(mux)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/studio", http.StatusFound)
}

func (s *Server) handleStudio(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a, _ := s.getOrCreateAvatar(r.Context(), w, r)
	vm, err := s.makeStudioViewModel(a)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := s.Tmpl.ExecuteTemplate(w, "studio.html", vm); err != nil {
		log.Error().Err(err).Msg("render studio")
	}
}

// handleUpdate applies the studio form to the visitor's avatar and returns
// the avatar fragment for htmx.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	a, _ := s.getOrCreateAvatar(r.Context(), w, r)
	a.Update(propsFrom(s.Defaults, r.PostForm))

	vm, err := avatarViewModel(a)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = s.Tmpl.ExecuteTemplate(w, "avatar.html", vm)
}

// handleSVG renders the avatar described by the query string alone.
func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	p := propsFrom(s.Defaults, r.URL.Query())
	doc := export.Frames(p, nil)[0]
	var buf bytes.Buffer
	if err := render.WriteSVG(&buf, doc, p.Width, p.Height); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", export.SVG.ContentType())
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleHover(enter bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		a, ok := s.existingAvatar(r.Context(), r)
		if !ok {
			http.Error(w, "no avatar", http.StatusNotFound)
			return
		}
		if enter {
			a.PointerEnter()
		} else {
			a.PointerLeave()
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleReset closes the visitor's avatar; the next request starts afresh.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if id := s.sessionID(r); id != "" {
		if a, ok, _ := s.Store.Delete(r.Context(), id); ok {
			a.Close()
			log.Info().Str("session", id).Msg("avatar reset")
		}
	}
	w.Header().Set("HX-Redirect", "/studio")
	http.Redirect(w, r, "/studio", http.StatusSeeOther)
}

func (s *Server) newAvatar() *avatar.Avatar {
	if s.NewAvatar != nil {
		return s.NewAvatar(s.Defaults)
	}
	return avatar.New(s.Defaults)
}

func (s *Server) getOrCreateAvatar(ctx context.Context, w http.ResponseWriter, r *http.Request) (*avatar.Avatar, string) {
	id := s.sessionID(r)
	if id == "" {
		id = s.Store.NewID()
		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	a, ok, _ := s.Store.Get(ctx, id)
	if !ok {
		a = s.newAvatar()
		_ = s.Store.Put(ctx, id, a)
		log.Info().Str("session", id).Msg("avatar created")
	}
	return a, id
}

func (s *Server) existingAvatar(ctx context.Context, r *http.Request) (*avatar.Avatar, bool) {
	id := s.sessionID(r)
	if id == "" {
		return nil, false
	}
	a, ok, err := s.Store.Get(ctx, id)
	return a, ok && err == nil
}

func (s *Server) sessionID(r *http.Request) string {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// Expire closes avatars left unused for longer than idle, checking every
// interval until ctx is done.
func (s *Server) Expire(ctx context.Context, idle, every time.Duration) {
	exp, ok := s.Store.(interface {
		Expire(time.Duration) []*avatar.Avatar
	})
	if !ok {
		return
	}
	tick := time.NewTicker(every)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			gone := exp.Expire(idle)
			for _, a := range gone {
				a.Close()
			}
			if len(gone) > 0 {
				log.Info().Int("count", len(gone)).Msg("expired idle avatars")
			}
		}
	}
}

func svgMarkup(doc render.Document, width, height int) (template.HTML, error) {
	var buf bytes.Buffer
	if err := render.WriteSVG(&buf, doc, width, height); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil //nolint:gosec // markup is generated, not user supplied
}

func avatarViewModel(a *avatar.Avatar) (AvatarViewModel, error) {
	w, h := a.Size()
	svg, err := svgMarkup(a.Render(), w, h)
	if err != nil {
		return AvatarViewModel{}, err
	}
	return AvatarViewModel{SVG: svg}, nil
}

func (s *Server) makeStudioViewModel(a *avatar.Avatar) (StudioViewModel, error) {
	av, err := avatarViewModel(a)
	if err != nil {
		return StudioViewModel{}, err
	}
	current := a.Values()
	vm := StudioViewModel{
		Avatar:     av,
		Style:      string(s.Defaults.Style),
		Background: s.Defaults.Background,
		Formats:    export.Formats,
		Animation: AnimationView{
			IdleInterval:  int(s.Defaults.Anim.IdleInterval / time.Millisecond),
			HoverScale:    s.Defaults.Anim.HoverScale,
			HoverInterval: int(s.Defaults.Anim.HoverInterval / time.Millisecond),
			HoverSequence: len(s.Defaults.Anim.HoverSequence) > 0,
		},
	}
	for _, c := range option.Catalog {
		cv := CategoryView{
			Key:      string(c.Key),
			Label:    c.Label,
			Values:   c.Values,
			Selected: current[c.Key],
			Animated: c.Key == option.Mouth || c.Key == option.Eyes || c.Key == option.Eyebrow,
		}
		if cv.Animated {
			cv.Selected = s.Defaults.Values[c.Key]
		} else if cv.Selected == "" {
			cv.Selected = avatar.Defaults[c.Key]
		}
		vm.Categories = append(vm.Categories, cv)
	}
	return vm, nil
}

// sequenceOf is the expression list exported for an animated format.
func sequenceOf(p avatar.Props) []anim.Expression {
	if len(p.Anim.HoverSequence) > 0 {
		return p.Anim.HoverSequence
	}
	return anim.DefaultHoverSequence
}
