package web

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"avatar/internal/anim"
	"avatar/internal/avatar"
	"avatar/internal/export"
	"avatar/internal/option"
	"avatar/internal/session"
	"avatar/internal/variant"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	tmpl, err := ParseTemplates(filepath.Join("..", "..", "templates"))
	if err != nil {
		t.Fatalf("ParseTemplates: %v", err)
	}
	return &Server{
		Store:    session.NewMemoryStore[*avatar.Avatar](),
		Tmpl:     tmpl,
		Defaults: avatar.Props{Anim: anim.Config{HoverScale: 1.2}},
		NewAvatar: func(p avatar.Props) *avatar.Avatar {
			a := avatar.New(p,
				avatar.WithClock(anim.NewManualClock()),
				avatar.WithRand(rand.New(rand.NewPCG(1, 2))))
			t.Cleanup(a.Close)
			return a
		},
	}
}

// withAvatar stores a fresh avatar and returns its session id.
func withAvatar(t *testing.T, srv *Server) (string, *avatar.Avatar) {
	t.Helper()
	a := srv.newAvatar()
	id := srv.Store.NewID()
	if err := srv.Store.Put(context.Background(), id, a); err != nil {
		t.Fatalf("Put: %v", err)
	}
	return id, a
}

func serve(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	return rec
}

func TestHandleIndex(t *testing.T) {
	srv := testServer(t)
	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	if rec.Code != http.StatusFound {
		t.Errorf("Expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/studio" {
		t.Errorf("Expected Location /studio, got %q", loc)
	}

	rec = serve(srv, httptest.NewRequest(http.MethodGet, "/nope", http.NoBody))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown path, got %d", rec.Code)
	}
}

func TestHandleStudio(t *testing.T) {
	srv := testServer(t)
	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/studio", http.NoBody))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"<svg", `name="topType"`, `href="/export/gif"`} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected body to contain %q", want)
		}
	}
	if rec.Header().Get("Set-Cookie") == "" {
		t.Error("Expected Set-Cookie for new session")
	}

	rec = serve(srv, httptest.NewRequest(http.MethodPost, "/studio", http.NoBody))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}
}

func TestHandleUpdate(t *testing.T) {
	srv := testServer(t)
	id, a := withAvatar(t, srv)

	form := url.Values{"topType": {"LongHairBob"}, "hairColor": {"Red"}, "mouthType": {"Smile"}}
	req := httptest.NewRequest(http.MethodPost, "/avatar", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: cookieName, Value: id})
	rec := serve(srv, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Error("Expected the avatar fragment to contain svg markup")
	}
	got := a.Values()
	if got[option.Top] != "LongHairBob" || got[option.HairColor] != "Red" {
		t.Errorf("Expected the form to reach the avatar, got %v", got)
	}
}

func TestHandleUpdate_ParseFormError(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/avatar", io.NopCloser(&errReader{err: errors.New("read error")}))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := serve(srv, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 on ParseForm error, got %d", rec.Code)
	}
}

// errReader is an io.Reader that always returns an error.
type errReader struct{ err error }

func (e *errReader) Read([]byte) (int, error) { return 0, e.err }

func TestHandleSVG(t *testing.T) {
	srv := testServer(t)
	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/avatar.svg?topType=Hat&width=132&height=140", http.NoBody))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Expected image/svg+xml, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `width="132" height="140"`) {
		t.Errorf("Expected requested size, got %.120q", rec.Body.String())
	}
}

func TestHandleHover(t *testing.T) {
	srv := testServer(t)
	rec := serve(srv, httptest.NewRequest(http.MethodPost, "/hover/enter", http.NoBody))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 without a session, got %d", rec.Code)
	}

	id, a := withAvatar(t, srv)
	req := httptest.NewRequest(http.MethodPost, "/hover/enter", http.NoBody)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: id})
	if rec := serve(srv, req); rec.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", rec.Code)
	}
	if st := a.State(); !st.MouseOver || st.Scale != 1.2 {
		t.Errorf("Expected hover with scale 1.2, got %+v", st)
	}

	req = httptest.NewRequest(http.MethodPost, "/hover/leave", http.NoBody)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: id})
	if rec := serve(srv, req); rec.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", rec.Code)
	}
	if st := a.State(); st.MouseOver {
		t.Error("Expected pointer to have left")
	}
}

func TestHandleExport(t *testing.T) {
	srv := testServer(t)
	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/export/png?width=100", http.NoBody))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "avatar.png") {
		t.Errorf("Expected attachment filename, got %q", cd)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 {
		t.Errorf("Expected width 100, got %d", b.Dx())
	}

	rec = serve(srv, httptest.NewRequest(http.MethodGet, "/export/pdf", http.NoBody))
	if rec.Code != http.StatusOK || !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Errorf("Expected a PDF, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != export.PDF.ContentType() {
		t.Errorf("Expected %s, got %q", export.PDF.ContentType(), ct)
	}

	rec = serve(srv, httptest.NewRequest(http.MethodGet, "/export/gif?width=40", http.NoBody))
	if rec.Code != http.StatusOK || !bytes.HasPrefix(rec.Body.Bytes(), []byte("GIF89a")) {
		t.Errorf("Expected a GIF, got %d", rec.Code)
	}

	rec = serve(srv, httptest.NewRequest(http.MethodGet, "/export/bmp", http.NoBody))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown format, got %d", rec.Code)
	}
}

func TestHandleExport_UsesSessionAvatar(t *testing.T) {
	srv := testServer(t)
	id, a := withAvatar(t, srv)
	a.Update(avatar.Props{Values: option.Values{option.Top: "Eyepatch"}})

	get := func(cookie bool) string {
		req := httptest.NewRequest(http.MethodGet, "/export/svg", http.NoBody)
		if cookie {
			req.AddCookie(&http.Cookie{Name: cookieName, Value: id})
		}
		return serve(srv, req).Body.String()
	}
	if get(true) == get(false) {
		t.Error("Expected the session avatar to change the export")
	}
}

func TestHandleReset(t *testing.T) {
	srv := testServer(t)
	id, a := withAvatar(t, srv)

	req := httptest.NewRequest(http.MethodPost, "/reset", http.NoBody)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: id})
	rec := serve(srv, req)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("Expected 303, got %d", rec.Code)
	}
	if rec.Header().Get("HX-Redirect") != "/studio" {
		t.Error("Expected HX-Redirect header")
	}
	if _, ok, _ := srv.Store.Get(context.Background(), id); ok {
		t.Error("Expected session to be removed")
	}
	ch, cancel := a.Subscribe()
	defer cancel()
	if _, open := <-ch; open {
		t.Error("Expected avatar to be closed")
	}
}

func TestHandleStream(t *testing.T) {
	srv := testServer(t)

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/avatar/stream", http.NoBody))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 without a session, got %d", rec.Code)
	}

	id, _ := withAvatar(t, srv)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/avatar/stream", http.NoBody).WithContext(ctx)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: id})
	rec = serve(srv, req)

	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("Expected event stream, got %q", ct)
	}
	if body := rec.Body.String(); !strings.HasPrefix(body, "data: <svg") || !strings.HasSuffix(body, "\n\n") {
		t.Errorf("Expected one svg event, got %.80q", body)
	}
}

func TestExpire(t *testing.T) {
	srv := testServer(t)
	_, a := withAvatar(t, srv)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		srv.Expire(ctx, 0, time.Millisecond)
		close(done)
	}()

	ch, unsub := a.Subscribe()
	defer unsub()
	for range ch {
	}
	cancel()
	<-done
	if n := srv.Store.(*session.MemoryStore[*avatar.Avatar]).Len(); n != 0 {
		t.Errorf("Expected expired session to be dropped, got %d", n)
	}
}

func TestPropsFrom(t *testing.T) {
	base := avatar.Props{
		Values: option.Values{option.Top: "Hat"},
		Anim:   anim.Config{HoverSequence: anim.DefaultHoverSequence},
	}
	q := url.Values{
		"eyeType":       {"Wink"},
		"avatarStyle":   {"Transparent"},
		"width":         {"120"},
		"height":        {"bogus"},
		"idleInterval":  {"800"},
		"hoverScale":    {"1.1"},
		"hoverSequence": {"off"},
	}
	p := propsFrom(base, q)

	if p.Values[option.Top] != "Hat" || p.Values[option.Eyes] != "Wink" {
		t.Errorf("Expected merged values, got %v", p.Values)
	}
	if _, ok := base.Values[option.Eyes]; ok {
		t.Error("Expected base values to be left alone")
	}
	if p.Style != avatar.StyleTransparent || p.Width != 120 || p.Height != 0 {
		t.Errorf("Expected style and width applied, got %+v", p)
	}
	if p.Anim.IdleInterval != 800*time.Millisecond || p.Anim.HoverScale != 1.1 {
		t.Errorf("Expected animation settings, got %+v", p.Anim)
	}
	if p.Anim.HoverSequence != nil {
		t.Error("Expected hover sequence turned off")
	}
	if len(base.Anim.HoverSequence) == 0 {
		t.Error("Expected base sequence to be left alone")
	}
}

func TestRecover(t *testing.T) {
	h := Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", rec.Code)
	}
}

func TestRecover_WiringBugPropagates(t *testing.T) {
	h := Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		_ = variant.Variant[string]{}.Tag()
	}))
	defer func() {
		err, ok := recover().(error)
		if !ok || !errors.Is(err, variant.ErrUntagged) {
			t.Errorf("Expected the untagged variant panic to propagate, got %v", err)
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	t.Error("Expected ServeHTTP to panic")
}
