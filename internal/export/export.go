// Package export renders avatars to downloadable files. Every frame is a
// timer-free snapshot, so the same input always produces the same file.
package export

import (
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"

	"avatar/internal/anim"
	"avatar/internal/avatar"
	"avatar/internal/option"
	"avatar/internal/render"
)

// Format is an export file type.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
	GIF Format = "gif"
	PDF Format = "pdf"
)

// Formats lists every supported format.
var Formats = []Format{SVG, PNG, GIF, PDF}

// ParseFormat accepts a format name in any case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.Errorf("export: unknown format %q", s)
}

// ContentType is the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case SVG:
		return "image/svg+xml"
	case PNG:
		return "image/png"
	case GIF:
		return "image/gif"
	case PDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// Animated reports whether f holds more than one frame.
func (f Format) Animated() bool {
	return f == GIF || f == PDF
}

const (
	DefaultWidth = render.Width
	DefaultDelay = 500 * time.Millisecond
)

// Options tunes the encoders. Zero values select the defaults.
type Options struct {
	// Width of the output in pixels (points for PDF); height follows the
	// avatar aspect ratio.
	Width int
	// Delay between GIF frames.
	Delay time.Duration
	// Title is printed under each PDF frame when set.
	Title string
}

func (o Options) size() (int, int) {
	w := o.Width
	if w <= 0 {
		w = DefaultWidth
	}
	return w, (w*render.Height + render.Width/2) / render.Width
}

func (o Options) delay() time.Duration {
	if o.Delay <= 0 {
		return DefaultDelay
	}
	return o.Delay
}

// Frames renders p once per expression of seq. An empty seq yields a single
// frame with the expression p already carries.
func Frames(p avatar.Props, seq []anim.Expression) []render.Document {
	if len(seq) == 0 {
		seq = []anim.Expression{{
			Mouth:   p.Values[option.Mouth],
			Eyes:    p.Values[option.Eyes],
			Eyebrow: p.Values[option.Eyebrow],
		}}
	}
	out := make([]render.Document, len(seq))
	for i, e := range seq {
		out[i] = avatar.RenderSnapshot(p, e)
	}
	return out
}

// Write encodes frames as f. Single-frame formats use the first frame.
func Write(w io.Writer, f Format, frames []render.Document, opts Options) error {
	if len(frames) == 0 {
		return errors.New("export: no frames")
	}
	var err error
	switch f {
	case SVG:
		width, height := opts.size()
		err = render.WriteSVG(w, frames[0], width, height)
	case PNG:
		err = WritePNG(w, frames[0], opts)
	case GIF:
		err = WriteGIF(w, frames, opts)
	case PDF:
		err = WritePDF(w, frames, opts)
	default:
		return errors.Errorf("export: unknown format %q", f)
	}
	return errors.Wrapf(err, "export %s", f)
}
