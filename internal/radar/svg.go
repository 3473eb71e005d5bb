package radar

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// SVG is a Surface that renders to SVG markup. Drawing calls build the next
// frame; Flush publishes it to readers.
type SVG struct {
	w, h float64

	mu      sync.Mutex
	pending strings.Builder
	frame   string
}

// NewSVG returns an empty w×h SVG surface.
func NewSVG(w, h float64) *SVG {
	return &SVG{w: w, h: h}
}

func (s *SVG) Size() (float64, float64) { return s.w, s.h }

func (s *SVG) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.Reset()
}

func (s *SVG) Circle(c Point, r float64, st Style) {
	s.write(`<circle cx="%s" cy="%s" r="%s"%s/>`, num(c.X), num(c.Y), num(r), attrs(st))
}

func (s *SVG) Line(a, b Point, st Style) {
	s.write(`<line x1="%s" y1="%s" x2="%s" y2="%s"%s/>`, num(a.X), num(a.Y), num(b.X), num(b.Y), attrs(st))
}

func (s *SVG) Polygon(pts []Point, st Style) {
	coords := make([]string, len(pts))
	for i, p := range pts {
		coords[i] = num(p.X) + "," + num(p.Y)
	}
	s.write(`<polygon points="%s"%s/>`, strings.Join(coords, " "), attrs(st))
}

func (s *SVG) Text(at Point, text string, st Style) {
	var esc bytes.Buffer
	_ = xml.EscapeText(&esc, []byte(text))
	s.write(`<text x="%s" y="%s" text-anchor="middle"%s>%s</text>`, num(at.X), num(at.Y), attrs(st), esc.String())
}

// Flush publishes the frame drawn since the last Clear.
func (s *SVG) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = s.pending.String()
}

// String returns the last published frame as a complete SVG document.
func (s *SVG) String() string {
	s.mu.Lock()
	body := s.frame
	s.mu.Unlock()
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">%s</svg>`,
		num(s.w), num(s.h), num(s.w), num(s.h), body)
}

// WriteTo writes the last published frame to w.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

func (s *SVG) write(format string, a ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(&s.pending, format, a...)
}

func attrs(st Style) string {
	var b strings.Builder
	if st.Stroke != "" {
		fmt.Fprintf(&b, ` stroke="%s"`, st.Stroke)
	}
	if st.StrokeWidth > 0 {
		fmt.Fprintf(&b, ` stroke-width="%s"`, num(st.StrokeWidth))
	}
	if st.Fill != "" {
		fmt.Fprintf(&b, ` fill="%s"`, st.Fill)
	} else {
		b.WriteString(` fill="none"`)
	}
	if st.FontSize > 0 {
		fmt.Fprintf(&b, ` font-size="%s" font-family="system-ui"`, num(st.FontSize))
	}
	return b.String()
}

func num(f float64) string {
	s := strconv.FormatFloat(f, 'f', 2, 64)
	return strings.TrimRight(strings.TrimRight(s, "0"), ".")
}
