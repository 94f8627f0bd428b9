package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/anuptiwari/portfolio/internal/icons"
	"github.com/anuptiwari/portfolio/internal/reveal"
	"github.com/anuptiwari/portfolio/internal/viewport"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the stylesheet and other assets served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var transitions = map[string]reveal.Transition{
	"up":    reveal.FadeUp,
	"left":  reveal.FromLeft,
	"right": reveal.FromRight,
}

var hues = []string{"cyan", "purple", "green", "orange", "yellow", "pink"}

// hue extracts the color name from an accent such as
// "from-purple-500/20 to-pink-500/20", cycling a palette by index when the
// accent is empty.
func hue(accent string, i int) string {
	if rest, ok := strings.CutPrefix(accent, "from-"); ok {
		if name, _, found := strings.Cut(rest, "-"); found && name != "" {
			return name
		}
	}
	return hues[i%len(hues)]
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"icon": func(name, class string, size int) template.HTML {
			out, err := icons.HTML(context.Background(), name, class, size)
			if err != nil {
				log.Printf("Error rendering icon %q: %v", name, err)
				return ""
			}
			return out
		},
		// reveal "up" true → "opacity-100 translate-y-0"
		"reveal": func(kind string, revealed bool) string {
			t, ok := transitions[kind]
			if !ok {
				t = reveal.FadeUp
			}
			return t.Classes(revealed)
		},
		"barWidth": func(level int, revealed bool) template.CSS {
			return template.CSS("width: " + reveal.BarWidth(level, revealed))
		},
		"delay": func(i, stepMS int) template.CSS {
			return template.CSS(fmt.Sprintf("transition-delay: %dms", i*stepMS))
		},
		"glowStyle": func(p viewport.Position) template.CSS {
			return template.CSS(fmt.Sprintf("left: %.1fpx; top: %.1fpx", p.X, p.Y))
		},
		"particleStyle": func(p particle) template.CSS {
			return template.CSS(fmt.Sprintf("left: %.2f%%; top: %.2f%%; animation-delay: %.2fs; animation-duration: %.2fs",
				p.Left, p.Top, p.Delay, p.Duration))
		},
		"hue": hue,
		"orDefault": func(v, fallback string) string {
			if v == "" {
				return fallback
			}
			return v
		},
		// Links come from the operator's content file, so tel: and mailto:
		// are trusted.
		"link": func(s string) template.URL {
			return template.URL(s) //nolint:gosec // operator-authored content
		},
		"even": func(i int) bool { return i%2 == 0 },
		"days": func(d time.Duration) int { return int(d / (24 * time.Hour)) },
		"when": func(t time.Time) string { return t.Local().Format("Jan 2, 2006 15:04") },
	}
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(funcMap()).ParseFS(templateFS, "templates/*.html")
}

// renderFragment executes a named template into a string for an SSE frame.
func renderFragment(t *template.Template, name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
