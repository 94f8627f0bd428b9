package content

import (
	"bytes"
	"html/template"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

var (
	validate      = validator.New(validator.WithRequiredStructEnabled())
	markdown      = goldmark.New(goldmark.WithExtensions(extension.GFM))
	markdownCache sync.Map
)

// Validate checks required fields and the 0–100 bound on every rating.
func (p *Portfolio) Validate() error {
	if err := validate.Struct(p); err != nil {
		return errors.Wrap(err, "invalid portfolio content")
	}
	return nil
}

// Parse decodes a YAML portfolio document and validates it.
func Parse(data []byte) (*Portfolio, error) {
	var p Portfolio
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, errors.Wrap(err, "failed to parse portfolio YAML")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads a portfolio document from path. An empty path yields Default.
func Load(path string) (*Portfolio, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read content file %s", path)
	}
	return Parse(data)
}

// Markdown renders src to HTML. Results are memoised since content is
// immutable once loaded.
func Markdown(src string) (template.HTML, error) {
	if v, ok := markdownCache.Load(src); ok {
		return v.(template.HTML), nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", errors.Wrap(err, "failed to render markdown")
	}
	out := template.HTML(buf.String()) //nolint:gosec // content is operator-authored
	markdownCache.Store(src, out)
	return out, nil
}
