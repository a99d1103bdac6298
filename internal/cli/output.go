package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ralt/pacdb/internal/models"
	"go.yaml.in/yaml/v3"
)

// Output formats
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// packageWriter writes a stream of packages in one output format
type packageWriter interface {
	Write(pkg *models.Package) error
	Close() error
}

func newPackageWriter(w io.Writer, format string, text func(io.Writer, *models.Package) error) (packageWriter, error) {
	switch format {
	case FormatText:
		return &textWriter{w: w, text: text}, nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		return &yamlWriter{enc: enc}, nil
	case FormatJSON:
		return &jsonWriter{enc: json.NewEncoder(w)}, nil
	default:
		return nil, &models.Error{
			Type:    models.ErrInvalidConfig,
			Subject: fmt.Sprintf("unknown output format %q (want text, yaml or json)", format),
		}
	}
}

type textWriter struct {
	w    io.Writer
	text func(io.Writer, *models.Package) error
}

func (t *textWriter) Write(pkg *models.Package) error { return t.text(t.w, pkg) }
func (t *textWriter) Close() error                    { return nil }

// yamlWriter writes one YAML document per package
type yamlWriter struct {
	enc *yaml.Encoder
}

func (y *yamlWriter) Write(pkg *models.Package) error { return y.enc.Encode(pkg) }
func (y *yamlWriter) Close() error                    { return y.enc.Close() }

// jsonWriter writes one JSON object per line
type jsonWriter struct {
	enc *json.Encoder
}

func (j *jsonWriter) Write(pkg *models.Package) error { return j.enc.Encode(pkg) }
func (j *jsonWriter) Close() error                    { return nil }
