package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jogamp/geom"
	"github.com/jogamp/geom/glyph"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"gopkg.in/yaml.v3"
)

// Scene is a set of named shapes and the queries to run against them.
type Scene struct {
	Shapes  []Shape `toml:"shapes" yaml:"shapes"`
	Queries []Query `toml:"queries" yaml:"queries"`
}

// Shape describes one path. Exactly one of Path and Text is set.
type Shape struct {
	Name string `toml:"name" yaml:"name"`
	// SVG path data.
	Path string `toml:"path" yaml:"path"`
	// Text is laid out in Go Regular at Size pixels per em.
	Text string  `toml:"text" yaml:"text"`
	Size float64 `toml:"size" yaml:"size"`
	// "nonzero" (the default) or "evenodd".
	Rule string `toml:"rule" yaml:"rule"`
	// Optional transform coefficients m00 m10 m01 m11 [m02 m12].
	Transform []float64 `toml:"transform" yaml:"transform"`
}

// Query kinds.
const (
	QueryContains     = "contains"
	QueryContainsRect = "contains-rect"
	QueryIntersects   = "intersects"
	QueryBounds       = "bounds"
	QueryCurrent      = "current"
)

// Query asks one question about a shape. Point holds x, y; Rect holds
// x, y, w, h.
type Query struct {
	Shape string    `toml:"shape" yaml:"shape"`
	Kind  string    `toml:"kind" yaml:"kind"`
	Point []float64 `toml:"point" yaml:"point"`
	Rect  []float64 `toml:"rect" yaml:"rect"`
}

func loadScene(name string) (*Scene, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return decodeScene(data, filepath.Ext(name))
}

func decodeScene(data []byte, ext string) (*Scene, error) {
	var s Scene
	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("decoding TOML scene: %w", err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decoding YAML scene: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported scene format %q", ext)
	}
	return &s, nil
}

func parseRule(s string) (geom.WindingRule, error) {
	switch strings.ToLower(s) {
	case "", "nonzero", "non-zero":
		return geom.NonZero, nil
	case "evenodd", "even-odd":
		return geom.EvenOdd, nil
	default:
		return 0, fmt.Errorf("%w: %q", geom.ErrWindingRule, s)
	}
}

// build constructs every shape in the scene, keyed by name.
func (s *Scene) build(logger *slog.Logger) (map[string]*geom.Path2D, error) {
	var face *sfnt.Font
	shapes := make(map[string]*geom.Path2D, len(s.Shapes))
	for _, sh := range s.Shapes {
		if sh.Name == "" {
			return nil, fmt.Errorf("shape without a name")
		}
		if _, dup := shapes[sh.Name]; dup {
			return nil, fmt.Errorf("duplicate shape %q", sh.Name)
		}

		var p *geom.Path2D
		var err error
		switch {
		case sh.Path != "" && sh.Text != "":
			return nil, fmt.Errorf("shape %q: path and text are mutually exclusive", sh.Name)
		case sh.Text != "":
			if face == nil {
				if face, err = sfnt.Parse(goregular.TTF); err != nil {
					return nil, err
				}
			}
			size := sh.Size
			if size <= 0 {
				size = 16
			}
			p, err = glyph.Text(face, sh.Text, fixed.Int26_6(size*64))
		default:
			p, err = geom.ParseSVG(sh.Path)
		}
		if err != nil {
			return nil, fmt.Errorf("shape %q: %w", sh.Name, err)
		}

		rule, err := parseRule(sh.Rule)
		if err != nil {
			return nil, fmt.Errorf("shape %q: %w", sh.Name, err)
		}
		if err := p.SetWindingRule(rule); err != nil {
			return nil, fmt.Errorf("shape %q: %w", sh.Name, err)
		}
		if len(sh.Transform) != 0 {
			t, err := geom.NewAffineTransformMatrix(sh.Transform)
			if err != nil {
				return nil, fmt.Errorf("shape %q: transform: %w", sh.Name, err)
			}
			p.Transform(t)
		}
		logger.Debug("built shape",
			slog.String("name", sh.Name),
			slog.Int("segments", p.Len()),
			slog.String("rule", rule.String()))
		shapes[sh.Name] = p
	}
	return shapes, nil
}

// run evaluates every query and writes one line per query to w.
func run(w io.Writer, s *Scene, logger *slog.Logger) error {
	shapes, err := s.build(logger)
	if err != nil {
		return err
	}
	for i, q := range s.Queries {
		p, ok := shapes[q.Shape]
		if !ok {
			return fmt.Errorf("query %d: unknown shape %q", i, q.Shape)
		}
		line, err := evaluate(p, q)
		if err != nil {
			return fmt.Errorf("query %d: %w", i, err)
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", q.Shape, line); err != nil {
			return err
		}
	}
	return nil
}

func evaluate(p *geom.Path2D, q Query) (string, error) {
	switch q.Kind {
	case QueryContains:
		if len(q.Point) != 2 {
			return "", fmt.Errorf("%s needs a point of 2 numbers, got %d", q.Kind, len(q.Point))
		}
		pt := geom.Pt(q.Point[0], q.Point[1])
		return fmt.Sprintf("contains %s: %t", pt, p.ContainsPoint(pt)), nil
	case QueryContainsRect, QueryIntersects:
		if len(q.Rect) != 4 {
			return "", fmt.Errorf("%s needs a rect of 4 numbers, got %d", q.Kind, len(q.Rect))
		}
		r := geom.NewRect(q.Rect[0], q.Rect[1], q.Rect[2], q.Rect[3])
		if q.Kind == QueryIntersects {
			return fmt.Sprintf("intersects %s: %t", r, p.Intersects(r)), nil
		}
		return fmt.Sprintf("contains %s: %t", r, p.ContainsRect(r)), nil
	case QueryBounds:
		return fmt.Sprintf("bounds: %s", p.Bounds2D()), nil
	case QueryCurrent:
		pt, ok := p.CurrentPoint()
		if !ok {
			return "current point: none", nil
		}
		return fmt.Sprintf("current point: %s", pt), nil
	default:
		return "", fmt.Errorf("unknown query kind %q", q.Kind)
	}
}
