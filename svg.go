package geom

import (
	"fmt"
	"io"
	"math"
	stdstrconv "strconv"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

// SVGOptions specifies optional settings for [Path2D.SVG] and
// [Path2D.WriteSVG].
type SVGOptions struct {
	// The maximum precision with which to format coordinates. A value of 0
	// chooses the highest precision necessary to unambiguously represent any
	// given coordinate.
	MaxPrecision int
}

// SVG converts the path to a string of SVG path commands.
//
// See [Path2D.WriteSVG] for a version that writes to an [io.Writer] instead
// of returning a string.
func (p *Path2D) SVG(opts SVGOptions) string {
	sb := &strings.Builder{}
	p.WriteSVG(sb, opts)
	return sb.String()
}

// WriteSVG converts the path to a string of SVG path commands and writes it
// to w.
//
// The current implementation doesn't take any special care to produce a
// short string (reducing precision, using relative movement).
func (p *Path2D) WriteSVG(w io.Writer, opts SVGOptions) error {
	space := []byte(" ")
	z := []byte("Z")
	var err error
	write := func(s []byte) {
		if err != nil {
			return
		}
		_, err = w.Write(s)
	}
	writef := func(s string, v ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, s, v...)
	}
	format := func(n float64) string {
		if n == 0 {
			// Drop the sign of negative zero.
			n = 0
		}
		maxPrec := opts.MaxPrecision
		if maxPrec <= 0 {
			return stdstrconv.FormatFloat(n, 'f', -1, 64)
		}
		s := stdstrconv.FormatFloat(n, 'f', maxPrec, 64)
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
		if s == "-0" || s == "" {
			s = "0"
		}
		return s
	}
	first := true
	for typ, c := range p.Elements(nil) {
		if err != nil {
			return err
		}
		if !first {
			write(space)
		}
		first = false
		switch typ {
		case SegMoveTo:
			writef("M%s,%s", format(c[0]), format(c[1]))
		case SegLineTo:
			writef("L%s,%s", format(c[0]), format(c[1]))
		case SegQuadTo:
			writef("Q%s,%s %s,%s",
				format(c[0]), format(c[1]),
				format(c[2]), format(c[3]))
		case SegCubicTo:
			writef("C%s,%s %s,%s %s,%s",
				format(c[0]), format(c[1]),
				format(c[2]), format(c[3]),
				format(c[4]), format(c[5]))
		case SegClose:
			write(z)
		default:
			panic("unreachable")
		}
	}
	return err
}

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t') {
		i++
	}
	return i
}

// MustParseSVG parses an SVG path data string and panics if it fails.
func MustParseSVG(s string) *Path2D {
	p, err := ParseSVG(s)
	if err != nil {
		panic(err)
	}
	return p
}

// cmdLens is the number of arguments taken by each SVG path command.
var cmdLens = map[byte]int{
	'M': 2,
	'Z': 0,
	'L': 2,
	'H': 1,
	'V': 1,
	'C': 6,
	'S': 4,
	'Q': 4,
	'T': 2,
	'A': 7,
}

// ParseSVG parses an SVG path data string. The returned path uses the
// [NonZero] rule, which is SVG's default fill rule. Arcs are converted to
// cubic Béziers within [Tolerance].
func ParseSVG(s string) (*Path2D, error) {
	p := &Path2D{rule: NonZero}
	if len(s) == 0 {
		return p, nil
	}

	path := []byte(s)
	i := skipCommaWhitespace(path)
	if i == len(path) {
		return p, nil
	}
	if path[0] == ',' || path[i] < 'A' {
		return nil, fmt.Errorf("bad path: path should start with command")
	}

	var f [7]float64
	var q, c, p0, p1 Point
	prevCmd := byte('z')
	for {
		i += skipCommaWhitespace(path[i:])
		if len(path) <= i {
			break
		}

		cmd := prevCmd
		repeat := true
		if cmd == 'z' || cmd == 'Z' || !(path[i] >= '0' && path[i] <= '9' || path[i] == '.' || path[i] == '-' || path[i] == '+') {
			cmd = path[i]
			repeat = false
			i++
			i += skipCommaWhitespace(path[i:])
		}

		CMD := cmd
		if 'a' <= cmd && cmd <= 'z' {
			CMD -= 'a' - 'A'
		}
		nargs, ok := cmdLens[CMD]
		if !ok {
			return nil, fmt.Errorf("bad path: unknown command '%c' at position %d", cmd, i)
		}
		for j := range nargs {
			if CMD == 'A' && (j == 3 || j == 4) {
				// Flags may be written without separators, as in "a1 1 0 011 1".
				if i < len(path) && path[i] == '1' {
					f[j] = 1
				} else if i < len(path) && path[i] == '0' {
					f[j] = 0
				} else {
					return nil, fmt.Errorf("bad path: largeArc and sweep flags should be 0 or 1 in command '%c' at position %d", cmd, i+1)
				}
				i++
			} else {
				num, n := strconv.ParseFloat(path[i:])
				if n == 0 {
					if repeat && j == 0 && i < len(path) {
						return nil, fmt.Errorf("bad path: unknown command '%c' at position %d", path[i], i+1)
					} else if 1 < nargs {
						return nil, fmt.Errorf("bad path: sets of %d numbers should follow command '%c' at position %d", nargs, cmd, i+1)
					}
					return nil, fmt.Errorf("bad path: number should follow command '%c' at position %d", cmd, i+1)
				}
				f[j] = num
				i += n
			}
			i += skipCommaWhitespace(path[i:])
		}

		var err error
		switch cmd {
		case 'M', 'm':
			p1 = Point{f[0], f[1]}
			if cmd == 'm' {
				p1 = p1.Translate(Vec2(p0))
				cmd = 'l'
			} else {
				cmd = 'L'
			}
			p.MoveTo(p1.X, p1.Y)
		case 'Z', 'z':
			err = p.ClosePath()
			if err == nil {
				p1, _ = p.CurrentPoint()
			}
		case 'L', 'l':
			p1 = Point{f[0], f[1]}
			if cmd == 'l' {
				p1 = p1.Translate(Vec2(p0))
			}
			err = p.LineTo(p1.X, p1.Y)
		case 'H', 'h':
			p1.X = f[0]
			if cmd == 'h' {
				p1.X += p0.X
			}
			err = p.LineTo(p1.X, p1.Y)
		case 'V', 'v':
			p1.Y = f[0]
			if cmd == 'v' {
				p1.Y += p0.Y
			}
			err = p.LineTo(p1.X, p1.Y)
		case 'C', 'c':
			cp1 := Point{f[0], f[1]}
			cp2 := Point{f[2], f[3]}
			p1 = Point{f[4], f[5]}
			if cmd == 'c' {
				cp1 = cp1.Translate(Vec2(p0))
				cp2 = cp2.Translate(Vec2(p0))
				p1 = p1.Translate(Vec2(p0))
			}
			err = p.CurveTo(cp1.X, cp1.Y, cp2.X, cp2.Y, p1.X, p1.Y)
			c = cp2
		case 'S', 's':
			cp1 := p0
			cp2 := Point{f[0], f[1]}
			p1 = Point{f[2], f[3]}
			if cmd == 's' {
				cp2 = cp2.Translate(Vec2(p0))
				p1 = p1.Translate(Vec2(p0))
			}
			if prevCmd == 'C' || prevCmd == 'c' || prevCmd == 'S' || prevCmd == 's' {
				cp1 = c.Reflect(p0)
			}
			err = p.CurveTo(cp1.X, cp1.Y, cp2.X, cp2.Y, p1.X, p1.Y)
			c = cp2
		case 'Q', 'q':
			cp := Point{f[0], f[1]}
			p1 = Point{f[2], f[3]}
			if cmd == 'q' {
				cp = cp.Translate(Vec2(p0))
				p1 = p1.Translate(Vec2(p0))
			}
			err = p.QuadTo(cp.X, cp.Y, p1.X, p1.Y)
			q = cp
		case 'T', 't':
			cp := p0
			p1 = Point{f[0], f[1]}
			if cmd == 't' {
				p1 = p1.Translate(Vec2(p0))
			}
			if prevCmd == 'Q' || prevCmd == 'q' || prevCmd == 'T' || prevCmd == 't' {
				cp = q.Reflect(p0)
			}
			err = p.QuadTo(cp.X, cp.Y, p1.X, p1.Y)
			q = cp
		case 'A', 'a':
			p1 = Point{f[5], f[6]}
			if cmd == 'a' {
				p1 = p1.Translate(Vec2(p0))
			}
			rot := f[2] * math.Pi / 180
			err = p.ArcTo(f[0], f[1], rot, f[3] == 1, f[4] == 1, p1.X, p1.Y)
		}
		if err != nil {
			return nil, fmt.Errorf("bad path: command '%c' at position %d: %w", cmd, i, err)
		}
		prevCmd = cmd
		p0 = p1
	}
	return p, nil
}
