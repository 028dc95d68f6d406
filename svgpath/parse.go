// Package svgpath extracts hex outlines from the vector map.
//
// Only the straight-line subset of the SVG path grammar is understood: the
// absolute commands M L H V Z and their relative forms. Curves are rejected.
package svgpath

import (
	"fmt"
	"strconv"

	"github.com/geonext/hexmap/geom"
	"github.com/pkg/errors"
)

// Commands lists every path command the parser accepts.
const Commands = "MLHVZmlhvz"

var (
	// ErrEmptyPath is returned for a path without any drawing commands.
	ErrEmptyPath = errors.New("empty path data")
	// ErrUnknownCommand is wrapped by a SyntaxError for unsupported command letters.
	ErrUnknownCommand = errors.New("unknown path command")
)

// SyntaxError reports the position of a malformed path string.
type SyntaxError struct {
	Name   string
	Offset int
	Msg    string
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("path %q: offset %d: %s", e.Name, e.Offset, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Path holds the vertices visited by one path string and its anchor point.
type Path struct {
	Name     string
	Vertices []geom.Vec[geom.SVG]
	// Anchor is the component-wise minimum over all vertices.
	Anchor geom.Vec[geom.SVG]
	// Subpaths counts closed and trailing open subpaths.
	Subpaths int
}

// parser is the token-consuming state of a single path string.
type parser struct {
	name    string
	d       string
	pos     int
	command byte
	current geom.Vec[geom.SVG]
}

// Parse tokenizes the path data d. The returned error is either ErrEmptyPath or
// a *SyntaxError.
func Parse(d, name string) (*Path, error) {
	p := &parser{name: name, d: d, command: 'M'}
	p.skipSeparators()
	if p.pos >= len(p.d) {
		return nil, errors.Wrapf(ErrEmptyPath, "path %q", name)
	}

	path := &Path{Name: name}
	open := 0
	for p.skipSeparators(); p.pos < len(p.d); p.skipSeparators() {
		c := p.d[p.pos]
		switch {
		case isCommand(c):
			p.command = c
			p.pos++
		case !isNumberStart(c):
			return nil, &SyntaxError{Name: name, Offset: p.pos, Msg: fmt.Sprintf("unknown command %q", c), Err: ErrUnknownCommand}
		}

		if p.command == 'Z' || p.command == 'z' {
			// A closepath takes no arguments, so a number here would repeat it forever.
			p.skipSeparators()
			if p.pos < len(p.d) && !isCommand(p.d[p.pos]) {
				if !isNumberStart(p.d[p.pos]) {
					return nil, &SyntaxError{Name: name, Offset: p.pos, Msg: fmt.Sprintf("unknown command %q", p.d[p.pos]), Err: ErrUnknownCommand}
				}
				return nil, p.errorf("number after closepath")
			}
			path.Subpaths++
			open = 0
			continue
		}

		if err := p.step(); err != nil {
			return nil, err
		}
		if len(path.Vertices) == 0 {
			path.Anchor = p.current
		} else {
			path.Anchor = path.Anchor.Min(p.current)
		}
		path.Vertices = append(path.Vertices, p.current)
		open++
	}
	if open > 0 {
		path.Subpaths++
	}
	if len(path.Vertices) == 0 {
		return nil, errors.Wrapf(ErrEmptyPath, "path %q", name)
	}
	return path, nil
}

// step consumes the arguments of the current command and moves the pen.
func (p *parser) step() error {
	switch p.command {
	case 'M', 'L':
		x, y, err := p.pair()
		if err != nil {
			return err
		}
		p.current = geom.V[geom.SVG](x, y)
	case 'm', 'l':
		x, y, err := p.pair()
		if err != nil {
			return err
		}
		p.current = p.current.Add(geom.V[geom.SVG](x, y))
	case 'H':
		v, err := p.number()
		if err != nil {
			return err
		}
		p.current.X = v
	case 'h':
		v, err := p.number()
		if err != nil {
			return err
		}
		p.current.X += v
	case 'V':
		v, err := p.number()
		if err != nil {
			return err
		}
		p.current.Y = v
	case 'v':
		v, err := p.number()
		if err != nil {
			return err
		}
		p.current.Y += v
	}
	return nil
}

func (p *parser) pair() (float64, float64, error) {
	x, err := p.number()
	if err != nil {
		return 0, 0, err
	}
	y, err := p.number()
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// number reads one numeric token. A token may start with '-' and ends at a
// separator, a command letter, another '-', or a second '.'.
func (p *parser) number() (float64, error) {
	p.skipSeparators()
	start := p.pos
	if p.pos < len(p.d) && p.d[p.pos] == '-' {
		p.pos++
	}
	dot := false
	for p.pos < len(p.d) {
		c := p.d[p.pos]
		if c == '.' {
			if dot {
				break
			}
			dot = true
		} else if c < '0' || c > '9' {
			break
		}
		p.pos++
	}
	tok := p.d[start:p.pos]
	if tok == "" || tok == "-" || tok == "." || tok == "-." {
		p.pos = start
		return 0, p.errorf("expected number")
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, p.errorf("bad number %q", tok)
	}
	return v, nil
}

func (p *parser) skipSeparators() {
	for p.pos < len(p.d) && isSeparator(p.d[p.pos]) {
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Name: p.name, Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func isCommand(c byte) bool {
	for i := 0; i < len(Commands); i++ {
		if Commands[i] == c {
			return true
		}
	}
	return false
}

func isSeparator(c byte) bool {
	return c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r'
}

func isNumberStart(c byte) bool {
	return c == '-' || c == '.' || (c >= '0' && c <= '9')
}
