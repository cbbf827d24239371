package animation

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/ivlev/deckplay/internal/deck"
)

// MotionDistance is the travel of the preset motion paths, in logical units
const MotionDistance = 150.0

// Offset is a displacement on the logical canvas
type Offset struct {
	DX, DY float64
}

// FinalOffset returns where a motion effect leaves its element, relative to
// the resting position. Non-motion effects and unparsable paths yield zero.
func FinalOffset(spec deck.AnimationSpec) Offset {
	if spec.Category != deck.CategoryMotion {
		return Offset{}
	}

	switch spec.Effect {
	case deck.EffectMotionLineRight:
		return Offset{DX: MotionDistance}
	case deck.EffectMotionLineDown:
		return Offset{DY: MotionDistance}
	case deck.EffectMotionDiagonalDownRight:
		return Offset{DX: MotionDistance, DY: MotionDistance}
	case deck.EffectMotionCustomPath:
		p, err := ParsePath(spec.Path)
		if err != nil {
			return Offset{}
		}
		x, y := p.End()
		return Offset{DX: x, DY: y}
	}

	return Offset{}
}

// SegmentOp is a normalized path command
type SegmentOp int

const (
	OpMove SegmentOp = iota
	OpLine
	OpQuad
	OpCubic
	OpClose
)

// Segment is one absolute path command. Points holds the control points
// followed by the end point.
type Segment struct {
	Op     SegmentOp
	Points [][2]float64
}

// MotionPath is SVG path data reduced to absolute move/line/quad/cubic segments.
// Arcs are approximated by a straight line to their end point.
type MotionPath struct {
	Segments []Segment
}

// End returns the final point of the path
func (p MotionPath) End() (float64, float64) {
	var x, y, sx, sy float64
	for _, s := range p.Segments {
		switch s.Op {
		case OpClose:
			x, y = sx, sy
		default:
			pt := s.Points[len(s.Points)-1]
			x, y = pt[0], pt[1]
			if s.Op == OpMove {
				sx, sy = x, y
			}
		}
	}
	return x, y
}

// ParsePath parses SVG path data (M L H V C S Q T A Z, absolute and relative).
func ParsePath(data string) (MotionPath, error) {
	toks, err := tokenize(data)
	if err != nil {
		return MotionPath{}, err
	}
	if len(toks) == 0 {
		return MotionPath{}, fmt.Errorf("empty path")
	}

	var (
		path     MotionPath
		cx, cy   float64 // current point
		sx, sy   float64 // subpath start
		lastCtrl [2]float64
		lastCmd  byte
		cmd      byte
		i        int
	)

	num := func() (float64, error) {
		if i >= len(toks) || toks[i].isCmd {
			return 0, fmt.Errorf("path: expected number after %q", cmd)
		}
		v := toks[i].num
		i++
		return v, nil
	}
	nums := func(n int) ([]float64, error) {
		out := make([]float64, n)
		for k := range out {
			v, err := num()
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	}

	for i < len(toks) {
		if toks[i].isCmd {
			cmd = toks[i].cmd
			i++
		} else if cmd == 0 {
			return MotionPath{}, fmt.Errorf("path must start with a command")
		}
		rel := unicode.IsLower(rune(cmd))
		ox, oy := 0.0, 0.0
		if rel {
			ox, oy = cx, cy
		}

		switch unicode.ToUpper(rune(cmd)) {
		case 'M':
			v, err := nums(2)
			if err != nil {
				return MotionPath{}, err
			}
			cx, cy = ox+v[0], oy+v[1]
			sx, sy = cx, cy
			path.Segments = append(path.Segments, Segment{Op: OpMove, Points: [][2]float64{{cx, cy}}})
			// further coordinate pairs are implicit line-tos
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'L':
			v, err := nums(2)
			if err != nil {
				return MotionPath{}, err
			}
			cx, cy = ox+v[0], oy+v[1]
			path.Segments = append(path.Segments, Segment{Op: OpLine, Points: [][2]float64{{cx, cy}}})
		case 'H':
			v, err := num()
			if err != nil {
				return MotionPath{}, err
			}
			cx = ox + v
			path.Segments = append(path.Segments, Segment{Op: OpLine, Points: [][2]float64{{cx, cy}}})
		case 'V':
			v, err := num()
			if err != nil {
				return MotionPath{}, err
			}
			cy = oy + v
			path.Segments = append(path.Segments, Segment{Op: OpLine, Points: [][2]float64{{cx, cy}}})
		case 'C':
			v, err := nums(6)
			if err != nil {
				return MotionPath{}, err
			}
			c1 := [2]float64{ox + v[0], oy + v[1]}
			c2 := [2]float64{ox + v[2], oy + v[3]}
			cx, cy = ox+v[4], oy+v[5]
			lastCtrl = c2
			path.Segments = append(path.Segments, Segment{Op: OpCubic, Points: [][2]float64{c1, c2, {cx, cy}}})
		case 'S':
			v, err := nums(4)
			if err != nil {
				return MotionPath{}, err
			}
			c1 := [2]float64{cx, cy}
			if up := unicode.ToUpper(rune(lastCmd)); up == 'C' || up == 'S' {
				c1 = [2]float64{2*cx - lastCtrl[0], 2*cy - lastCtrl[1]}
			}
			c2 := [2]float64{ox + v[0], oy + v[1]}
			cx, cy = ox+v[2], oy+v[3]
			lastCtrl = c2
			path.Segments = append(path.Segments, Segment{Op: OpCubic, Points: [][2]float64{c1, c2, {cx, cy}}})
		case 'Q':
			v, err := nums(4)
			if err != nil {
				return MotionPath{}, err
			}
			c := [2]float64{ox + v[0], oy + v[1]}
			cx, cy = ox+v[2], oy+v[3]
			lastCtrl = c
			path.Segments = append(path.Segments, Segment{Op: OpQuad, Points: [][2]float64{c, {cx, cy}}})
		case 'T':
			v, err := nums(2)
			if err != nil {
				return MotionPath{}, err
			}
			c := [2]float64{cx, cy}
			if up := unicode.ToUpper(rune(lastCmd)); up == 'Q' || up == 'T' {
				c = [2]float64{2*cx - lastCtrl[0], 2*cy - lastCtrl[1]}
			}
			cx, cy = ox+v[0], oy+v[1]
			lastCtrl = c
			path.Segments = append(path.Segments, Segment{Op: OpQuad, Points: [][2]float64{c, {cx, cy}}})
		case 'A':
			v, err := nums(7)
			if err != nil {
				return MotionPath{}, err
			}
			cx, cy = ox+v[5], oy+v[6]
			path.Segments = append(path.Segments, Segment{Op: OpLine, Points: [][2]float64{{cx, cy}}})
		case 'Z':
			if i < len(toks) && !toks[i].isCmd {
				return MotionPath{}, fmt.Errorf("path: unexpected number after %q", cmd)
			}
			cx, cy = sx, sy
			path.Segments = append(path.Segments, Segment{Op: OpClose})
		default:
			return MotionPath{}, fmt.Errorf("path: unsupported command %q", cmd)
		}
		lastCmd = cmd
	}

	return path, nil
}

type token struct {
	isCmd bool
	cmd   byte
	num   float64
}

func tokenize(data string) ([]token, error) {
	var toks []token
	s := data
	for len(s) > 0 {
		c := s[0]
		switch {
		case c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r':
			s = s[1:]
		case strings.IndexByte("MmLlHhVvCcSsQqTtAaZz", c) >= 0:
			toks = append(toks, token{isCmd: true, cmd: c})
			s = s[1:]
		default:
			n := numberLen(s)
			if n == 0 {
				return nil, fmt.Errorf("path: unexpected %q", c)
			}
			v, err := strconv.ParseFloat(s[:n], 64)
			if err != nil {
				return nil, fmt.Errorf("path: %w", err)
			}
			toks = append(toks, token{num: v})
			s = s[n:]
		}
	}
	return toks, nil
}

// numberLen returns the length of the float literal at the start of s.
// Handles compact forms such as "10-5" and "1.5.5".
func numberLen(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits, dot := false, false
	for i < len(s) {
		c := s[i]
		if c >= '0' && c <= '9' {
			digits = true
			i++
		} else if c == '.' && !dot {
			dot = true
			i++
		} else {
			break
		}
	}
	if !digits {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && s[k] >= '0' && s[k] <= '9' {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}
