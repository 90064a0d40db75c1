package script

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/samber/mo"
	"golang.org/x/text/cases"

	"github.com/mholzen/lifo/pkg/collections"
)

type Kind int

const (
	Push Kind = iota + 1
	Pop
	Peek
	Empty
	Clear
)

var kindNames = map[Kind]string{
	Push:  "push",
	Pop:   "pop",
	Peek:  "peek",
	Empty: "empty",
	Clear: "clear",
}

var kindsByName = func() map[string]Kind {
	out := make(map[string]Kind, len(kindNames))
	for kind, name := range kindNames {
		out[name] = kind
	}
	return out
}()

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

var (
	ErrUnknownOp         = errors.New("unknown operation")
	ErrMissingOperand    = errors.New("missing operand")
	ErrUnexpectedOperand = errors.New("unexpected operand")
)

type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MaxLineLength is the longest script line Parse accepts, in bytes.
const MaxLineLength = 16 << 20

// Op is a single stack operation. Value is only meaningful for Push.
type Op struct {
	Line  int
	Kind  Kind
	Value int32
}

// Parse reads one operation per line. A push with several operands expands
// to one Op per operand, in order.
func Parse(r io.Reader) ([]Op, error) {
	folder := cases.Fold()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), MaxLineLength)

	var ops []Op
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		kind, ok := kindsByName[folder.String(fields[0])]
		if !ok {
			return nil, &ParseError{Line: line, Text: text, Err: ErrUnknownOp}
		}
		operands := fields[1:]

		if kind != Push {
			if len(operands) > 0 {
				return nil, &ParseError{Line: line, Text: text, Err: ErrUnexpectedOperand}
			}
			ops = append(ops, Op{Line: line, Kind: kind})
			continue
		}

		if len(operands) == 0 {
			return nil, &ParseError{Line: line, Text: text, Err: ErrMissingOperand}
		}
		for _, operand := range operands {
			value, err := strconv.ParseInt(operand, 10, 32)
			if err != nil {
				return nil, &ParseError{Line: line, Text: text, Err: err}
			}
			ops = append(ops, Op{Line: line, Kind: Push, Value: int32(value)})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read script: %w", err)
	}
	return ops, nil
}

type Result struct {
	Line  int
	Op    Kind
	Value mo.Option[int32]
	Empty bool
}

func (r Result) String() string {
	switch r.Op {
	case Push:
		if value, ok := r.Value.Get(); ok {
			return fmt.Sprintf("push %d", value)
		}
		return "push"
	case Pop, Peek:
		if value, ok := r.Value.Get(); ok {
			return fmt.Sprintf("%s -> %d", r.Op, value)
		}
		return fmt.Sprintf("%s -> none", r.Op)
	case Empty:
		return fmt.Sprintf("empty -> %t", r.Empty)
	default:
		return r.Op.String()
	}
}

func (r Result) MarshalJSON() ([]byte, error) {
	out := struct {
		Line  int    `json:"line"`
		Op    Kind   `json:"op"`
		Value *int32 `json:"value"`
		Empty *bool  `json:"empty,omitempty"`
	}{
		Line:  r.Line,
		Op:    r.Op,
		Value: r.Value.ToPointer(),
	}
	if r.Op == Empty {
		out.Empty = &r.Empty
	}
	return json.Marshal(out)
}

// Run applies ops to s in order. Push results carry the pushed value; pop and
// peek results carry None when the stack was empty.
func Run(s *collections.IntStack, ops []Op) []Result {
	results := make([]Result, 0, len(ops))
	for _, op := range ops {
		result := Result{Line: op.Line, Op: op.Kind}
		switch op.Kind {
		case Push:
			s.Push(op.Value)
			result.Value = mo.Some(op.Value)
		case Pop:
			result.Value = s.Pop()
		case Peek:
			if top, ok := s.Peek().Get(); ok {
				result.Value = mo.Some(*top)
			}
		case Empty:
			result.Empty = s.IsEmpty()
		case Clear:
			s.Clear()
		}
		slog.Debug("applied operation", "line", op.Line, "result", result.String())
		results = append(results, result)
	}
	return results
}
