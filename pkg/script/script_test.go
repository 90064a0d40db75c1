package script

import (
	"bufio"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/mholzen/lifo/pkg/collections"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Op
	}{
		{
			name: "single operations",
			text: "push 1\npop\npeek\nempty\nclear\n",
			want: []Op{
				{Line: 1, Kind: Push, Value: 1},
				{Line: 2, Kind: Pop},
				{Line: 3, Kind: Peek},
				{Line: 4, Kind: Empty},
				{Line: 5, Kind: Clear},
			},
		},
		{
			name: "push expands operands in order",
			text: "push 1 2 -3",
			want: []Op{
				{Line: 1, Kind: Push, Value: 1},
				{Line: 1, Kind: Push, Value: 2},
				{Line: 1, Kind: Push, Value: -3},
			},
		},
		{
			name: "blank lines and comments are skipped",
			text: "# setup\n\n  push 5  \n\t# done\npop",
			want: []Op{
				{Line: 3, Kind: Push, Value: 5},
				{Line: 5, Kind: Pop},
			},
		},
		{
			name: "verbs are case-insensitive",
			text: "PUSH 2\nPop\npEEk",
			want: []Op{
				{Line: 1, Kind: Push, Value: 2},
				{Line: 2, Kind: Pop},
				{Line: 3, Kind: Peek},
			},
		},
		{
			name: "int32 bounds",
			text: "push 2147483647 -2147483648",
			want: []Op{
				{Line: 1, Kind: Push, Value: 2147483647},
				{Line: 1, Kind: Push, Value: -2147483648},
			},
		},
		{
			name: "empty script",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.text))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		line    int
		wantErr error
	}{
		{name: "unknown verb", text: "push 1\nshove 2", line: 2, wantErr: ErrUnknownOp},
		{name: "push without operand", text: "push", line: 1, wantErr: ErrMissingOperand},
		{name: "pop with operand", text: "pop 1", line: 1, wantErr: ErrUnexpectedOperand},
		{name: "not a number", text: "push one", line: 1, wantErr: strconv.ErrSyntax},
		{name: "overflows int32", text: "\npush 2147483648", line: 2, wantErr: strconv.ErrRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.text))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tt.line, parseErr.Line)
		})
	}
}

func TestParse_LongLine(t *testing.T) {
	const count = 100_000
	operands := make([]string, count)
	for i := range operands {
		operands[i] = strconv.Itoa(1_000_000 + i)
	}
	text := "push " + strings.Join(operands, " ") + "\npop\n"
	require.Greater(t, len(text), bufio.MaxScanTokenSize)

	ops, err := Parse(strings.NewReader(text))
	require.NoError(t, err)
	require.Len(t, ops, count+1)
	assert.Equal(t, Op{Line: 1, Kind: Push, Value: 1_000_000 + count - 1}, ops[count-1])
	assert.Equal(t, Op{Line: 2, Kind: Pop}, ops[count])
}

func TestParse_LineTooLong(t *testing.T) {
	text := "push " + strings.Repeat("1", MaxLineLength)

	_, err := Parse(strings.NewReader(text))
	assert.ErrorIs(t, err, bufio.ErrTooLong)
}

func TestRun_Scenario(t *testing.T) {
	ops, err := Parse(strings.NewReader("push 1 2 3\npeek\npop\npop\npop\npop\nempty"))
	require.NoError(t, err)

	results := Run(collections.New[int32](), ops)

	var lines []string
	for _, r := range results {
		lines = append(lines, r.String())
	}
	assert.Equal(t, []string{
		"push 1",
		"push 2",
		"push 3",
		"peek -> 3",
		"pop -> 3",
		"pop -> 2",
		"pop -> 1",
		"pop -> none",
		"empty -> true",
	}, lines)
}

func TestRun_ClearLeavesStackUsable(t *testing.T) {
	s := collections.New[int32]()
	ops, err := Parse(strings.NewReader("push 1 2\nclear\nempty\npush 9\npop"))
	require.NoError(t, err)

	results := Run(s, ops)

	require.Len(t, results, 6)
	assert.Equal(t, "clear", results[2].String())
	assert.Equal(t, "empty -> true", results[3].String())
	assert.Equal(t, "pop -> 9", results[5].String())
	assert.True(t, s.IsEmpty())
}

func TestResult_String(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{name: "push", result: Result{Line: 1, Op: Push, Value: mo.Some[int32](4)}, want: "push 4"},
		{name: "push without value", result: Result{Line: 1, Op: Push}, want: "push"},
		{name: "pop", result: Result{Op: Pop, Value: mo.Some[int32](-2)}, want: "pop -> -2"},
		{name: "peek on empty stack", result: Result{Op: Peek}, want: "peek -> none"},
		{name: "empty", result: Result{Op: Empty, Empty: true}, want: "empty -> true"},
		{name: "clear", result: Result{Op: Clear}, want: "clear"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.String())
		})
	}
}

func TestResult_MarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{
			name:   "push",
			result: Result{Line: 1, Op: Push, Value: mo.Some[int32](4)},
			want:   `{"line":1,"op":"push","value":4}`,
		},
		{
			name:   "pop on empty stack",
			result: Result{Line: 2, Op: Pop},
			want:   `{"line":2,"op":"pop","value":null}`,
		},
		{
			name:   "empty",
			result: Result{Line: 3, Op: Empty, Empty: false},
			want:   `{"line":3,"op":"empty","value":null,"empty":false}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.result)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestRun_PopsMirrorPushes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		values := rapid.SliceOfN(rapid.Int32(), 1, 50).Draw(t, "values")

		var b strings.Builder
		b.WriteString("push")
		for _, v := range values {
			b.WriteString(" " + strconv.Itoa(int(v)))
		}
		b.WriteString("\n" + strings.Repeat("pop\n", len(values)+1))

		ops, err := Parse(strings.NewReader(b.String()))
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		results := Run(collections.New[int32](), ops)

		pops := results[len(values):]
		for i, r := range pops[:len(values)] {
			want := values[len(values)-1-i]
			if got, ok := r.Value.Get(); !ok || got != want {
				t.Fatalf("pop %d: got %d (present=%v), want %d", i, got, ok, want)
			}
		}
		if pops[len(values)].Value.IsPresent() {
			t.Fatalf("extra pop returned a value")
		}
	})
}
