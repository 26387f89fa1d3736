package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"off", "command", "detail", "debug"} {
		l, err := ParseLevel(name)
		require.NoError(t, err)
		assert.Equal(t, name, l.String())
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestLevelShouldEmit(t *testing.T) {
	assert.False(t, LevelOff.ShouldEmit(ScopeCommand))
	assert.True(t, LevelCommand.ShouldEmit(ScopeCommand))
	assert.False(t, LevelCommand.ShouldEmit(ScopeLoad))
	assert.True(t, LevelDetail.ShouldEmit(ScopeResolve))
	assert.False(t, LevelDetail.ShouldEmit(ScopeType))
	assert.True(t, LevelDebug.ShouldEmit(ScopeType))
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	require.NoError(t, err)
	assert.False(t, tr.Enabled())
}

func TestSpansNestUnderContext(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDebug, Format: FormatNDJSON, Output: &buf})
	require.NoError(t, err)

	ctx := WithTracer(context.Background(), tr)
	ctx, outer := Start(ctx, ScopeCommand, "inspect")
	_, inner := Start(ctx, ScopeResolve, "Sequence<string>")
	inner.WithExtra("shape", "parameterized").End("")
	Point(ctx, ScopeType, "arg", "string")
	outer.End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)

	type rec struct {
		Kind     string            `json:"kind"`
		Name     string            `json:"name"`
		SpanID   uint64            `json:"span_id"`
		ParentID uint64            `json:"parent_id"`
		Extra    map[string]string `json:"extra"`
	}
	recs := make([]rec, len(lines))
	for i, line := range lines {
		require.NoError(t, json.Unmarshal([]byte(line), &recs[i]))
	}
	assert.Equal(t, "begin", recs[0].Kind)
	assert.Equal(t, recs[0].SpanID, recs[1].ParentID)
	assert.Equal(t, "parameterized", recs[2].Extra["shape"])
	assert.Equal(t, "point", recs[3].Kind)
	assert.Equal(t, recs[0].SpanID, recs[3].ParentID)
	assert.Equal(t, "end", recs[4].Kind)
}

func TestLevelFiltersScopes(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelCommand, Format: FormatText, Output: &buf})
	require.NoError(t, err)

	ctx := WithTracer(context.Background(), tr)
	ctx, s := Start(ctx, ScopeCommand, "classes")
	Point(ctx, ScopeLoad, "define", "Pair")
	s.End("")

	out := buf.String()
	assert.Contains(t, out, "→ classes")
	assert.Contains(t, out, "← classes")
	assert.NotContains(t, out, "define")
}

func TestFormatTextSortsExtras(t *testing.T) {
	ev := &Event{Seq: 3, Kind: KindSpanEnd, Scope: ScopeResolve, Name: "x", Detail: "d",
		Extra: map[string]string{"b": "2", "a": "1"}}
	out := string(FormatEvent(ev, FormatText))
	assert.Contains(t, out, "← x (d) {a=1, b=2}")
}

func TestDisabledSpanIsSafe(t *testing.T) {
	_, s := Start(context.Background(), ScopeCommand, "noop")
	assert.Zero(t, s.ID())
	assert.Zero(t, s.WithExtra("k", "v").End(""))
}
