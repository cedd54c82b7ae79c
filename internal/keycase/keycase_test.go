package keycase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSnake(t *testing.T) {
	t.Parallel()

	in := map[string]any{
		"title":     "Buy milk",
		"createdAt": "2024-01-01",
		"categories": []any{
			map[string]any{"id": 1, "displayName": "Home"},
		},
	}
	want := map[string]any{
		"title":      "Buy milk",
		"created_at": "2024-01-01",
		"categories": []any{
			map[string]any{"id": 1, "display_name": "Home"},
		},
	}
	assert.Equal(t, want, ToSnake(in, DefaultDepth))
}

func TestToCamel(t *testing.T) {
	t.Parallel()

	in := []any{
		map[string]any{"id": 1, "status_code": 404, "is_done": true},
	}
	want := []any{
		map[string]any{"id": 1, "statusCode": 404, "isDone": true},
	}
	assert.Equal(t, want, ToCamel(in, DefaultDepth))
}

func TestScalarsPassThrough(t *testing.T) {
	t.Parallel()

	for _, v := range []any{nil, "snake_case_value", 3.5, true} {
		assert.Equal(t, v, ToCamel(v, DefaultDepth))
		assert.Equal(t, v, ToSnake(v, DefaultDepth))
	}
}

// nest builds {"levelOne": {"levelOne": ... {"leafKey": "x"}}} n maps deep.
func nest(n int, key, leaf string) map[string]any {
	m := map[string]any{leaf: "x"}
	for i := 1; i < n; i++ {
		m = map[string]any{key: m}
	}
	return m
}

func TestRoundTripWithinDepth(t *testing.T) {
	t.Parallel()

	for depth := 1; depth <= DefaultDepth; depth++ {
		orig := nest(depth, "innerValue", "leafKey")
		wire := ToSnake(orig, DefaultDepth)
		assert.Equal(t, orig, ToCamel(wire, DefaultDepth), "depth %d", depth)
	}
}

func TestDepthBound(t *testing.T) {
	t.Parallel()

	orig := nest(DefaultDepth+1, "innerValue", "leafKey")
	got := ToSnake(orig, DefaultDepth).(map[string]any)

	// walk the five converted levels
	cur := got
	for i := 0; i < DefaultDepth-1; i++ {
		next, ok := cur["inner_value"].(map[string]any)
		if !assert.True(t, ok, "level %d not converted", i+1) {
			return
		}
		cur = next
	}
	// fifth converted level holds the sixth map untouched
	sixth, ok := cur["inner_value"].(map[string]any)
	if assert.True(t, ok) {
		assert.Contains(t, sixth, "leafKey")
		assert.NotContains(t, sixth, "leaf_key")
	}
}

func TestArraysConsumeDepth(t *testing.T) {
	t.Parallel()

	in := []any{map[string]any{"outerKey": []any{map[string]any{"innerKey": 1}}}}

	got := ToSnake(in, 3).([]any)
	outer := got[0].(map[string]any)
	inner := outer["outer_key"].([]any)[0].(map[string]any)
	assert.Contains(t, inner, "innerKey")

	got = ToSnake(in, 4).([]any)
	outer = got[0].(map[string]any)
	inner = outer["outer_key"].([]any)[0].(map[string]any)
	assert.Contains(t, inner, "inner_key")
}

// Digits start a new word on the way to snake_case, and the split is undone
// on the way back.
func TestDigitsSplitWords(t *testing.T) {
	t.Parallel()

	in := map[string]any{"address1": "x", "item2Name": "y"}
	snake := ToSnake(in, DefaultDepth)
	assert.Equal(t, map[string]any{"address_1": "x", "item_2_name": "y"}, snake)
	assert.Equal(t, in, ToCamel(snake, DefaultDepth))
}
