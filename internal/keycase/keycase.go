// Package keycase rewrites mapping keys of decoded JSON trees between the
// camelCase used in Go payload tags and the snake_case used on the wire.
package keycase

import "github.com/iancoleman/strcase"

// DefaultDepth is the number of container levels converted by the API client.
// Objects and arrays each consume one level; anything deeper is returned
// untouched.
const DefaultDepth = 5

// ToSnake converts every map key in v to snake_case, up to depth levels.
func ToSnake(v any, depth int) any { return convert(v, depth, strcase.ToSnake) }

// ToCamel converts every map key in v to lowerCamelCase, up to depth levels.
func ToCamel(v any, depth int) any { return convert(v, depth, strcase.ToLowerCamel) }

func convert(v any, depth int, fn func(string) string) any {
	if depth <= 0 {
		return v
	}
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[fn(k)] = convert(val, depth-1, fn)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = convert(val, depth-1, fn)
		}
		return out
	default:
		return v
	}
}
