package vals

import (
	"strconv"
	"strings"
)

// ToString returns the generic stringification of a value, used when a value
// is substituted into an interpolated string with no formatting option
// applying to it. Floats render with six decimal places, following the task
// command conventions of the source language.
func ToString(v Value) string {
	switch v := v.(type) {
	case Bool:
		if v {
			return "true"
		}
		return "false"
	case Int:
		return strconv.FormatInt(int64(v), 10)
	case Float:
		return strconv.FormatFloat(float64(v), 'f', 6, 64)
	case String:
		return string(v)
	case Array:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(ToString(item))
		}
		sb.WriteByte(']')
		return sb.String()
	default:
		panic("code bug: unknown value variant")
	}
}
