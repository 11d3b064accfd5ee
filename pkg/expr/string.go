package expr

import (
	"strconv"
	"strings"

	"src.wdl.dev/pkg/diag"
	"src.wdl.dev/pkg/errs"
	"src.wdl.dev/pkg/types"
	"src.wdl.dev/pkg/vals"
)

// StringPart is a part of an interpolated string: either a literal [Text]
// segment or a *[Placeholder].
type StringPart interface {
	isStringPart()
}

// Text is a literal text segment of an interpolated string. Backslash escape
// sequences are decoded when the string is evaluated.
type Text string

func (Text) isStringPart()         {}
func (*Placeholder) isStringPart() {}

// String is a string literal: text possibly interleaved with expression
// placeholders for interpolation. The source text's surrounding quote
// delimiters are included in the parts, and trimmed on evaluation.
type String struct {
	node
	Parts []StringPart
}

// NewString creates a new interpolated string node.
func NewString(pos diag.Ranging, parts []StringPart) *String {
	return &String{node{Ranging: pos}, parts}
}

func (x *String) inferType(tenv *TypeEnv) (types.Type, error) {
	for _, part := range x.Parts {
		if ph, ok := part.(*Placeholder); ok {
			if _, err := Infer(ph, tenv); err != nil {
				return nil, err
			}
		}
	}
	return types.String{}, nil
}

func (x *String) eval(ev *Env) (vals.Value, error) {
	var sb strings.Builder
	for _, part := range x.Parts {
		switch part := part.(type) {
		case Text:
			sb.WriteString(decodeEscapes(string(part)))
		case *Placeholder:
			v, err := Eval(part, ev)
			if err != nil {
				return nil, err
			}
			sb.WriteString(string(v.(vals.String)))
		}
	}
	// Trim the quote delimiters that the parsing stage is contracted to
	// include in the literal text.
	s := sb.String()
	if len(s) < 2 {
		return vals.String(""), nil
	}
	return vals.String(s[1 : len(s)-1]), nil
}

// Placeholder is an expression interpolated within a string or command, with
// options controlling how its value is rendered. The recognized option names
// are sep, true, false and default; they come from the string/command syntax.
type Placeholder struct {
	node
	Options map[string]string
	Expr    Expr
}

// NewPlaceholder creates a new placeholder node.
func NewPlaceholder(pos diag.Ranging, options map[string]string, inner Expr) *Placeholder {
	return &Placeholder{node{Ranging: pos}, options, inner}
}

func (x *Placeholder) inferType(tenv *TypeEnv) (types.Type, error) {
	t, err := Infer(x.Expr, tenv)
	if err != nil {
		return nil, err
	}
	_, hasSep := x.Options["sep"]
	if arr, ok := t.(types.Array); ok {
		if !hasSep {
			return nil, errs.StaticTypeMismatch{
				Ranging: x.Range(), Expected: types.Array{}, Actual: t,
				Message: "array placeholder must have 'sep' option"}
		}
		if arr.Item == nil || !types.Primitive(arr.Item) {
			return nil, errs.StaticTypeMismatch{
				Ranging: x.Range(), Expected: types.Array{}, Actual: t,
				Message: "cannot use array of complex types in placeholder"}
		}
	} else if hasSep {
		return nil, errs.StaticTypeMismatch{
			Ranging: x.Range(), Expected: types.Array{}, Actual: t,
			Message: "placeholder has 'sep' option for non-Array expression"}
	}
	_, hasTrue := x.Options["true"]
	_, hasFalse := x.Options["false"]
	if hasTrue || hasFalse {
		if !types.Equal(t, types.Boolean{}) {
			return nil, errs.StaticTypeMismatch{
				Ranging: x.Range(), Expected: types.Boolean{}, Actual: t,
				Message: "placeholder 'true' and 'false' options used with non-Boolean expression"}
		}
		if !hasTrue || !hasFalse {
			return nil, errs.StaticTypeMismatch{
				Ranging: x.Range(), Expected: types.Boolean{}, Actual: t,
				Message: "placeholder with only one of 'true' and 'false' options"}
		}
	}
	return types.String{}, nil
}

func (x *Placeholder) eval(ev *Env) (vals.Value, error) {
	v, err := Eval(x.Expr, ev)
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case vals.String:
		return v, nil
	case vals.Array:
		parts := make([]string, len(v.Items))
		for i, item := range v.Items {
			parts[i] = vals.ToString(item)
		}
		return vals.String(strings.Join(parts, x.Options["sep"])), nil
	case vals.Bool:
		if text, ok := x.Options[strconv.FormatBool(bool(v))]; ok {
			return vals.String(text), nil
		}
	}
	return vals.String(vals.ToString(v)), nil
}

// decodeEscapes decodes backslash escape sequences in a literal text segment.
// Unrecognized or truncated sequences are kept verbatim.
func decodeEscapes(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			sb.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case '0':
			sb.WriteByte(0)
		case '\\', '\'', '"':
			sb.WriteByte(s[i])
		case 'x', 'u', 'U':
			n := map[byte]int{'x': 2, 'u': 4, 'U': 8}[s[i]]
			if i+n < len(s) {
				if r, err := strconv.ParseUint(s[i+1:i+1+n], 16, 32); err == nil {
					sb.WriteRune(rune(r))
					i += n
					continue
				}
			}
			sb.WriteByte('\\')
			sb.WriteByte(s[i])
		default:
			sb.WriteByte('\\')
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}
