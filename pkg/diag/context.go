package diag

// Context is a range of text within a named source document. It is attached
// to errors that can be blamed on a specific part of the source, like a type
// mismatch on a subexpression.
type Context struct {
	Name   string
	Source string
	Ranging
}

// NewContext creates a new Context.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{name, source, r.Range()}
}

// Culprit returns the text the context covers.
func (c *Context) Culprit() string {
	if c.From < 0 || c.To > len(c.Source) || c.From > c.To {
		return ""
	}
	return c.Source[c.From:c.To]
}
