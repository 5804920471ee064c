package nabla

import (
	"github.com/benbjohnson/immutable"

	"github.com/vito/nabla/pkg/hm"
)

// Context maps object names to types during inference. It is
// persistent: Bind returns a new context, leaving the receiver usable
// for speculative inference.
type Context struct {
	vars *immutable.Map[string, hm.Type]
}

// NewContext creates an empty context.
func NewContext() Context {
	return Context{vars: immutable.NewMap[string, hm.Type](nil)}
}

// Bind returns a context extended with a binding for name.
func (c Context) Bind(name string, t hm.Type) Context {
	return Context{vars: c.vars.Set(name, t)}
}

// Get looks up the type bound to a name.
func (c Context) Get(name string) (hm.Type, bool) {
	return c.vars.Get(name)
}

// Len returns the number of bindings.
func (c Context) Len() int {
	return c.vars.Len()
}
