package nabla

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Expression is the already-parsed expression tree handed to the
// checker. The checker pattern-matches on this shape but never
// constructs or mutates user expressions.
type Expression interface {
	isExpression()
}

// Const is a literal constant, carried as its source text.
type Const struct {
	Text string
}

// Object is a free identifier.
type Object struct {
	Name string
}

// Placeholder is a deliberately unfilled slot in the notation. Each
// occurrence is type-inferred independently.
type Placeholder struct {
	ID   int
	Hint string
}

// Operation applies a named operation to argument expressions.
type Operation struct {
	Name string
	Args []Expression
}

// List is an ordered sequence of expressions, typed as a product.
type List struct {
	Items []Expression
}

func (Const) isExpression()       {}
func (Object) isExpression()      {}
func (Placeholder) isExpression() {}
func (Operation) isExpression()   {}
func (List) isExpression()        {}

// Op is a convenience constructor for operation nodes.
func Op(name string, args ...Expression) Operation {
	return Operation{Name: name, Args: args}
}

type exprJSON struct {
	Const       *string          `json:"const,omitempty"`
	Object      *string          `json:"object,omitempty"`
	Placeholder *placeholderJSON `json:"placeholder,omitempty"`
	Op          *operationJSON   `json:"op,omitempty"`
	List        []exprJSON       `json:"list,omitempty"`
}

type placeholderJSON struct {
	ID   int    `json:"id"`
	Hint string `json:"hint,omitempty"`
}

type operationJSON struct {
	Name string     `json:"name"`
	Args []exprJSON `json:"args,omitempty"`
}

// DecodeExpression decodes the stable JSON form of an expression tree,
// the exchange format used by external tooling and the CLI.
func DecodeExpression(data []byte) (Expression, error) {
	var wire exprJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, errors.Wrap(err, "decoding expression")
	}
	return wire.toExpression()
}

// EncodeExpression encodes an expression tree as JSON.
func EncodeExpression(expr Expression) ([]byte, error) {
	wire, err := toWire(expr)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wire)
}

func (w exprJSON) toExpression() (Expression, error) {
	switch {
	case w.Const != nil:
		return Const{Text: *w.Const}, nil
	case w.Object != nil:
		return Object{Name: *w.Object}, nil
	case w.Placeholder != nil:
		return Placeholder{ID: w.Placeholder.ID, Hint: w.Placeholder.Hint}, nil
	case w.Op != nil:
		args := make([]Expression, len(w.Op.Args))
		for i, arg := range w.Op.Args {
			expr, err := arg.toExpression()
			if err != nil {
				return nil, err
			}
			args[i] = expr
		}
		return Operation{Name: w.Op.Name, Args: args}, nil
	case w.List != nil:
		items := make([]Expression, len(w.List))
		for i, item := range w.List {
			expr, err := item.toExpression()
			if err != nil {
				return nil, err
			}
			items[i] = expr
		}
		return List{Items: items}, nil
	}
	return nil, errors.New("expression object has no recognized variant")
}

func toWire(expr Expression) (exprJSON, error) {
	switch e := expr.(type) {
	case Const:
		return exprJSON{Const: &e.Text}, nil
	case Object:
		return exprJSON{Object: &e.Name}, nil
	case Placeholder:
		return exprJSON{Placeholder: &placeholderJSON{ID: e.ID, Hint: e.Hint}}, nil
	case Operation:
		args := make([]exprJSON, len(e.Args))
		for i, arg := range e.Args {
			wire, err := toWire(arg)
			if err != nil {
				return exprJSON{}, err
			}
			args[i] = wire
		}
		return exprJSON{Op: &operationJSON{Name: e.Name, Args: args}}, nil
	case List:
		items := make([]exprJSON, 0, len(e.Items))
		for _, item := range e.Items {
			wire, err := toWire(item)
			if err != nil {
				return exprJSON{}, err
			}
			items = append(items, wire)
		}
		return exprJSON{List: items}, nil
	}
	return exprJSON{}, errors.Errorf("expression of type %T is unhandled", expr)
}
