package expr

import (
	"src.wdl.dev/pkg/diag"
	"src.wdl.dev/pkg/errs"
	"src.wdl.dev/pkg/types"
	"src.wdl.dev/pkg/vals"
)

// IfThenElse is a conditional expression. Only the branch selected by the
// condition is evaluated.
type IfThenElse struct {
	node
	Condition   Expr
	Consequent  Expr
	Alternative Expr
}

// NewIfThenElse creates a new conditional node.
func NewIfThenElse(pos diag.Ranging, condition, consequent, alternative Expr) *IfThenElse {
	return &IfThenElse{node{Ranging: pos}, condition, consequent, alternative}
}

func (x *IfThenElse) inferType(tenv *TypeEnv) (types.Type, error) {
	ct, err := Infer(x.Condition, tenv)
	if err != nil {
		return nil, err
	}
	if !types.Equal(ct, types.Boolean{}) {
		return nil, errs.StaticTypeMismatch{
			Ranging: x.Range(), Expected: types.Boolean{}, Actual: ct,
			Message: "in if condition"}
	}
	t, err := Infer(x.Consequent, tenv)
	if err != nil {
		return nil, err
	}
	at, err := Infer(x.Alternative, tenv)
	if err != nil {
		return nil, err
	}
	// An Int consequent with a Float alternative widens the whole
	// conditional to Float.
	if (t == types.Int{} && at == types.Float{}) {
		t = types.Float{}
	}
	if Typecheck(x.Alternative, t) != nil {
		return nil, errs.StaticTypeMismatch{
			Ranging: x.Range(), Expected: TypeOf(x.Consequent), Actual: at,
			Message: "if consequent & alternative must have the same type"}
	}
	return t, nil
}

func (x *IfThenElse) eval(ev *Env) (vals.Value, error) {
	cond, err := Eval(x.Condition, ev)
	if err != nil {
		return nil, err
	}
	cond, err = vals.Expect(cond, types.Boolean{})
	if err != nil {
		return nil, err
	}
	if cond != vals.Bool(false) {
		return Eval(x.Consequent, ev)
	}
	return Eval(x.Alternative, ev)
}
