package sketch

// Param is a single float64 degree of freedom owned by exactly one entity or
// auxiliary to a constraint.
//
//   - Known means this parameter is held fixed for the current solve
//     (Phase A substitution pinned it to a constant, or it belongs to an
//     earlier group). A dragged parameter is not marked Known; solve pins
//     it with a soft equation instead.
//   - Free marks a genuine degree of freedom of the solution manifold. No
//     solver pass sets it; solve.Result.FreeParams lists the free
//     parameters instead.
//   - Substd, when non-zero, names the parameter this one was folded into
//     during Phase A substitution; readers should follow the chain via
//     Store.Resolve.
type Param struct {
	H       ParamHandle
	Group   GroupHandle
	Val     float64
	Known   bool
	Free    bool
	Substd  ParamHandle
}

// ParamTable is the working array of Params for one solve. It is a thin
// alias over Table[Param] so the numeric kernel can address params by
// pointer once DeepCopyWithParamsAsPointers has run.
type ParamTable = Table[ParamHandle, *Param]

// NewParamTable constructs an empty, ready-to-use parameter table.
func NewParamTable() *ParamTable {
	return NewTable[ParamHandle, *Param](func(p *Param) ParamHandle { return p.H })
}
