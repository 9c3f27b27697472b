// Package pp renders terms as human-readable text, the same recursive
// String()-per-node style the teacher's type package uses rather than a
// layout/combinator library: a kernel term tree is small and flat enough
// that fmt.Sprintf plus strings.Join needs no library help.
package pp

import (
	"fmt"
	"strings"

	"github.com/corekernel/corekernel/internal/name"
	"github.com/corekernel/corekernel/internal/term"
)

// Sprint renders t under an empty naming context.
func Sprint(t term.Term) string {
	return sprint(t, nil)
}

// names is a stack of binder names, innermost (most recently bound, index
// 0) last, mirroring how LocalVar indices count outward from the nearest
// enclosing binder.
func sprint(t term.Term, names []string) string {
	switch n := term.Underlying(t).(type) {
	case term.LocalVar:
		if n.Index < len(names) {
			return names[len(names)-1-n.Index]
		}
		return fmt.Sprintf("#%d", n.Index)

	case *term.Lambda:
		nm := binderName(n.Name, len(names))
		return fmt.Sprintf("λ(%s : %s). %s", nm, sprint(n.Type, names), sprint(n.Body, push(names, nm)))

	case *term.Pi:
		nm := binderName(n.Name, len(names))
		return fmt.Sprintf("Π(%s : %s). %s", nm, sprint(n.Type, names), sprint(n.Body, push(names, nm)))

	case *term.Let:
		parts := make([]string, len(n.Defs))
		cur := names
		for i, d := range n.Defs {
			nm := binderName(d.Name, len(cur))
			parts[i] = fmt.Sprintf("%s : %s = %s", nm, sprint(d.Type, cur), sprint(d.Eq, cur))
			cur = push(cur, nm)
		}
		return fmt.Sprintf("let %s in %s", strings.Join(parts, "; "), sprint(n.Body, cur))

	case *term.App:
		return fmt.Sprintf("(%s %s)", sprint(n.Func, names), sprint(n.Arg, names))

	case *term.Constant:
		return n.Name.String()

	case term.GlobalDef:
		return n.ID.String()

	case term.SortLit:
		return fmt.Sprintf("Sort %s", n.S)

	case term.NatLit:
		return fmt.Sprintf("%d", n.N)

	case term.StringLit:
		return fmt.Sprintf("%q", n.S)

	case *term.ArrayValue:
		parts := make([]string, len(n.Values))
		for i, v := range n.Values {
			parts[i] = sprint(v, names)
		}
		return fmt.Sprintf("[%s : %s]", strings.Join(parts, ", "), sprint(n.ElemType, names))

	case term.ExtCns:
		return fmt.Sprintf("?%s/%d", n.Name, n.VarIndex)

	case *term.CtorApp:
		return fmt.Sprintf("%s%s", n.ID, argList(n.Args, names))

	case *term.DataTypeApp:
		out := n.ID.String()
		if len(n.Params) > 0 {
			out += argList(n.Params, names)
		}
		if len(n.Indices) > 0 {
			out += argList(n.Indices, names)
		}
		return out

	case *term.RecursorApp:
		return fmt.Sprintf("rec[%s](motive=%s, scrutinee=%s)", n.DataID, sprint(n.Motive, names), sprint(n.Scrutinee, names))

	case term.UnitType:
		return "Unit"
	case term.UnitValue:
		return "()"

	case *term.PairType:
		return fmt.Sprintf("(%s × %s)", sprint(n.Left, names), sprint(n.Right, names))
	case *term.PairValue:
		return fmt.Sprintf("(%s, %s)", sprint(n.Left, names), sprint(n.Right, names))
	case *term.PairLeft:
		return fmt.Sprintf("%s.1", sprint(n.Pair, names))
	case *term.PairRight:
		return fmt.Sprintf("%s.2", sprint(n.Pair, names))

	case *term.FieldValue:
		return fmt.Sprintf("{%s = %s; %s}", n.Name, sprint(n.Value, names), sprint(n.Tail, names))
	case *term.FieldType:
		return fmt.Sprintf("{%s : %s; %s}", n.Name, sprint(n.Type, names), sprint(n.Tail, names))
	case term.EmptyRecordValue:
		return "{}"
	case term.EmptyRecordType:
		return "{}"
	case *term.RecordSelector:
		return fmt.Sprintf("%s.%s", sprint(n.Record, names), n.Field)

	default:
		return fmt.Sprintf("<%T>", n)
	}
}

func binderName(n name.Ident, depth int) string {
	if n.Local == "" || n.Local == "_" {
		return fmt.Sprintf("x%d", depth)
	}
	return n.Local
}

func push(names []string, nm string) []string {
	out := make([]string, len(names)+1)
	copy(out, names)
	out[len(names)] = nm
	return out
}

func argList(args []term.Term, names []string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = sprint(a, names)
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}
