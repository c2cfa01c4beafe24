package shape

import (
	"math"
	"strconv"

	"github.com/ava12/procin"
)

// OpNeg is the Expr.Op value for unary minus.
const OpNeg = '~'

// Expr is an integer expression used as array length.
// Leaves have zero Op and contain either Name or Num.
type Expr struct {
	Op          byte
	Num         int64
	Name        string
	Left, Right *Expr

	Line, Col int
}

// Lookup returns an integer value bound to name.
type Lookup func(name string) (int64, bool)

// Eval computes expression value.
// Returns *procin.Error with ErrUnknownName or ErrEval code on error.
func (x *Expr) Eval(lookup Lookup) (int64, error) {
	switch x.Op {
	case 0:
		if x.Name == "" {
			return x.Num, nil
		}
		v, found := lookup(x.Name)
		if !found {
			return 0, unknownNameError(x)
		}
		return v, nil

	case OpNeg:
		v, e := x.Left.Eval(lookup)
		if e == nil && v == math.MinInt64 {
			return 0, x.overflow()
		}
		return -v, e
	}

	l, e := x.Left.Eval(lookup)
	if e != nil {
		return 0, e
	}
	r, e := x.Right.Eval(lookup)
	if e != nil {
		return 0, e
	}

	switch x.Op {
	case '+':
		v := l + r
		if (v > l) != (r > 0) {
			return 0, x.overflow()
		}
		return v, nil
	case '-':
		v := l - r
		if (v < l) != (r > 0) {
			return 0, x.overflow()
		}
		return v, nil
	case '*':
		v := l * r
		if l != 0 && (v/l != r || (l == -1 && r == math.MinInt64)) {
			return 0, x.overflow()
		}
		return v, nil
	}

	if r == 0 {
		return 0, procin.NewError(ErrEval, "division by zero in length expression", SourceName, x.Line, x.Col)
	}
	if r == -1 && l == math.MinInt64 {
		return 0, x.overflow()
	}
	if x.Op == '/' {
		return l / r, nil
	}
	return l % r, nil
}

func (x *Expr) overflow() *procin.Error {
	return procin.NewError(ErrEval, "integer overflow in length expression", SourceName, x.Line, x.Col)
}

func (x *Expr) walk(f func(*Expr) error) error {
	if x == nil {
		return nil
	}
	if e := f(x); e != nil {
		return e
	}
	if e := x.Left.walk(f); e != nil {
		return e
	}
	return x.Right.walk(f)
}

// Names returns names referred by the expression.
func (x *Expr) Names() []string {
	var res []string
	x.walk(func(y *Expr) error {
		if y.Op == 0 && y.Name != "" {
			res = append(res, y.Name)
		}
		return nil
	})
	return res
}

func (x *Expr) String() string {
	switch x.Op {
	case 0:
		if x.Name != "" {
			return x.Name
		}
		return strconv.FormatInt(x.Num, 10)
	case OpNeg:
		return "-" + x.Left.operand(x.Op)
	default:
		return x.Left.operand(x.Op) + " " + string(x.Op) + " " + x.Right.operand(x.Op)
	}
}

func (x *Expr) operand(parentOp byte) string {
	if x.Op == 0 || precedence(x.Op) > precedence(parentOp) {
		return x.String()
	}
	return "(" + x.String() + ")"
}

func precedence(op byte) int {
	switch op {
	case '+', '-':
		return 1
	case '*', '/', '%':
		return 2
	case OpNeg:
		return 3
	default:
		return 4
	}
}
