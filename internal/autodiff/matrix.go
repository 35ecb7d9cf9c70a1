package autodiff

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// VarMatrix is a dense row-major matrix of Vars.
//
// It implements gonum's mat.Matrix over the forward values, so any gonum
// routine that only reads a matrix can consume it directly.
type VarMatrix struct {
	rows, cols int
	vars       []Var
}

var _ mat.Matrix = (*VarMatrix)(nil)

// NewVarMatrix creates a rows×cols matrix backed by vars. If vars is nil a
// matrix of constant zeros is allocated. Otherwise len(vars) must be rows*cols
// and the slice is used directly.
func NewVarMatrix(rows, cols int, vars []Var) *VarMatrix {
	if rows <= 0 || cols <= 0 {
		panic(mat.ErrZeroLength)
	}
	if vars == nil {
		vars = make([]Var, rows*cols)
	} else if len(vars) != rows*cols {
		panic(mat.ErrShape)
	}
	return &VarMatrix{rows: rows, cols: cols, vars: vars}
}

// NewRowVector returns a 1×n matrix over vs.
func NewRowVector(vs []Var) *VarMatrix { return NewVarMatrix(1, len(vs), vs) }

// NewColVector returns an n×1 matrix over vs.
func NewColVector(vs []Var) *VarMatrix { return NewVarMatrix(len(vs), 1, vs) }

// Dims returns the number of rows and columns.
func (m *VarMatrix) Dims() (r, c int) { return m.rows, m.cols }

// At returns the value of element (i, j).
func (m *VarMatrix) At(i, j int) float64 { return m.VarAt(i, j).val }

// T returns the implicit transpose of m.
func (m *VarMatrix) T() mat.Matrix { return mat.Transpose{Matrix: m} }

// VarAt returns element (i, j).
func (m *VarMatrix) VarAt(i, j int) Var {
	m.checkIndex(i, j)
	return m.vars[i*m.cols+j]
}

// SetVar sets element (i, j).
func (m *VarMatrix) SetVar(i, j int, v Var) {
	m.checkIndex(i, j)
	m.vars[i*m.cols+j] = v
}

// Vars returns the backing slice in row-major order.
func (m *VarMatrix) Vars() []Var { return m.vars }

func (m *VarMatrix) checkIndex(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("autodiff: index (%d, %d) out of range for %dx%d matrix", i, j, m.rows, m.cols))
	}
}
