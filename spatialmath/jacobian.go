package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// NewJacobian returns a zeroed TangentSize x TangentSize matrix.
func NewJacobian() *mat.Dense {
	return mat.NewDense(TangentSize, TangentSize, nil)
}

// BlockJacobian is a TangentSize x TangentSize Jacobian of the block lower triangular form
// [[TL, 0], [BL, BR]]. Every Jacobian of the SE3 primitives has this shape under all
// conventions since rotation never depends on translation. It is a plain value, so chaining
// Jacobians never touches the heap.
type BlockJacobian struct {
	TL, BL, BR mgl64.Mat3
}

// IdentityJacobian returns the 6x6 identity.
func IdentityJacobian() BlockJacobian {
	return BlockJacobian{TL: mgl64.Ident3(), BR: mgl64.Ident3()}
}

// Mul returns the product j·other.
func (j BlockJacobian) Mul(other BlockJacobian) BlockJacobian {
	return BlockJacobian{
		TL: j.TL.Mul3(other.TL),
		BL: j.BL.Mul3(other.TL).Add(j.BR.Mul3(other.BL)),
		BR: j.BR.Mul3(other.BR),
	}
}

// Scale returns j with every entry multiplied by s.
func (j BlockJacobian) Scale(s float64) BlockJacobian {
	return BlockJacobian{TL: j.TL.Mul(s), BL: j.BL.Mul(s), BR: j.BR.Mul(s)}
}

// At returns the entry at row r, column c.
func (j BlockJacobian) At(r, c int) float64 {
	switch {
	case r < 3 && c < 3:
		return j.TL.At(r, c)
	case r < 3:
		return 0
	case c < 3:
		return j.BL.At(r-3, c)
	default:
		return j.BR.At(r-3, c-3)
	}
}

// Write copies j into dst. An empty dst is sized first; otherwise it must be
// TangentSize x TangentSize.
func (j BlockJacobian) Write(dst *mat.Dense) {
	if dst.IsEmpty() {
		dst.ReuseAs(TangentSize, TangentSize)
	}
	for r := 0; r < TangentSize; r++ {
		for c := 0; c < TangentSize; c++ {
			dst.Set(r, c, j.At(r, c))
		}
	}
}

// WriteRaw copies j into the first JacobianSize entries of buf in row-major order.
func (j BlockJacobian) WriteRaw(buf []float64) {
	_ = buf[JacobianSize-1]
	for r := 0; r < TangentSize; r++ {
		for c := 0; c < TangentSize; c++ {
			buf[r*TangentSize+c] = j.At(r, c)
		}
	}
}

// adjointJacobian returns Ad(p) = [[R, 0], [[t]×R, R]].
func adjointJacobian(p Pose) BlockJacobian {
	rot := rotationMatrix(p.orientation)
	return BlockJacobian{TL: rot, BL: skew(p.point).Mul3(rot), BR: rot}
}

// Adjoint writes the adjoint matrix of p into dst, so that p∘Exp(δ) = Exp(Ad(p)δ)∘p.
func Adjoint(p Pose, dst *mat.Dense) {
	adjointJacobian(p).Write(dst)
}

// se3Coefficients returns the weights of ad, ad², ad³ and ad⁴ in the closed form of the SE3
// left Jacobian Σ adⁿ/(n+1)!.
func se3Coefficients(theta float64) (c1, c2, c3, c4 float64) {
	theta2 := theta * theta
	if theta < seriesAngleSE3 {
		return 0.5 - theta2*theta2/720, 1.0/6 - theta2*theta2/5040, 1.0/24 - theta2/360, 1.0/120 - theta2/2520
	}
	sin, cos := math.Sincos(theta)
	theta3 := theta2 * theta
	theta4 := theta2 * theta2
	c1 = (4 - theta*sin - 4*cos) / (2 * theta2)
	c2 = (4*theta - 5*sin + theta*cos) / (2 * theta3)
	c3 = (2 - theta*sin - 2*cos) / (2 * theta4)
	c4 = (2*theta - 3*sin + theta*cos) / (2 * theta4 * theta)
	return c1, c2, c3, c4
}

// se3LeftJacobianCoupling returns the lower left block Q of the SE3 left Jacobian at (w, v).
// With W = [w]× and V = [v]× the n-th power of ad = [[W, 0], [V, W]] has lower left block
// Σ W^k V W^(n-1-k).
func se3LeftJacobianCoupling(w, v r3.Vector) mgl64.Mat3 {
	c1, c2, c3, c4 := se3Coefficients(w.Norm())
	wx := skew(w)
	vx := skew(v)
	wv := wx.Mul3(vx)
	vw := vx.Mul3(wx)
	ww := wx.Mul3(wx)
	wvw := wv.Mul3(wx)

	q := vx.Mul(c1)
	q = q.Add(wv.Add(vw).Mul(c2))
	q = q.Add(ww.Mul3(vx).Add(wvw).Add(vw.Mul3(wx)).Mul(c3))
	q = q.Add(ww.Mul3(wv).Add(ww.Mul3(vw)).Add(wx.Mul3(vw).Mul3(wx)).Add(vw.Mul3(ww)).Mul(c4))
	return q
}

// se3LeftJacobianInverse returns J_l(w, v)⁻¹ = [[A, 0], [-AQA, A]] with A = J_l(w)⁻¹ the SO3
// block. The right Jacobian inverse is obtained at (-w, -v).
func se3LeftJacobianInverse(w, v r3.Vector) BlockJacobian {
	a := leftJacobianInverseSO3(w)
	q := se3LeftJacobianCoupling(w, v)
	return BlockJacobian{TL: a, BL: a.Mul3(q).Mul3(a).Mul(-1), BR: a}
}
