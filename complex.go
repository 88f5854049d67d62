package blochsphere

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Epsilon is the magnitude below which a component is treated as zero.
const Epsilon = 1e-10

func Add(a, b complex128) complex128 { return a + b }

func Mul(a, b complex128) complex128 { return a * b }

// Scale multiplies c by a real factor.
func Scale(c complex128, f float64) complex128 {
	return complex(real(c)*f, imag(c)*f)
}

// Modulus returns |c|.
func Modulus(c complex128) float64 {
	return cmplx.Abs(c)
}

// ExpI returns e^{i·phi}, the unit phase factor.
func ExpI(phi float64) complex128 {
	return cmplx.Exp(complex(0, phi))
}

/*
FormatComplex renders a coefficient with three decimals.

Real or imaginary parts whose magnitude is below Epsilon are dropped, a
pure imaginary unit is rendered as a bare "i" or "-i", and a value with
both parts suppressed renders as "0.000".
*/
func FormatComplex(c complex128) string {
	re, im := real(c), imag(c)
	hasRe := math.Abs(re) >= Epsilon
	hasIm := math.Abs(im) >= Epsilon

	switch {
	case !hasRe && !hasIm:
		return "0.000"
	case !hasIm:
		return fmt.Sprintf("%.3f", re)
	case !hasRe:
		return formatImaginary(im)
	}

	if im < 0 {
		return fmt.Sprintf("%.3f-%s", re, formatImaginary(-im))
	}

	return fmt.Sprintf("%.3f+%s", re, formatImaginary(im))
}

func formatImaginary(im float64) string {
	switch {
	case math.Abs(im-1) < Epsilon:
		return "i"
	case math.Abs(im+1) < Epsilon:
		return "-i"
	}

	return fmt.Sprintf("%.3fi", im)
}
