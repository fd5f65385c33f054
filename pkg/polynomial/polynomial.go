// Package polynomial implements the degree-(t-1) polynomials used by
// Shamir's Secret Sharing: sampling a random polynomial with a fixed
// constant term, evaluating it at a point, and recovering either its
// constant term or its value at an arbitrary point from t samples via
// Lagrange interpolation.
//
// Every operation here is width-agnostic: it works over whichever
// GF(2^n) the caller's coefficients and points belong to, mirroring how
// the teacher's shamir.go kept its polynomial type a thin wrapper
// around plain field arithmetic rather than a standalone abstraction.
package polynomial

import (
	"fmt"

	"github.com/Beastly713/gf2share/pkg/gf"
)

// Polynomial is f(x) = coefficients[0] + coefficients[1]*x + ... +
// coefficients[t-1]*x^(t-1), all coefficients belonging to the same
// GF(2^n).
type Polynomial struct {
	BitWidth     int
	Coefficients []gf.Element
}

// Sample builds a random degree-(threshold-1) polynomial whose constant
// term is secret. The remaining threshold-1 coefficients are drawn from
// oracle; threshold must be at least 1.
func Sample(secret gf.Element, threshold int, oracle gf.Oracle) (Polynomial, error) {
	if threshold < 1 {
		return Polynomial{}, fmt.Errorf("polynomial: threshold must be >= 1, got %d", threshold)
	}
	coeffs := make([]gf.Element, threshold)
	coeffs[0] = secret
	for i := 1; i < threshold; i++ {
		c, err := gf.Random(secret.BitWidth(), oracle)
		if err != nil {
			return Polynomial{}, err
		}
		coeffs[i] = c
	}
	return Polynomial{BitWidth: secret.BitWidth(), Coefficients: coeffs}, nil
}

// Evaluate computes f(x) via Horner's method.
func (p Polynomial) Evaluate(x gf.Element) (gf.Element, error) {
	if len(p.Coefficients) == 0 {
		return gf.Zero(p.BitWidth)
	}
	result := p.Coefficients[len(p.Coefficients)-1]
	for i := len(p.Coefficients) - 2; i >= 0; i-- {
		var err error
		result, err = result.Mul(x)
		if err != nil {
			return gf.Element{}, err
		}
		result, err = result.Add(p.Coefficients[i])
		if err != nil {
			return gf.Element{}, err
		}
	}
	return result, nil
}

// Destroy replaces every coefficient, including the secret constant
// term, with the zero element. The previous coefficients' word storage
// is dropped as it is; it is not overwritten.
func (p *Polynomial) Destroy() {
	zero, err := gf.Zero(p.BitWidth)
	if err != nil {
		return
	}
	for i := range p.Coefficients {
		p.Coefficients[i] = zero
	}
}

// Point is an (X, Y) pair on some polynomial, gathered from a share.
type Point struct {
	X gf.Element
	Y gf.Element
}

// InterpolateAt reconstructs the value of the unique degree-(len(points)-1)
// polynomial through points, evaluated at target, via Lagrange
// interpolation:
//
//	f(target) = sum_i y_i * prod_{j != i} (target - x_j) / (x_i - x_j)
//
// InterpolateAtZero is the common case target == 0, used to recover the
// shared secret; InterpolateAt generalizes it to reconstruct a share at
// an arbitrary point, which lets a coalition of shares mint an
// additional share without learning the secret along the way.
func InterpolateAt(points []Point, target gf.Element) (gf.Element, error) {
	if len(points) == 0 {
		return gf.Element{}, fmt.Errorf("polynomial: need at least one point to interpolate")
	}
	n := points[0].X.BitWidth()

	result, err := gf.Zero(n)
	if err != nil {
		return gf.Element{}, err
	}

	for i, pi := range points {
		numerator, err := gf.One(n)
		if err != nil {
			return gf.Element{}, err
		}
		denominator, err := gf.One(n)
		if err != nil {
			return gf.Element{}, err
		}

		for j, pj := range points {
			if i == j {
				continue
			}
			diffTarget, err := target.Add(pj.X)
			if err != nil {
				return gf.Element{}, err
			}
			numerator, err = numerator.Mul(diffTarget)
			if err != nil {
				return gf.Element{}, err
			}

			diffXs, err := pi.X.Add(pj.X)
			if err != nil {
				return gf.Element{}, err
			}
			denominator, err = denominator.Mul(diffXs)
			if err != nil {
				return gf.Element{}, err
			}
		}

		term, err := numerator.Div(denominator)
		if err != nil {
			return gf.Element{}, err
		}
		term, err = term.Mul(pi.Y)
		if err != nil {
			return gf.Element{}, err
		}
		result, err = result.Add(term)
		if err != nil {
			return gf.Element{}, err
		}
	}

	return result, nil
}

// InterpolateAtZero recovers the constant term of the interpolating
// polynomial through points — the shared secret.
func InterpolateAtZero(points []Point) (gf.Element, error) {
	zero, err := gf.Zero(points[0].X.BitWidth())
	if err != nil {
		return gf.Element{}, err
	}
	return InterpolateAt(points, zero)
}
