// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package lazy

import (
	"cmp"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// A Decimal is an exact arbitrary-precision decimal number that remembers
// the way it was written: the number of digits, the number of fraction
// digits, and the exponent, if any. Its String method reproduces the literal
// it was parsed from.
//
// The value of a Decimal is coef × 10^(exp - frac), negated if neg is set.
type Decimal struct {
	neg     bool
	coef    big.Int // magnitude of all written digits
	digits  int     // number of digits written, integer and fraction
	frac    int     // number of fraction digits written
	exp     big.Int // explicit exponent
	expText string  // exponent as written, with its marker; "" if none
}

// MaxRatExponent is the largest exponent magnitude for which Rat will
// construct an exact value.
const MaxRatExponent = 100000

var (
	errDecimal = errors.New("invalid decimal literal")

	// ErrExponentRange is reported by Rat for a Decimal whose exponent
	// magnitude exceeds MaxRatExponent.
	ErrExponentRange = errors.New("lazy: exponent out of range")
)

// ParseDecimal parses s as a JSON number literal.
func ParseDecimal(s string) (*Decimal, error) {
	d := new(Decimal)
	if err := d.parse(s); err != nil {
		return nil, fmt.Errorf("lazy: parse %q: %w", s, err)
	}
	return d, nil
}

func (d *Decimal) parse(s string) error {
	rest := s
	if strings.HasPrefix(rest, "-") {
		d.neg = true
		rest = rest[1:]
	}
	mant := rest
	if i := strings.IndexAny(rest, "eE"); i >= 0 {
		mant, d.expText = rest[:i], rest[i:]
	}
	whole, frac, hasDot := strings.Cut(mant, ".")
	if !isDigits(whole) || (hasDot && !isDigits(frac)) {
		return errDecimal
	} else if len(whole) > 1 && whole[0] == '0' {
		return errDecimal
	}
	if d.expText != "" {
		mag, neg := d.expText[1:], false
		if mag != "" && (mag[0] == '+' || mag[0] == '-') {
			mag, neg = mag[1:], mag[0] == '-'
		}
		if !isDigits(mag) {
			return errDecimal
		}
		d.exp.SetString(mag, 10)
		if neg {
			d.exp.Neg(&d.exp)
		}
	}
	digits := whole + frac
	if _, ok := d.coef.SetString(digits, 10); !ok {
		return errDecimal
	}
	d.digits = len(digits)
	d.frac = len(frac)
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String renders d in the form it was written.
func (d *Decimal) String() string {
	var sb strings.Builder
	if d.neg {
		sb.WriteByte('-')
	}
	text := d.coef.Text(10)
	if pad := d.digits - len(text); pad > 0 {
		text = strings.Repeat("0", pad) + text
	}
	if d.frac > 0 {
		cut := len(text) - d.frac
		sb.WriteString(text[:cut])
		sb.WriteByte('.')
		sb.WriteString(text[cut:])
	} else {
		sb.WriteString(text)
	}
	sb.WriteString(d.expText)
	return sb.String()
}

// Sign reports -1, 0, or 1 according to the sign of d.
func (d *Decimal) Sign() int {
	if d.coef.Sign() == 0 {
		return 0
	} else if d.neg {
		return -1
	}
	return 1
}

// Coefficient returns the signed integer coefficient of d, so that the value
// of d is Coefficient() × 10^Exponent().
func (d *Decimal) Coefficient() *big.Int {
	c := new(big.Int).Set(&d.coef)
	if d.neg {
		c.Neg(c)
	}
	return c
}

// Exponent returns the power of ten by which the coefficient of d is scaled.
func (d *Decimal) Exponent() *big.Int {
	return new(big.Int).Sub(&d.exp, big.NewInt(int64(d.frac)))
}

// Rat returns the exact value of d as a rational number. It reports
// ErrExponentRange if the magnitude of the exponent of d exceeds
// MaxRatExponent.
func (d *Decimal) Rat() (*big.Rat, error) {
	e := d.Exponent()
	if new(big.Int).Abs(e).Cmp(big.NewInt(MaxRatExponent)) > 0 {
		return nil, ErrExponentRange
	}
	r := new(big.Rat).SetInt(d.Coefficient())
	if e.Sign() == 0 {
		return r, nil
	}
	scale := new(big.Int).Exp(big.NewInt(10), new(big.Int).Abs(e), nil)
	if e.Sign() > 0 {
		return r.Mul(r, new(big.Rat).SetInt(scale)), nil
	}
	return r.Quo(r, new(big.Rat).SetInt(scale)), nil
}

// Cmp compares d and e, reporting -1 if d < e, 0 if d == e, and 1 if d > e.
// The comparison is exact for any exponent.
func (d *Decimal) Cmp(e *Decimal) int {
	ds, es := d.Sign(), e.Sign()
	if ds != es {
		return cmp.Compare(ds, es)
	} else if ds == 0 {
		return 0
	}
	return ds * d.cmpAbs(e)
}

// cmpAbs compares the magnitudes of d and e, both nonzero.
func (d *Decimal) cmpAbs(e *Decimal) int {
	dc, ec := d.coef.Text(10), e.coef.Text(10)

	// Compare the positions of the leading digits first.
	da := new(big.Int).Add(d.Exponent(), big.NewInt(int64(len(dc))))
	ea := new(big.Int).Add(e.Exponent(), big.NewInt(int64(len(ec))))
	if c := da.Cmp(ea); c != 0 {
		return c
	}
	if n := len(ec) - len(dc); n > 0 {
		dc += strings.Repeat("0", n)
	} else if n < 0 {
		ec += strings.Repeat("0", -n)
	}
	return strings.Compare(dc, ec)
}

// Float64 returns the float64 nearest to d.
func (d *Decimal) Float64() float64 {
	f, _ := strconv.ParseFloat(d.String(), 64)
	return f
}

// MarshalJSON renders d as a JSON number in the form it was written.
func (d *Decimal) MarshalJSON() ([]byte, error) { return []byte(d.String()), nil }

// MarshalText implements encoding.TextMarshaler.
func (d *Decimal) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Decimal) UnmarshalText(text []byte) error {
	var nd Decimal
	if err := nd.parse(string(text)); err != nil {
		return fmt.Errorf("lazy: parse %q: %w", text, err)
	}
	*d = nd
	return nil
}
