package styles

import "strconv"

// Decimal is a unitless number such as an opacity.
type Decimal float64

func (d *Decimal) ToCSSString(t Target) string { return num(float64(*d)) }

// Integer is a unitless integer such as a z-index.
type Integer int64

func (i *Integer) ToCSSString(t Target) string { return strconv.FormatInt(int64(*i), 10) }

// Keyword is a literal CSS keyword.
type Keyword string

func (k *Keyword) ToCSSString(t Target) string { return string(*k) }

// DecimalOf and the helpers below return pointers for optional slots.
func DecimalOf(f float64) *Decimal {
	d := Decimal(f)
	return &d
}

func IntegerOf(n int64) *Integer {
	i := Integer(n)
	return &i
}

func KeywordOf(s string) *Keyword {
	k := Keyword(s)
	return &k
}
