package currency

import (
	"math"
	"strconv"
	"strings"

	"shopno-backend/internal/core/domain"
)

// Symbol is the Bangladeshi taka sign
const Symbol = "৳"

var bengaliDigits = map[rune]rune{
	'0': '০', '1': '১', '2': '২', '3': '৩', '4': '৪',
	'5': '৫', '6': '৬', '7': '৭', '8': '৮', '9': '৯',
}

// Format renders an amount as a taka string with Bengali numerals,
// e.g. Format(350000) == "৳৩,৫০,০০০". Fractions are shown with two
// decimal places only when the amount is not a whole number.
func Format(amount domain.Money) string {
	v := amount.Float64()

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	intPart := int64(v)
	frac := v - float64(intPart)

	s := groupIndian(strconv.FormatInt(intPart, 10))
	if frac > 1e-9 {
		cents := int(math.Round(frac * 100))
		if cents >= 100 {
			// rounding carried over into the integer part
			intPart++
			cents -= 100
			s = groupIndian(strconv.FormatInt(intPart, 10))
		}
		if cents > 0 {
			s += "." + pad2(cents)
		}
	}

	return sign + Symbol + toBengali(s)
}

// FormatPlain renders an amount with western digits, e.g. "৳3,50,000".
func FormatPlain(amount domain.Money) string {
	v := amount.Float64()
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	intPart := int64(math.Round(v))
	return sign + Symbol + groupIndian(strconv.FormatInt(intPart, 10))
}

// groupIndian inserts separators in the Indian numbering style:
// the last three digits form one group, every two digits before that
// form another (12,34,567).
func groupIndian(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var b strings.Builder
	head := digits[:n-3]
	tail := digits[n-3:]

	// leading group of one or two digits
	lead := len(head) % 2
	if lead == 1 {
		b.WriteString(head[:1])
		head = head[1:]
		if len(head) > 0 {
			b.WriteByte(',')
		}
	}
	for i := 0; i < len(head); i += 2 {
		b.WriteString(head[i : i+2])
		b.WriteByte(',')
	}
	b.WriteString(tail)
	return b.String()
}

func toBengali(s string) string {
	var b strings.Builder
	for _, r := range s {
		if d, ok := bengaliDigits[r]; ok {
			b.WriteRune(d)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
