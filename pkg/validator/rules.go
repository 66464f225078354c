package validator

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

var (
	// something@something.tld with no whitespace
	emailRegex  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsRegex = regexp.MustCompile(`^[0-9]+$`)
)

// Required fails on empty or whitespace-only values.
func Required(field, value string) Rule {
	return newRule(field, "required", "field is required", func() bool {
		return strings.TrimSpace(value) != ""
	})
}

// MaxLen counts characters, not bytes.
func MaxLen(field, value string, max int) Rule {
	return newRule(field, "max_length", fmt.Sprintf("must be at most %d characters long", max), func() bool {
		return utf8.RuneCountInString(value) <= max
	}, "max", max)
}

// ValidEmail fails on empty values; wrap with When for optional fields.
func ValidEmail(field, value string) Rule {
	return newRule(field, "email", "must be a valid email address", func() bool {
		return emailRegex.MatchString(value)
	})
}

// Digits requires exactly n ASCII digits.
func Digits(field, value string, n int) Rule {
	return newRule(field, "digits", fmt.Sprintf("must be exactly %d digits", n), func() bool {
		return len(value) == n && digitsRegex.MatchString(value)
	}, "digits", n)
}

// SingleLine rejects CR and LF so the value is safe in an email header.
func SingleLine(field, value string) Rule {
	return newRule(field, "single_line", "must not contain line breaks", func() bool {
		return !strings.ContainsAny(value, "\r\n")
	})
}

// ValidNumber accepts finite decimals such as "1500" or " 1499.50 ".
func ValidNumber(field, value string) Rule {
	return newRule(field, "number", "must be a number", func() bool {
		_, ok := parseFinite(value)
		return ok
	})
}

// ValidInteger accepts "4" and "4.0" but not "4.5".
func ValidInteger(field, value string) Rule {
	return newRule(field, "integer", "must be a whole number", func() bool {
		f, ok := parseFinite(value)
		return ok && f == math.Trunc(f) && math.Abs(f) <= math.MaxInt32
	})
}

func MinNum[T Numeric](field string, value, min T) Rule {
	return newRule(field, "min", fmt.Sprintf("must be at least %v", min), func() bool {
		return value >= min
	}, "min", min)
}

func MaxNum[T Numeric](field string, value, max T) Rule {
	return newRule(field, "max", fmt.Sprintf("must be at most %v", max), func() bool {
		return value <= max
	}, "max", max)
}

func Positive[T Numeric](field string, value T) Rule {
	return newRule(field, "positive", "must be greater than zero", func() bool {
		return value > 0
	})
}

// PositiveAmount is Positive with money wording.
func PositiveAmount[T Numeric](field string, value T) Rule {
	return Positive(field, value).WithMessage("amount must be positive")
}

func NonNegativeAmount[T Numeric](field string, value T) Rule {
	return newRule(field, "non_negative_amount", "amount cannot be negative", func() bool {
		return value >= 0
	})
}

func parseFinite(value string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
