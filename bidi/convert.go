package bidi

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var ErrNilConverter = errors.New("converter must not be nil")

// Converter turns values into text and back for BindString.
type Converter[T any] interface {
	ToString(v T) string
	FromString(s string) (T, error)
}

type Numeric interface {
	constraints.Integer | constraints.Float
}

func parseNumber[N Numeric](s string) (N, error) {
	t := reflect.TypeFor[N]()
	s = strings.TrimSpace(s)
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(s, 10, t.Bits())
		return N(v), err
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		v, err := strconv.ParseUint(s, 10, t.Bits())
		return N(v), err
	default:
		v, err := strconv.ParseFloat(s, t.Bits())
		return N(v), err
	}
}

func formatNumber[N Numeric](v N) string {
	t := reflect.TypeFor[N]()
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(int64(v), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(uint64(v), 10)
	default:
		return strconv.FormatFloat(float64(v), 'g', -1, t.Bits())
	}
}

// IntConverter formats integers in base 10 and rejects text that does not fit.
type IntConverter[N constraints.Integer] struct{}

func (IntConverter[N]) ToString(v N) string { return formatNumber(v) }
func (IntConverter[N]) FromString(s string) (N, error) { return parseNumber[N](s) }

// FloatConverter uses the shortest representation that parses back exactly.
type FloatConverter[N constraints.Float] struct{}

func (FloatConverter[N]) ToString(v N) string { return formatNumber(v) }
func (FloatConverter[N]) FromString(s string) (N, error) { return parseNumber[N](s) }

type BoolConverter struct{}

func (BoolConverter) ToString(v bool) string { return strconv.FormatBool(v) }

func (BoolConverter) FromString(s string) (bool, error) {
	return strconv.ParseBool(strings.TrimSpace(s))
}

// FormatConverter formats with fmt.Sprintf and parses with fmt.Sscanf using
// the same layout.
type FormatConverter[T any] struct {
	Layout string
}

func (c FormatConverter[T]) ToString(v T) string {
	return fmt.Sprintf(c.Layout, v)
}

func (c FormatConverter[T]) FromString(s string) (T, error) {
	var v T
	if _, err := fmt.Sscanf(s, c.Layout, &v); err != nil {
		var zero T
		return zero, fmt.Errorf("parse %q with layout %q: %w", s, c.Layout, err)
	}
	return v, nil
}

// FuncConverter adapts a pair of functions.
type FuncConverter[T any] struct {
	To   func(T) string
	From func(string) (T, error)
}

func (c FuncConverter[T]) ToString(v T) string { return c.To(v) }
func (c FuncConverter[T]) FromString(s string) (T, error) { return c.From(s) }

// NumberConverter formats numbers for a locale, with grouping, and parses the
// same notation back. Only locales writing Latin digits are supported.
type NumberConverter[N Numeric] struct {
	printer *message.Printer
	opts    []number.Option
	group   string
	decimal string
}

func NewNumberConverter[N Numeric](tag language.Tag, opts ...number.Option) *NumberConverter[N] {
	c := &NumberConverter[N]{printer: message.NewPrinter(tag), opts: opts}
	// 1234.5 renders as 1<group>234<decimal>5, or without the group.
	sample := []rune(c.printer.Sprint(number.Decimal(1234.5)))
	switch len(sample) {
	case 7:
		c.group, c.decimal = string(sample[1]), string(sample[5])
	case 6:
		c.decimal = string(sample[4])
	default:
		c.decimal = "."
	}
	return c
}

func (c *NumberConverter[N]) ToString(v N) string {
	return c.printer.Sprint(number.Decimal(v, c.opts...))
}

func (c *NumberConverter[N]) FromString(s string) (N, error) {
	if c.group != "" {
		s = strings.ReplaceAll(s, c.group, "")
	}
	if c.decimal != "." {
		s = strings.ReplaceAll(s, c.decimal, ".")
	}
	return parseNumber[N](s)
}
