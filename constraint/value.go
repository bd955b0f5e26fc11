// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package constraint

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sync"

	"github.com/DataDog/callcheck/message"
	"github.com/go-playground/validator/v10"
)

// Maximum can be applied to an int field or parameter and provides a (non-strict) maximum value
type Maximum int

// Minimum can be applied to an int field or parameter and provides a (non-strict) minimum value
type Minimum int

// MinLength provides an inclusive minimum length for a string, slice, array or map
type MinLength int

// MaxLength provides an inclusive maximum length for a string, slice, array or map
type MaxLength int

// Enum can be applied to any field or parameter and provides a restricted amount of possible values.
// Values within the constraint strictly need to fit the validated type. Usage is recommended for simple types.
type Enum []interface{}

// Required can be applied to any field or parameter, and asserts a zero value will return an error
type Required bool

// NotNil can be applied to any nilable field or parameter and asserts the value is non-nil;
// zero values of non-nilable kinds are accepted
type NotNil bool

// Rule evaluates a go-playground/validator tag expression, e.g. "omitempty,gte=1,lte=10".
// Failures are rendered through the english translator.
type Rule string

// Pattern asserts a string matches a regular expression compiled once at construction
type Pattern struct {
	expr string
	re   *regexp.Regexp
}

func (m Maximum) ApplyRule(fieldvalue reflect.Value) error {
	fieldvalue = reflect.Indirect(fieldvalue)
	fieldInt, ok := parseInt(fieldvalue)

	if !ok {
		return m.TypeCheckError(fieldvalue)
	}

	if int64(m) < fieldInt {
		return m.ValueCheckError()
	}

	return nil
}

func (m Maximum) ValueCheckError() error {
	return fmt.Errorf("%s: max value for field is %d (included)", ruleName(m), m)
}

func (m Maximum) TypeCheckError(fieldValue reflect.Value) error {
	return GenericTypeCheckError(m, fieldValue, "int or uint")
}

func (m Minimum) ApplyRule(fieldvalue reflect.Value) error {
	fieldvalue = reflect.Indirect(fieldvalue)
	fieldInt, ok := parseInt(fieldvalue)

	if !ok {
		return m.TypeCheckError(fieldvalue)
	}

	if int64(m) > fieldInt {
		return m.ValueCheckError()
	}

	return nil
}

func (m Minimum) ValueCheckError() error {
	return fmt.Errorf("%s: min value for field is %d (included)", ruleName(m), m)
}

func (m Minimum) TypeCheckError(fieldValue reflect.Value) error {
	return GenericTypeCheckError(m, fieldValue, "int or uint")
}

func (m MinLength) ApplyRule(fieldvalue reflect.Value) error {
	fieldvalue = reflect.Indirect(fieldvalue)
	length, ok := parseLen(fieldvalue)

	if !ok {
		return m.TypeCheckError(fieldvalue)
	}

	if length < int(m) {
		return m.ValueCheckError()
	}

	return nil
}

func (m MinLength) ValueCheckError() error {
	return fmt.Errorf("%s: min length for field is %d (included)", ruleName(m), m)
}

func (m MinLength) TypeCheckError(fieldValue reflect.Value) error {
	return GenericTypeCheckError(m, fieldValue, "string, slice, array or map")
}

func (m MaxLength) ApplyRule(fieldvalue reflect.Value) error {
	fieldvalue = reflect.Indirect(fieldvalue)
	length, ok := parseLen(fieldvalue)

	if !ok {
		return m.TypeCheckError(fieldvalue)
	}

	if length > int(m) {
		return m.ValueCheckError()
	}

	return nil
}

func (m MaxLength) ValueCheckError() error {
	return fmt.Errorf("%s: max length for field is %d (included)", ruleName(m), m)
}

func (m MaxLength) TypeCheckError(fieldValue reflect.Value) error {
	return GenericTypeCheckError(m, fieldValue, "string, slice, array or map")
}

func (e Enum) ApplyRule(fieldvalue reflect.Value) error {
	fieldvalue = reflect.Indirect(fieldvalue)

	if !fieldvalue.IsValid() {
		return e.ValueCheckError()
	}

	fieldInterface := fieldvalue.Interface()

	for _, allowedInterface := range e {
		if !reflect.ValueOf(allowedInterface).Type().ConvertibleTo(fieldvalue.Type()) {
			return e.TypeCheckError(fieldvalue)
		}

		allowedInterface = reflect.ValueOf(allowedInterface).Convert(fieldvalue.Type()).Interface()

		if fieldInterface == allowedInterface || reflect.ValueOf(fieldInterface).IsZero() {
			return nil
		}
	}

	return e.ValueCheckError()
}

func (e Enum) ValueCheckError() error {
	return fmt.Errorf("%s: field needs to be one of %v", ruleName(e), []interface{}(e))
}

func (e Enum) TypeCheckError(fieldValue reflect.Value) error {
	return fmt.Errorf("%v: Type Error - field needs to be one of %v, currently \"%v\"", ruleName(e), []interface{}(e), fieldValue)
}

func (r Required) ApplyRule(fieldvalue reflect.Value) error {
	if !bool(r) {
		return nil
	}

	// a non-nil pointer counts as provided even when it points at a zero value
	if fieldvalue.Kind() == reflect.Ptr && !fieldvalue.IsNil() {
		return nil
	}

	fieldvalue = reflect.Indirect(fieldvalue)
	if !fieldvalue.IsValid() || fieldvalue.IsZero() {
		return r.ValueCheckError()
	}

	return nil
}

func (r Required) ValueCheckError() error {
	return fmt.Errorf("%s: field is required: currently missing", ruleName(r))
}

func (r Required) TypeCheckError(fieldValue reflect.Value) error {
	return nil
}

func (n NotNil) ApplyRule(fieldvalue reflect.Value) error {
	if !bool(n) {
		return nil
	}

	if !fieldvalue.IsValid() {
		return n.ValueCheckError()
	}

	switch fieldvalue.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		if fieldvalue.IsNil() {
			return n.ValueCheckError()
		}
	}

	return nil
}

func (n NotNil) ValueCheckError() error {
	return fmt.Errorf("%s: field must not be nil", ruleName(n))
}

func (n NotNil) TypeCheckError(fieldValue reflect.Value) error {
	return nil
}

// NewPattern compiles the given expression into a Pattern constraint
func NewPattern(expr string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("%s: invalid expression %q: %w", rulePrefix+"Pattern", expr, err)
	}

	return Pattern{expr: expr, re: re}, nil
}

// MustPattern is NewPattern, panicking on an invalid expression
func MustPattern(expr string) Pattern {
	p, err := NewPattern(expr)
	if err != nil {
		panic(err)
	}

	return p
}

// Expr returns the source expression the pattern was compiled from
func (p Pattern) Expr() string {
	return p.expr
}

func (p Pattern) ApplyRule(fieldvalue reflect.Value) error {
	fieldvalue = reflect.Indirect(fieldvalue)

	if !fieldvalue.IsValid() || fieldvalue.Kind() != reflect.String {
		return p.TypeCheckError(fieldvalue)
	}

	if p.re == nil || !p.re.MatchString(fieldvalue.String()) {
		return p.ValueCheckError()
	}

	return nil
}

func (p Pattern) ValueCheckError() error {
	return fmt.Errorf("%s: field needs to match %q", ruleName(p), p.expr)
}

func (p Pattern) TypeCheckError(fieldValue reflect.Value) error {
	return GenericTypeCheckError(p, fieldValue, "string")
}

var (
	ruleValidateOnce sync.Once
	ruleValidate     *validator.Validate
)

// ruleValidator returns the shared validator instance rule expressions are evaluated with
func ruleValidator() *validator.Validate {
	ruleValidateOnce.Do(func() {
		ruleValidate = validator.New()
		_ = message.RegisterRuleTranslations(ruleValidate)
	})

	return ruleValidate
}

func (r Rule) ApplyRule(fieldvalue reflect.Value) error {
	fieldvalue = reflect.Indirect(fieldvalue)

	var arg interface{}
	if fieldvalue.IsValid() {
		arg = fieldvalue.Interface()
	}

	err := evalRule(arg, string(r))
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return fmt.Errorf("%s: %s", ruleName(r), message.Translate(err))
	}

	return fmt.Errorf("%s: invalid rule expression %q: %w", ruleName(r), string(r), err)
}

// evalRule guards against the validator panicking on a malformed expression
func evalRule(arg interface{}, tag string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%v", rec)
		}
	}()

	return ruleValidator().Var(arg, tag)
}

func (r Rule) ValueCheckError() error {
	return fmt.Errorf("%s: field does not satisfy rule %q", ruleName(r), string(r))
}

func (r Rule) TypeCheckError(fieldValue reflect.Value) error {
	return nil
}
