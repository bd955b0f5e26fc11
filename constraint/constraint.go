// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

// Package constraint holds the rule types a declaration can attach to a
// parameter, a return value or a whole object, and the named factories the
// mapping loader builds them from.
package constraint

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

var rulePrefix = "callcheck:constraint:"

// Constraint is a single validation rule. ApplyRule returns nil when the given
// value satisfies the rule, ValueCheckError when it does not, and
// TypeCheckError when the rule can not apply to the value's type at all.
// Constraints are immutable after construction and safe for concurrent use.
type Constraint interface {
	ApplyRule(fieldvalue reflect.Value) error
	ValueCheckError() error
	TypeCheckError(fieldValue reflect.Value) error
}

// Name returns the complete rule name of a constraint, e.g. "callcheck:constraint:Minimum"
func Name(c Constraint) string {
	return ruleName(c)
}

// ruleName takes a constraint object and returns its complete name
func ruleName(i interface{}) string {
	t := reflect.TypeOf(i)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return fmt.Sprintf("%s%s", rulePrefix, t.Name())
}

// GenericTypeCheckError returns a generic error for a constraint applied to a wrong type
func GenericTypeCheckError(i interface{}, fieldValue reflect.Value, expectedTypes string) error {
	return fmt.Errorf("%s: constraint applied to wrong type: currently %s, can only be %s", ruleName(i), kindName(fieldValue), expectedTypes)
}

func kindName(value reflect.Value) string {
	if !value.IsValid() {
		return "nil"
	}

	return value.Kind().String()
}

// structValueToMap takes a struct value and turns it into a map, allowing more flexible field and value parsing
func structValueToMap(value reflect.Value) (map[string]interface{}, bool) {
	m := make(map[string]interface{})

	if value.Kind() != reflect.Struct {
		return nil, false
	}

	relType := value.Type()

	for i := 0; i < relType.NumField(); i++ {
		if !value.Field(i).IsValid() || value.Field(i).IsZero() {
			m[relType.Field(i).Name] = nil
		} else {
			m[relType.Field(i).Name] = value.Field(i).Interface()
		}
	}

	return m, (len(m) > 0)
}

// parseInt reads any integer kind into an int64 so bound rules can compare them uniformly
func parseInt(value reflect.Value) (int64, bool) {
	switch value.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := value.Uint()
		if u > math.MaxInt64 {
			return math.MaxInt64, true
		}

		return int64(u), true
	default:
		return 0, false
	}
}

// parseLen returns the length of a string, slice, array or map value
func parseLen(value reflect.Value) (int, bool) {
	switch value.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return value.Len(), true
	default:
		return 0, false
	}
}

// checkValueExistsOrIsValid checks if a given field item is set in a struct (converted to a map by structValueToMap).
// An item can either be "FieldName", matched when the field is non-nil, or "FieldName=value", matched when the field
// holds the given value. It returns an error when the item names a field the struct does not have.
func checkValueExistsOrIsValid(fieldItem string, structMap map[string]interface{}, ruleName string) (bool, error) {
	fieldName, fieldValue, isValueField := strings.Cut(fieldItem, "=")
	val, fieldExists := structMap[fieldName]

	if !fieldExists {
		return false, fmt.Errorf("%v: field name %v not found in struct for constraint %v", ruleName, fieldName, fieldItem)
	}

	// no given value to respect => check if item is non-nil
	if !isValueField {
		return val != nil, nil
	}

	// a value was required => check if item has the described value

	// if the field is found in the struct with a nil value, check if the constraint expected a nil value
	if val == nil {
		return fieldValue == "", nil
	}

	v := reflect.Indirect(reflect.ValueOf(val))
	vType := v.Type()
	stringType := reflect.TypeOf(fieldValue)

	// this constraint uses string comparison so the underlying type has to be convertible to string
	convertibleToString := vType.ConvertibleTo(stringType)
	if !convertibleToString {
		return false, fmt.Errorf("%v: wrong type for value field %v; only int and string are allowed", ruleName, fieldName)
	}

	var vStr string

	switch vType.Kind() {
	case reflect.Int:
		vInt := v.Convert(vType).Interface().(int)
		vStr = strconv.Itoa(vInt)
	case reflect.String:
		vStr = v.Convert(vType).Interface().(string)
	default:
		return false, fmt.Errorf("%v: please do not apply this constraint to anything else than int or string. Current type: %v", ruleName, v.Type().Name())
	}

	return strings.EqualFold(fieldValue, vStr), nil
}
