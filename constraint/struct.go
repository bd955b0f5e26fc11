// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package constraint

import (
	"fmt"
	"reflect"
)

// ExclusiveFields can be applied to structs, and asserts that the first field can only be non-'nil' iff all of the other fields are 'nil'
type ExclusiveFields []string

// LinkedFields can be applied to structs, and asserts the fields in the list are either all 'nil' or all non-'nil'.
// An item can pin a value with the "Field=value" form.
type LinkedFields []string

// LinkedFieldsWithTrigger can be applied to structs, and asserts the following:
// - if the first field exists (or has the indicated value), all the following fields need to exist (or have the indicated value)
// - fields in question can be int or strings
type LinkedFieldsWithTrigger []string

// AtLeastOneOf can be applied to structs, and asserts at least one of the listed fields is non-'nil'
type AtLeastOneOf []string

func (e ExclusiveFields) ApplyRule(fieldvalue reflect.Value) error {
	fieldvalue = reflect.Indirect(fieldvalue)

	if len(e) < 2 {
		return fmt.Errorf("%s: constraint was wrongly defined: less than 2 fields", ruleName(e))
	}

	matchCount := 0

	structMap, ok := structValueToMap(fieldvalue)
	if !ok {
		return e.TypeCheckError(fieldvalue)
	}

	if structMap[e[0]] != nil {
		for _, item := range e[1:] {
			if structMap[item] != nil {
				matchCount++
			}
		}
	}

	if matchCount >= 1 {
		return e.ValueCheckError()
	}

	return nil
}

func (e ExclusiveFields) ValueCheckError() error {
	return fmt.Errorf("%s: some fields are incompatible, %s can't be set alongside any of %v", ruleName(e), e[0], []string(e[1:]))
}

func (e ExclusiveFields) TypeCheckError(fieldValue reflect.Value) error {
	return GenericTypeCheckError(e, fieldValue, "struct")
}

func (l LinkedFields) ApplyRule(fieldvalue reflect.Value) error {
	fieldvalue = reflect.Indirect(fieldvalue)

	var matchCount = 0

	structMap, ok := structValueToMap(fieldvalue)
	if !ok {
		return l.TypeCheckError(fieldvalue)
	}

	for _, item := range l {
		res, err := checkValueExistsOrIsValid(item, structMap, ruleName(l))
		if err != nil {
			return err
		}

		if res {
			matchCount++
		}
	}

	if matchCount != 0 && matchCount != len(l) {
		return l.ValueCheckError()
	}

	return nil
}

func (l LinkedFields) ValueCheckError() error {
	template := "%v: all of the following fields need to be either nil/at the indicated value or non-nil/not at the indicated value; currently unmatched: %v"
	return fmt.Errorf(template, ruleName(l), []string(l))
}

func (l LinkedFields) TypeCheckError(fieldValue reflect.Value) error {
	return GenericTypeCheckError(l, fieldValue, "struct")
}

func (l LinkedFieldsWithTrigger) ApplyRule(fieldvalue reflect.Value) error {
	fieldvalue = reflect.Indirect(fieldvalue)

	var matchCount = 0
	// room for logic to possibly expand the constraint to accept multiple/combined trigger values (instead of 1)
	var c = 1

	if len(l) < 2 {
		return fmt.Errorf("%s: constraint was wrongly defined: less than 2 fields", ruleName(l))
	}

	structMap, ok := structValueToMap(fieldvalue)
	if !ok {
		return l.TypeCheckError(fieldvalue)
	}

	for _, item := range l[:c] {
		res, err := checkValueExistsOrIsValid(item, structMap, ruleName(l))
		if err != nil {
			return err
		}

		if res {
			matchCount++
		}
	}

	if matchCount != len(l[:c]) {
		return nil
	}

	for _, item := range l[c:] {
		res, err := checkValueExistsOrIsValid(item, structMap, ruleName(l))
		if err != nil {
			return err
		}

		if res {
			matchCount++
		}
	}

	if matchCount != 0 && matchCount != len(l) {
		return l.ValueCheckError()
	}

	return nil
}

func (l LinkedFieldsWithTrigger) ValueCheckError() error {
	template := "%v: all of the following fields need to be aligned; if %v is set, all the following need to either exist or have the indicated value: %v"
	return fmt.Errorf(template, ruleName(l), l[0], []string(l[1:]))
}

func (l LinkedFieldsWithTrigger) TypeCheckError(fieldValue reflect.Value) error {
	return GenericTypeCheckError(l, fieldValue, "struct")
}

func (a AtLeastOneOf) ApplyRule(fieldvalue reflect.Value) error {
	fieldvalue = reflect.Indirect(fieldvalue)

	structMap, ok := structValueToMap(fieldvalue)
	if !ok {
		return a.TypeCheckError(fieldvalue)
	}

	for _, item := range a {
		if structMap[item] != nil {
			return nil
		}
	}

	return a.ValueCheckError()
}

func (a AtLeastOneOf) ValueCheckError() error {
	template := "%v: at least one of the following fields need to be non-nil (currently all nil): %v"
	return fmt.Errorf(template, ruleName(a), []string(a))
}

func (a AtLeastOneOf) TypeCheckError(fieldValue reflect.Value) error {
	return GenericTypeCheckError(a, fieldValue, "struct")
}
