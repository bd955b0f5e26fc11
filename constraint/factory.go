// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package constraint

import (
	"fmt"
	"math"
	"sort"
)

// Factory builds a constraint from the raw argument carried by a mapping file
type Factory func(arg interface{}) (Constraint, error)

var factories = map[string]Factory{}

func init() {
	registerFactory("required", func(arg interface{}) (Constraint, error) {
		b, err := toBool(arg, "required")

		return Required(b), err
	})
	registerFactory("notNil", func(arg interface{}) (Constraint, error) {
		b, err := toBool(arg, "notNil")

		return NotNil(b), err
	})
	registerFactory("minimum", func(arg interface{}) (Constraint, error) {
		i, err := toInt(arg, "minimum")

		return Minimum(i), err
	})
	registerFactory("maximum", func(arg interface{}) (Constraint, error) {
		i, err := toInt(arg, "maximum")

		return Maximum(i), err
	})
	registerFactory("minLength", func(arg interface{}) (Constraint, error) {
		i, err := toInt(arg, "minLength")

		return MinLength(i), err
	})
	registerFactory("maxLength", func(arg interface{}) (Constraint, error) {
		i, err := toInt(arg, "maxLength")

		return MaxLength(i), err
	})
	registerFactory("enum", func(arg interface{}) (Constraint, error) {
		values, err := toSlice(arg, "enum")

		return Enum(values), err
	})
	registerFactory("pattern", func(arg interface{}) (Constraint, error) {
		expr, err := toString(arg, "pattern")
		if err != nil {
			return nil, err
		}

		return NewPattern(expr)
	})
	registerFactory("rule", func(arg interface{}) (Constraint, error) {
		expr, err := toString(arg, "rule")

		return Rule(expr), err
	})
	registerFactory("exclusiveFields", func(arg interface{}) (Constraint, error) {
		fields, err := toStringSlice(arg, "exclusiveFields")

		return ExclusiveFields(fields), err
	})
	registerFactory("linkedFields", func(arg interface{}) (Constraint, error) {
		fields, err := toStringSlice(arg, "linkedFields")

		return LinkedFields(fields), err
	})
	registerFactory("linkedFieldsWithTrigger", func(arg interface{}) (Constraint, error) {
		fields, err := toStringSlice(arg, "linkedFieldsWithTrigger")

		return LinkedFieldsWithTrigger(fields), err
	})
	registerFactory("atLeastOneOf", func(arg interface{}) (Constraint, error) {
		fields, err := toStringSlice(arg, "atLeastOneOf")

		return AtLeastOneOf(fields), err
	})
}

func registerFactory(name string, f Factory) {
	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("constraint factory %s registered twice", name))
	}

	factories[name] = f
}

// Lookup returns the factory registered under the given mapping name
func Lookup(name string) (Factory, bool) {
	f, ok := factories[name]

	return f, ok
}

// FactoryNames returns the sorted names of every registered constraint factory
func FactoryNames() []string {
	names := make([]string, 0, len(factories))

	for name := range factories {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func toBool(arg interface{}, name string) (bool, error) {
	b, ok := arg.(bool)
	if !ok {
		return false, fmt.Errorf("constraint %s: expected a boolean argument, got %T", name, arg)
	}

	return b, nil
}

func toInt(arg interface{}, name string) (int, error) {
	switch v := arg.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("constraint %s: expected an integer argument, got %v", name, v)
		}

		return int(v), nil
	default:
		return 0, fmt.Errorf("constraint %s: expected an integer argument, got %T", name, arg)
	}
}

func toString(arg interface{}, name string) (string, error) {
	s, ok := arg.(string)
	if !ok {
		return "", fmt.Errorf("constraint %s: expected a string argument, got %T", name, arg)
	}

	return s, nil
}

func toSlice(arg interface{}, name string) ([]interface{}, error) {
	values, ok := arg.([]interface{})
	if !ok || len(values) == 0 {
		return nil, fmt.Errorf("constraint %s: expected a non-empty list argument, got %T", name, arg)
	}

	return values, nil
}

func toStringSlice(arg interface{}, name string) ([]string, error) {
	if fields, ok := arg.([]string); ok {
		return fields, nil
	}

	values, err := toSlice(arg, name)
	if err != nil {
		return nil, err
	}

	fields := make([]string, 0, len(values))

	for _, value := range values {
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("constraint %s: expected a list of field names, got a %T item", name, value)
		}

		fields = append(fields, s)
	}

	return fields, nil
}
