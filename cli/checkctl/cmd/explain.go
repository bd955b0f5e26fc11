// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DataDog/callcheck/mapping"
	"github.com/DataDog/callcheck/metadata"
)

var explainCmd = &cobra.Command{
	Use:   "explain <mapping-file>",
	Short: "explain a mapping document",
	Long:  `translates the constraint declarations of a mapping document to english.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, _ := cmd.Flags().GetString("target")

		return explain(args[0], target)
	},
}

func init() {
	explainCmd.Flags().String("target", "", "Only explain the callable with this subject.name identity.")
}

type explanations struct {
	separator string
}

func (e *explanations) printSeparator() {
	fmt.Println(e.separator)
}

func (e *explanations) explainCallable(m mapping.CallableMapping) {
	kind := m.Kind
	if kind == "" {
		kind = string(metadata.KindMethod)
	}

	fmt.Printf("🧾 declares the %s %s.%s with %d parameter(s)...\n", kind, m.Subject, m.Name, m.Arity)

	for _, parameter := range m.Parameters {
		fmt.Printf("\tℹ️  parameter %d (%s) %s\n", parameter.Index, parameterName(m, parameter.Index), describeDeclaration(parameter.Constraints, parameter.Groups, parameter.Cascade))
	}

	if m.Return != nil {
		fmt.Printf("\tℹ️  the return value %s\n", describeDeclaration(m.Return.Constraints, m.Return.Groups, m.Return.Cascade))
	}

	e.printSeparator()
}

func (e *explanations) explainType(m mapping.TypeMapping) {
	fmt.Printf("🧰 declares cascade metadata for the type %s...\n", m.Name)

	for _, object := range m.Object {
		fmt.Printf("\tℹ️  the whole object must %s\n", describeConstraint(object))
	}

	for _, field := range m.Fields {
		fmt.Printf("\tℹ️  field %s %s\n", field.Name, describeDeclaration(field.Constraints, field.Groups, field.Cascade))
	}

	e.printSeparator()
}

func explain(path, target string) error {
	doc, err := mapping.ReadDocument(path)
	if err != nil {
		return err
	}

	fmt.Println("This mapping document...")

	e := explanations{separator: "======================================================================================================================================="}
	e.printSeparator()

	found := false

	for _, callable := range doc.Callables {
		if target != "" && fmt.Sprintf("%s.%s", callable.Subject, callable.Name) != target {
			continue
		}

		found = true

		e.explainCallable(callable)
	}

	if target == "" {
		for _, typeMapping := range doc.Types {
			e.explainType(typeMapping)
		}
	} else if !found {
		return fmt.Errorf("no callable %s declared in %s", target, path)
	}

	if _, err := doc.Build(); err != nil {
		fmt.Println("⚠️  this document does not build a valid registry, run checkctl lint for details")
	}

	return nil
}

// parameterName returns the declared name of the parameter at the given
// index, falling back to its synthetic name
func parameterName(m mapping.CallableMapping, index int) string {
	if index < len(m.ParameterNames) && m.ParameterNames[index] != "" {
		return m.ParameterNames[index]
	}

	return metadata.SyntheticName(index)
}

func describeDeclaration(constraints []mapping.ConstraintMapping, groups []string, cascade bool) string {
	parts := make([]string, 0, len(constraints))

	for _, c := range constraints {
		parts = append(parts, describeConstraint(c))
	}

	sentence := "carries no constraint"
	if len(parts) > 0 {
		sentence = "must " + strings.Join(parts, ", and ")
	}

	if cascade {
		sentence += ", validation cascades into the value"
	}

	if len(groups) > 0 {
		sentence += fmt.Sprintf(" (groups: %s)", strings.Join(groups, ", "))
	}

	return sentence
}

func describeConstraint(m mapping.ConstraintMapping) string {
	switch m.Rule {
	case "required":
		return "be present"
	case "notNil":
		return "not be nil"
	case "minimum":
		return fmt.Sprintf("be at least %v", m.With)
	case "maximum":
		return fmt.Sprintf("be at most %v", m.With)
	case "minLength":
		return fmt.Sprintf("have at least %v element(s)", m.With)
	case "maxLength":
		return fmt.Sprintf("have at most %v element(s)", m.With)
	case "enum":
		return fmt.Sprintf("be one of %s", joinWith(m.With))
	case "pattern":
		return fmt.Sprintf("match the pattern %v", m.With)
	case "rule":
		return fmt.Sprintf("satisfy the rule expression %v", m.With)
	case "exclusiveFields":
		return fmt.Sprintf("not set more than one of the fields %s", joinWith(m.With))
	case "linkedFields":
		return fmt.Sprintf("set the fields %s all together or not at all", joinWith(m.With))
	case "linkedFieldsWithTrigger":
		return fmt.Sprintf("set the fields %s together once the first one holds its trigger value", joinWith(m.With))
	case "atLeastOneOf":
		return fmt.Sprintf("set at least one of the fields %s", joinWith(m.With))
	default:
		return fmt.Sprintf("satisfy the unknown rule %s", m.Rule)
	}
}

// joinWith renders a list argument as a comma separated string, scalar
// arguments are rendered as is
func joinWith(with interface{}) string {
	values, ok := with.([]interface{})
	if !ok {
		return fmt.Sprintf("%v", with)
	}

	parts := make([]string, 0, len(values))

	for _, value := range values {
		parts = append(parts, fmt.Sprintf("%v", value))
	}

	return strings.Join(parts, ", ")
}
