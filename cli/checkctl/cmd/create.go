// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package cmd

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"
	goyaml "sigs.k8s.io/yaml"

	"github.com/DataDog/callcheck/constraint"
	"github.com/DataDog/callcheck/mapping"
	"github.com/DataDog/callcheck/metadata"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "create a mapping document.",
	Long:  `creates a mapping document given input from the user.`,
	Run: func(cmd *cobra.Command, args []string) {
		doc := createDocument()

		if _, err := doc.Build(); err != nil {
			fmt.Printf("There were some problems when building your mapping document: %v\n", err)
		}

		data, err := goyaml.Marshal(doc)
		if err != nil {
			fmt.Printf("yaml err: %v", err)
			return
		}

		path, _ := cmd.Flags().GetString("path")

		err = os.WriteFile(path, data, 0644) // #nosec
		if err != nil {
			fmt.Printf("writeFile err: %v", err)
			return
		}

		fmt.Printf("We wrote your mapping document to %s, thanks!\n", path)
	},
}

const intro = `Hello! This tool will walk you through declaring constraints for your callables. Please reply to the prompts, and use Ctrl+C to end.
The generated document can be linted with "checkctl lint" and replayed against recorded calls with "checkctl fixtures".`

func init() {
	createCmd.Flags().String("path", "mapping.yaml", "The file to write the new mapping document to.")

	if err := createCmd.MarkFlagRequired("path"); err != nil {
		return
	}
}

func createDocument() mapping.Document {
	fmt.Println(intro)

	doc := mapping.Document{Version: "v1"}

	doc.Callables = append(doc.Callables, promptForCallable())

	for confirmOption("Would you like to declare another callable?", "") {
		doc.Callables = append(doc.Callables, promptForCallable())
	}

	return doc
}

func promptForCallable() mapping.CallableMapping {
	callable := mapping.CallableMapping{}

	callable.Subject = getInput("What subject declares the callable?", "The type or service the method or constructor belongs to, e.g., orderService.", survey.WithValidator(survey.Required))
	callable.Name = getInput("What is the callable's name?", "The method or constructor name, e.g., placeOrder.", survey.WithValidator(survey.Required))
	callable.Kind, _ = selectInput("Is the callable a method or a constructor?", []string{string(metadata.KindMethod), string(metadata.KindConstructor)}, "Methods are validated against a subject instance, constructors are not.")
	callable.Arity, _ = strconv.Atoi(getInput("How many parameters does the callable have?", "Constraints bind to parameter indexes below.", survey.WithValidator(survey.Required), survey.WithValidator(integerValidator)))

	if callable.Arity > 0 && confirmOption("Would you like to name the parameters?", "Named parameters make violations and name based declarations more readable.") {
		for index := 0; index < callable.Arity; index++ {
			callable.ParameterNames = append(callable.ParameterNames, getInput(fmt.Sprintf("What is the name of parameter %d?", index), "", survey.WithValidator(survey.Required)))
		}
	}

	for index := 0; index < callable.Arity; index++ {
		if !confirmOption(fmt.Sprintf("Would you like to constrain parameter %d?", index), "Unconstrained parameters are skipped at validation time.") {
			continue
		}

		parameter := mapping.ParameterMapping{Index: index}
		parameter.Constraints = promptForConstraints()
		parameter.Groups = promptForGroups()
		parameter.Cascade = confirmOption("Should validation cascade into the value?", "Cascading walks the value's object graph using declared type metadata.")

		callable.Parameters = append(callable.Parameters, parameter)
	}

	if confirmOption("Would you like to constrain the return value?", "") {
		ret := mapping.ReturnMapping{}
		ret.Constraints = promptForConstraints()
		ret.Groups = promptForGroups()
		ret.Cascade = confirmOption("Should validation cascade into the returned value?", "")

		callable.Return = &ret
	}

	return callable
}

func promptForConstraints() []mapping.ConstraintMapping {
	constraints := []mapping.ConstraintMapping{promptForConstraint()}

	for confirmOption("Would you like to add another constraint?", "") {
		constraints = append(constraints, promptForConstraint())
	}

	return constraints
}

func promptForConstraint() mapping.ConstraintMapping {
	rule, err := selectInput("Which constraint rule would you like to declare?", constraint.FactoryNames(), "Constraints are evaluated in declaration order at validation time.")
	if err != nil {
		fmt.Printf("selectInput failed: %v\n", err)

		return mapping.ConstraintMapping{}
	}

	return mapping.ConstraintMapping{Rule: rule, With: constraintArgument(rule)}
}

// constraintArgument prompts for the argument matching the rule's factory,
// boolean rules take no input
func constraintArgument(rule string) interface{} {
	switch rule {
	case "required", "notNil":
		return true
	case "minimum", "maximum", "minLength", "maxLength":
		value, _ := strconv.Atoi(getInput("Which threshold should the constraint hold?", "The integer argument of the rule, e.g., 1 for minimum.", survey.WithValidator(survey.Required), survey.WithValidator(integerValidator)))

		return value
	case "pattern":
		return getInput("Which regular expression should values match?", "RE2 syntax, e.g., ^ord-.", survey.WithValidator(survey.Required))
	case "rule":
		return getInput("Which rule expression should values satisfy?", "A validator expression, e.g., oneof=pending paid.", survey.WithValidator(survey.Required))
	default:
		values := []string{}

		for _, value := range getSliceInput("Which values should the constraint carry? (one per line)", "Enum values or field names depending on the rule.", survey.WithValidator(survey.Required)) {
			if value != "" {
				values = append(values, value)
			}
		}

		return values
	}
}

func promptForGroups() []string {
	if !confirmOption("Would you like to restrict this declaration to specific validation groups?", "Declarations without groups belong to the default group.") {
		return nil
	}

	groups := []string{}

	for _, group := range getSliceInput("Which groups does this declaration belong to? (one per line)", "") {
		if group != "" {
			groups = append(groups, group)
		}
	}

	return groups
}

func confirmOption(query string, helpText string) bool {
	var result bool

	prompt := &survey.Confirm{
		Message: query,
		Help:    helpText,
	}

	err := survey.AskOne(prompt, &result)

	if err == terminal.InterruptErr {
		os.Exit(1)
	} else if err != nil {
		fmt.Printf("confirmOption failed: %v", err)
	}

	return result
}

func getInput(query string, helpText string, opts ...survey.AskOpt) string {
	var result string

	prompt := &survey.Input{
		Message: query,
		Help:    helpText,
	}
	err := survey.AskOne(prompt, &result, opts...)

	if err == terminal.InterruptErr {
		os.Exit(1)
	} else if err != nil {
		fmt.Printf("getInput failed: %v", err)
	}

	return result
}

func selectInput(query string, inputs []string, helpText string) (string, error) {
	var result string

	prompt := &survey.Select{
		Message: query,
		Options: inputs,
		Help:    helpText,
	}

	err := survey.AskOne(prompt, &result)

	if err == terminal.InterruptErr {
		os.Exit(1)
	}

	return result, err
}

func getSliceInput(query string, helpText string, opts ...survey.AskOpt) []string {
	var results string

	prompt := &survey.Multiline{
		Message: query,
		Help:    helpText,
	}

	err := survey.AskOne(prompt, &results, opts...)

	if err == terminal.InterruptErr {
		os.Exit(1)
	} else if err != nil {
		fmt.Printf("getSliceInput failed: %v\n", err)
	}

	return strings.Split(results, "\n")
}

func integerValidator(val interface{}) error {
	if str, ok := val.(string); ok {
		if str == "" {
			return nil
		}

		_, err := strconv.Atoi(str)
		if err != nil {
			return fmt.Errorf("this value must be an integer: got %v", err)
		}
	} else {
		return fmt.Errorf("expected a string response, rather than type %v", reflect.TypeOf(val).Name())
	}

	return nil
}
