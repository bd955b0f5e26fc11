// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

// Package message holds the english translator used to render rule expression
// failures as plain sentences.
package message

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	transOnce sync.Once
	trans     ut.Translator
)

// Translator returns the shared english translator
func Translator() ut.Translator {
	transOnce.Do(func() {
		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
	})

	return trans
}

// RegisterRuleTranslations attaches the default english messages for every
// validator/v10 tag to the given instance
func RegisterRuleTranslations(v *validator.Validate) error {
	return entranslations.RegisterDefaultTranslations(v, Translator())
}

// Translate renders a validator/v10 error as a plain english sentence, falling
// back to the raw error text for anything else
func Translate(err error) string {
	if err == nil {
		return ""
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))

		for _, ferr := range verrs {
			parts = append(parts, strings.TrimSpace(ferr.Translate(Translator())))
		}

		return strings.Join(parts, ", ")
	}

	return err.Error()
}
