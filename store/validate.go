// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/danielhkuo/quickpoll/apperr"
	"github.com/danielhkuo/quickpoll/models"
)

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if n := utf8.RuneCountInString(title); n < models.TitleMinLen || n > models.TitleMaxLen {
		return "", apperr.Validation("title",
			fmt.Sprintf("title must be %d-%d characters", models.TitleMinLen, models.TitleMaxLen))
	}
	return title, nil
}

func validateDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) > models.DescriptionMaxLen {
		return "", apperr.Validation("description",
			fmt.Sprintf("description must be at most %d characters", models.DescriptionMaxLen))
	}
	return description, nil
}

func validateQuestion(question string) (string, error) {
	question = strings.TrimSpace(question)
	if n := utf8.RuneCountInString(question); n < models.QuestionMinLen || n > models.QuestionMaxLen {
		return "", apperr.Validation("question",
			fmt.Sprintf("question must be %d-%d characters", models.QuestionMinLen, models.QuestionMaxLen))
	}
	return question, nil
}

// normalizeOptions trims every option and drops the empty ones, then checks
// the count before uniqueness so errors are reported in a stable order.
func normalizeOptions(options []string) ([]string, error) {
	out := make([]string, 0, len(options))
	for _, opt := range options {
		if opt = strings.TrimSpace(opt); opt != "" {
			out = append(out, opt)
		}
	}

	if len(out) < models.MinOptions || len(out) > models.MaxOptions {
		return nil, apperr.Validation("options",
			fmt.Sprintf("poll must have %d-%d non-empty options", models.MinOptions, models.MaxOptions))
	}

	seen := make(map[string]struct{}, len(out))
	for _, opt := range out {
		if _, dup := seen[opt]; dup {
			return nil, apperr.Validation("options", fmt.Sprintf("duplicate option %q", opt))
		}
		seen[opt] = struct{}{}
	}

	return out, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
