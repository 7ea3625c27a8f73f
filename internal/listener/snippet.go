// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package listener

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const defaultSnippetFunc = "stepDefinition"

// snippetParam matches the parts of a step that become parameters:
// double quoted strings and whole integers.
var snippetParam = regexp.MustCompile(`"[^"]*"|\b\d+\b`)

// Snippet returns a step definition skeleton for an undefined step, e.g.
//
//	func iHaveCukes(arg1 int) error {
//		return godog.ErrPending
//	}
//
//	ctx.Step(`^I have (\d+) cukes$`, iHaveCukes)
func Snippet(step string) string {
	var (
		pattern strings.Builder
		name    strings.Builder
		params  []string
	)

	last := 0

	for _, loc := range snippetParam.FindAllStringIndex(step, -1) {
		literal := step[last:loc[0]]
		pattern.WriteString(regexp.QuoteMeta(literal))
		name.WriteString(literal)
		name.WriteString(" ")

		n := len(params) + 1
		if step[loc[0]] == '"' {
			pattern.WriteString(`"([^"]*)"`)
			params = append(params, fmt.Sprintf("arg%d string", n))
		} else {
			pattern.WriteString(`(\d+)`)
			params = append(params, fmt.Sprintf("arg%d int", n))
		}

		last = loc[1]
	}

	pattern.WriteString(regexp.QuoteMeta(step[last:]))
	name.WriteString(step[last:])

	fn := funcName(name.String())
	expr := "`^" + pattern.String() + "$`"

	if strings.Contains(pattern.String(), "`") {
		expr = strconv.Quote("^" + pattern.String() + "$")
	}

	sb := strings.Builder{}
	fmt.Fprintf(&sb, "func %s(%s) error {\n", fn, strings.Join(params, ", ")) // nolint:errcheck
	sb.WriteString("\treturn godog.ErrPending\n")
	sb.WriteString("}\n\n")
	fmt.Fprintf(&sb, "ctx.Step(%s, %s)\n", expr, fn) // nolint:errcheck

	return sb.String()
}

// funcName camel-cases the words of s into a Go identifier.
func funcName(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	title := cases.Title(language.English)
	sb := strings.Builder{}

	for _, w := range words {
		if sb.Len() == 0 {
			// identifiers cannot start with a digit
			if unicode.IsDigit([]rune(w)[0]) {
				continue
			}

			sb.WriteString(strings.ToLower(w))

			continue
		}

		sb.WriteString(title.String(w))
	}

	if sb.Len() == 0 {
		return defaultSnippetFunc
	}

	return sb.String()
}
