// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

package cliutil

import (
	"strings"
)

// Wrap the string `s` to a maximum width `w`.  Pass `w` == 0 to do no
// wrapping.
//
// In order to have some room for slop to avoid things like a short word
// being on a line by itself, most lines are actually wrapped to `w - 5`.
func Wrap(w int, s string) string {
	return wrap(0, w, s)
}

// WrapIndent wraps the string `s` to a maximum width `w` with leading
// indent `i`.  The first line is not indented (that is assumed to be done
// by the caller).  Pass `w` == 0 to do no wrapping.
func WrapIndent(i, w int, s string) string {
	return wrap(i, w, s)
}

func wrap(indent, width int, s string) string {
	if width <= 0 {
		return s
	}
	limit := width - 5 - indent
	if limit <= 0 {
		return s
	}
	var ret []string
	for _, line := range strings.Split(s, "\n") {
		// Break at spaces only; spaces not at a break point pass
		// through, so sentence spacing survives.
		for len(line) >= limit {
			brk := strings.LastIndex(line[:limit], " ")
			if brk < 0 {
				brk = strings.Index(line, " ")
			}
			if brk < 0 {
				break
			}
			ret = append(ret, line[:brk])
			line = strings.TrimLeft(line[brk:], " ")
		}
		ret = append(ret, line)
	}
	return strings.Join(ret, "\n"+strings.Repeat(" ", indent))
}
