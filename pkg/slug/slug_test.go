// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chiaweilin/meihe/pkg/slug"
)

/*
TestFrom verifies the slug transformation pipeline across input classes.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple_title", input: "Meihe Villa Main Hall", want: "meihe-villa-main-hall"},
		{name: "accented_letters", input: "Café of the Père", want: "cafe-of-the-pere"},
		{name: "punctuation_collapsed", input: "Restoration -- Phase 2 (East Wing)", want: "restoration-phase-2-east-wing"},
		{name: "leading_trailing_junk", input: "  ~Hours!  ", want: "hours"},
		{name: "mixed_cjk_and_latin", input: "梅鶴山莊 Guided Tour", want: "guided-tour"},
		{name: "pure_cjk_yields_empty", input: "梅鶴山莊", want: ""},
		{name: "empty_input", input: "", want: ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, slug.From(testCase.input))
		})
	}
}
