package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chazu/funge/vm"
)

// sample is a built-in program together with its supplied input values.
type sample struct {
	Description string
	Values      []uint32
	Rows        []string
}

var samples = map[string]sample{
	"random": {
		Description: "doubles and sums until a random walk drains the stack",
		Values:      []uint32{0},
		Rows:        []string{`1248::+1> #+?\# _.@`},
	},
	"hello": {
		Description: "prints Hello, World! one character at a time",
		Rows: []string{
			`"!dlroW ,olleH">:#,_@`,
		},
	},
	"selfmod": {
		Description: "writes its own @ with p before reaching it",
		Rows:        []string{`"@"055+p5.v`},
	},
	"countdown": {
		Description: "counts down from the supplied value",
		Values:      []uint32{5},
		Rows: []string{
			`&>:.1-:v`,
			`@^    <_`,
		},
	},
}

func lookupSample(name string) (sample, error) {
	s, ok := samples[name]
	if !ok {
		return sample{}, fmt.Errorf("unknown program %q (available: %s)", name, strings.Join(sampleNames(), ", "))
	}
	return s, nil
}

func sampleNames() []string {
	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s sample) program() *vm.Program {
	return vm.NewProgram(s.Values, s.Rows)
}
