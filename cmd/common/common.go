// Package common holds helpers shared by the chordtrainer commands.
package common

import "github.com/GiGurra/boa/pkg/boa"

// DefaultParamEnricher derives flag names, short flags and bool defaults
// from the Params struct fields of every command.
func DefaultParamEnricher() boa.ParamEnricher {
	return boa.ParamEnricherCombine(
		boa.ParamEnricherBool,
		boa.ParamEnricherName,
		boa.ParamEnricherShort,
	)
}
