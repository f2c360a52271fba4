package cmd

import (
	"github.com/etnz/stockbook/date"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var periods = predict.Set{"day", "week", "month", "quarter", "year"}

// Completion describes the sbk command line for shell completion.
func Completion() *complete.Command {
	trade := &complete.Command{
		Flags: map[string]complete.Predictor{
			"s": predict.Something,
			"q": predict.Something,
			"p": predict.Something,
			"d": predict.Set{date.Today().String()},
		},
	}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"buy":  trade,
			"sell": trade,
			"orders": {
				Flags: map[string]complete.Predictor{
					"s":   predict.Something,
					"raw": predict.Nothing,
				},
			},
			"holding": {
				Flags: map[string]complete.Predictor{
					"raw": predict.Nothing,
				},
			},
			"profit": {
				Flags: map[string]complete.Predictor{
					"s":      predict.Something,
					"start":  predict.Something,
					"end":    predict.Something,
					"period": periods,
					"raw":    predict.Nothing,
				},
			},
			"topic": {
				Args:  predict.Set{"config", "ledger", "profit", "extensions", "*"},
				Flags: map[string]complete.Predictor{
					"raw": predict.Nothing,
				},
			},
		},
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
			"ledger": predict.Files("*"),
			"store":  predict.Set{"jsonl", "sqlite"},
		},
	}
}
