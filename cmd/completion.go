package cmd

import (
	"log"

	"github.com/etnz/stocktracker"
	"github.com/etnz/stocktracker/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Currencies suggested when completing the -currency flag.
var currencies = predict.Set{"USD", "EUR", "GBP", "CHF", "JPY", "CAD", "AUD"}

// completion describes the command line for shell completion.
func completion() *complete.Command {
	topics, err := docs.GetAllTopics()
	if err != nil {
		log.Printf("cannot list topics: %v", err)
	}

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"shell": {},
			"topic": {
				Args: predict.Set(append(topics, docs.Readme)),
			},
			"help":  {Args: predict.Set{"shell", "topic"}},
			"flags": {},
		},
		Flags: map[string]complete.Predictor{
			"currency":    currencies,
			"reports-dir": predict.Dirs("*"),
			"quotes":      predict.Files("*.json"),
			"quotes-path": predict.Set{stocktracker.DefaultQuotePath},
		},
	}
}

// Complete answers a shell completion request and exits if the program was
// invoked for one, it returns otherwise. 'name' is the program name.
//
// Run 'COMP_INSTALL=1 st' to install the completion in the user's shell.
func Complete(name string) {
	completion().Complete(name)
}
