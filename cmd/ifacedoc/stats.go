package main

import (
	"fmt"

	"github.com/fwojciec/ifacedoc"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Interfaces.Stats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ifacedoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Interfaces:  %d\n", stats.Interfaces)
	fmt.Fprintf(deps.Stdout, "Collections: %d\n", stats.Collections)
	fmt.Fprintf(deps.Stdout, "Properties:  %d\n", stats.Properties)
	fmt.Fprintf(deps.Stdout, "Methods:     %d\n", stats.Methods)
	return nil
}
