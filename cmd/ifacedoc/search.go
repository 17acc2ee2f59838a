package main

import (
	"fmt"

	"github.com/fwojciec/ifacedoc"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	ifaces, err := deps.Interfaces.FindInterfaces(deps.Ctx, ifacedoc.InterfaceFilter{
		Query: &c.Query,
		Limit: c.Limit,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ifacedoc.ErrorMessage(err))
		return err
	}

	if len(ifaces) == 0 {
		fmt.Fprintf(deps.Stdout, "No interfaces match %q.\n", c.Query)
		return nil
	}

	for _, iface := range ifaces {
		fmt.Fprintf(deps.Stdout, "%-30s %s\n", iface.Name, iface.Description)
	}

	return nil
}
