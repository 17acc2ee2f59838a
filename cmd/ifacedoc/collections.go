package main

import (
	"fmt"

	"github.com/fwojciec/ifacedoc"
)

// Run executes the collections command.
func (c *CollectionsCmd) Run(deps *Dependencies) error {
	collection := true
	ifaces, err := deps.Interfaces.FindInterfaces(deps.Ctx, ifacedoc.InterfaceFilter{
		Collection: &collection,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ifacedoc.ErrorMessage(err))
		return err
	}

	if len(ifaces) == 0 {
		fmt.Fprintln(deps.Stdout, "No collection interfaces stored.")
		return nil
	}

	for _, iface := range ifaces {
		fmt.Fprintf(deps.Stdout, "%-30s %s\n", iface.Name, iface.Description)
	}

	return nil
}
