package main

import (
	"fmt"

	"github.com/fwojciec/ifacedoc"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	ifaces, err := deps.Interfaces.FindInterfaces(deps.Ctx, ifacedoc.InterfaceFilter{
		Limit:  c.Limit,
		Offset: c.Offset,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ifacedoc.ErrorMessage(err))
		return err
	}

	if len(ifaces) == 0 {
		fmt.Fprintln(deps.Stdout, "No interfaces stored. Use 'ifacedoc crawl' to populate the store.")
		return nil
	}

	for _, iface := range ifaces {
		fmt.Fprintf(deps.Stdout, "%-30s %-12s %3d properties %3d methods\n",
			iface.Name, iface.Category, len(iface.Properties), len(iface.Methods))
	}

	return nil
}
