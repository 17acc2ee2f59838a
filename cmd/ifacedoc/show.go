package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/ifacedoc"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	iface, err := deps.Interfaces.FindInterfaceByName(deps.Ctx, c.Name)
	if err != nil {
		if ifacedoc.ErrorCode(err) == ifacedoc.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: interface %q not found. Use 'ifacedoc list' to see stored interfaces.\n", c.Name)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", ifacedoc.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s (%s)\n", iface.Name, iface.Category)
	fmt.Fprintf(deps.Stdout, "Source: %s\n", iface.SourceURL)
	if len(iface.Hierarchy) > 0 {
		fmt.Fprintf(deps.Stdout, "Hierarchy: %s\n", strings.Join(iface.Hierarchy, " -> "))
	}
	if iface.Description != "" {
		fmt.Fprintf(deps.Stdout, "Description: %s\n", iface.Description)
	}
	if iface.Role != "" {
		fmt.Fprintf(deps.Stdout, "Role: %s\n", iface.Role)
	}

	if len(iface.Properties) > 0 {
		fmt.Fprintf(deps.Stdout, "\nProperties (%d):\n", len(iface.Properties))
		for _, p := range iface.Properties {
			fmt.Fprintf(deps.Stdout, "  %s (%s, %s)\n", p.Name, p.Type, p.Access)
			if p.Description != "" {
				fmt.Fprintf(deps.Stdout, "      %s\n", p.Description)
			}
		}
	}

	if len(iface.Methods) > 0 {
		fmt.Fprintf(deps.Stdout, "\nMethods (%d):\n", len(iface.Methods))
		for _, m := range iface.Methods {
			fmt.Fprintf(deps.Stdout, "  %s\n", m.Signature)
			if m.Description != "" {
				fmt.Fprintf(deps.Stdout, "      %s\n", m.Description)
			}
			for _, p := range m.Params {
				fmt.Fprintf(deps.Stdout, "      %s: %s\n", p.Name, p.Description)
			}
		}
	}

	return nil
}
