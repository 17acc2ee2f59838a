package main

import (
	"fmt"

	"github.com/fwojciec/ifacedoc"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return ifacedoc.Errorf(ifacedoc.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Interfaces.DeleteInterface(deps.Ctx, c.Name); err != nil {
		if ifacedoc.ErrorCode(err) == ifacedoc.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: interface %q not found. Use 'ifacedoc list' to see stored interfaces.\n", c.Name)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", ifacedoc.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted interface %q\n", c.Name)
	return nil
}
