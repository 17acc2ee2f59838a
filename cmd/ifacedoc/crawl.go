package main

import (
	"fmt"

	"github.com/fwojciec/ifacedoc/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Crawling %d interfaces\n", event.Total)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, event.Name)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", crawl.TruncateURL(event.URL, 60), event.Error)
		}
	}

	var result *crawl.Result
	var err error
	if len(c.Name) > 0 {
		result, err = deps.Crawler.CrawlNamed(deps.Ctx, c.URL, c.Name, progress)
	} else {
		result, err = deps.Crawler.CrawlAll(deps.Ctx, c.URL, progress)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d interfaces (%d properties, %d methods), %d failed\n",
		result.Saved, result.Properties, result.Methods, result.Failed)
	return nil
}
