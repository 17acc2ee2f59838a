package main

import (
	"context"
	"io"

	"github.com/fwojciec/ifacedoc"
	"github.com/fwojciec/ifacedoc/crawl"
	"github.com/fwojciec/ifacedoc/sqlite"
)

// Default locations of the documentation site's index page and hierarchy
// script. Both can be overridden on the crawl command.
const (
	defaultIndexURL     = "http://catiadoc.free.fr/online/interfaces/CAAInterfaceIdx.htm"
	defaultHierarchyURL = "http://catiadoc.free.fr/online/interfaces/jsTree.js"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	DB         *sqlite.DB
	Interfaces ifacedoc.InterfaceService
	Crawler    *crawl.Crawler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Crawl       CrawlCmd       `cmd:"" help:"Crawl interface documentation into the local store"`
	List        ListCmd        `cmd:"" help:"List stored interfaces"`
	Show        ShowCmd        `cmd:"" help:"Show one interface with its properties and methods"`
	Search      SearchCmd      `cmd:"" help:"Search interfaces by name, description or role"`
	Collections CollectionsCmd `cmd:"" help:"List collection interfaces"`
	Stats       StatsCmd       `cmd:"" help:"Show store statistics"`
	Delete      DeleteCmd      `cmd:"" help:"Delete a stored interface"`
}

// CrawlCmd is the "crawl" subcommand. Without --name it discovers
// interfaces from the index page; with --name it crawls only the named
// interfaces.
type CrawlCmd struct {
	URL          string   `arg:"" optional:"" default:"${index_url}" help:"Index page URL"`
	Name         []string `short:"n" help:"Crawl only the named interface (repeatable)"`
	Limit        int      `short:"l" default:"50" help:"Max interfaces in discovery mode"`
	HierarchyURL string   `name:"hierarchy-url" default:"${hierarchy_url}" help:"Hierarchy script URL"`
	RPS          float64  `name:"rps" default:"1.0" help:"Max requests per second per host"`
	Concurrency  int      `short:"c" default:"1" help:"Concurrent fetch limit"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Limit  int `short:"l" help:"Max interfaces to list"`
	Offset int `help:"Skip the first N interfaces"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Name string `arg:"" help:"Interface name"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Substring to match against name, description and role"`
	Limit int    `short:"l" help:"Max results"`
}

// CollectionsCmd is the "collections" subcommand.
type CollectionsCmd struct{}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Interface name"`
	Force bool   `help:"Confirm deletion"`
}
