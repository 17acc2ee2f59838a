package ifacedoc

import (
	"context"
	"strings"
	"time"
)

// Interface categories. Category is free text in the source documentation;
// these two cover the known generator output.
const (
	CategoryObject     = "Object"
	CategoryCollection = "Collection"
)

// Interface represents one documented interface: a named entity with
// properties, methods, and an inheritance chain. An interface exclusively
// owns its properties and methods; deleting it deletes them.
type Interface struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Role        string    `json:"role"`

	// Hierarchy is the ordered ancestor chain, most distant base first,
	// the interface itself last. Empty when unresolved. Never contains a
	// cycle or a repeated name.
	Hierarchy []string `json:"hierarchy"`

	// IsCollection is derived from Category plus a name-suffix heuristic.
	IsCollection bool `json:"isCollection"`

	SourceURL   string    `json:"sourceUrl"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`

	Properties []*Property `json:"properties"`
	Methods    []*Method   `json:"methods"`
}

// Validate returns an error if the interface contains invalid fields.
func (i *Interface) Validate() error {
	if i.Name == "" {
		return Errorf(EINVALID, "interface name required")
	}
	if i.SourceURL == "" {
		return Errorf(EINVALID, "interface source URL required")
	}
	seen := make(map[string]struct{}, len(i.Hierarchy))
	for _, name := range i.Hierarchy {
		if _, ok := seen[name]; ok {
			return Errorf(EINVALID, "hierarchy of %q repeats %q", i.Name, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// DeriveCollection reports whether an interface looks like a collection.
// A "Collection" category is authoritative. The name-suffix fallback is a
// heuristic with known false positives (e.g. "Analysis" is not a
// collection); callers that need certainty should check Category instead.
func DeriveCollection(category, name string) bool {
	if category == CategoryCollection {
		return true
	}
	return strings.HasSuffix(strings.ToLower(name), "s")
}

// Property access modes as they appear in the source documentation.
const (
	AccessReadOnly  = "Read Only"
	AccessReadWrite = "Read/Write"
	AccessUnknown   = "Unknown"
)

// Property represents a documented property of an interface.
type Property struct {
	Name        string `json:"name"`
	Type        string `json:"type"`   // "Unknown" when unrecoverable
	Access      string `json:"access"` // one of the Access* constants
	Description string `json:"description"`

	// Anchor is the source fragment identifier locating this entry in the
	// page, kept for traceability.
	Anchor string `json:"anchor"`
}

// Method represents a documented method of an interface.
type Method struct {
	Name        string   `json:"name"`
	Signature   string   `json:"signature"` // reconstructed "Name()" if absent in source
	Description string   `json:"description"`
	ReturnType  string   `json:"returnType,omitempty"`
	Params      []*Param `json:"params,omitempty"`
}

// Param describes one method parameter.
type Param struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Stats summarizes the stored knowledge base.
type Stats struct {
	Interfaces  int `json:"interfaces"`
	Properties  int `json:"properties"`
	Methods     int `json:"methods"`
	Collections int `json:"collections"`
}

// InterfaceFilter represents a filter for FindInterfaces.
type InterfaceFilter struct {
	Name *string `json:"name"`

	// Query matches name or description by substring.
	Query *string `json:"query"`

	// Collection, if set, filters by the is_collection flag.
	Collection *bool `json:"collection"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// InterfaceService persists and queries interface records. Upsert is keyed
// by interface name: re-crawling replaces the record and all owned
// properties and methods rather than duplicating them.
type InterfaceService interface {
	// UpsertInterface creates or replaces an interface together with its
	// properties and methods as a single unit.
	UpsertInterface(ctx context.Context, iface *Interface) error

	// FindInterfaceByName retrieves a complete interface record.
	// Returns ENOTFOUND if it does not exist.
	FindInterfaceByName(ctx context.Context, name string) (*Interface, error)

	// FindInterfaces retrieves interfaces matching the filter, ordered by
	// name. Results carry embedded properties and methods.
	FindInterfaces(ctx context.Context, filter InterfaceFilter) ([]*Interface, error)

	// DeleteInterface removes an interface and cascades to its owned
	// properties and methods. Returns ENOTFOUND if it does not exist.
	DeleteInterface(ctx context.Context, name string) error

	// DeleteAllInterfaces clears the store. A crawl run calls this first:
	// re-running a crawl replaces prior state, it does not merge.
	DeleteAllInterfaces(ctx context.Context) error

	// Stats returns record counts.
	Stats(ctx context.Context) (*Stats, error)
}

// IndexEntry is one discovered interface: its name and the absolute URL of
// its documentation page.
type IndexEntry struct {
	Name string
	URL  string
}
