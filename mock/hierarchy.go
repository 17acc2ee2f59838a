package mock

import (
	"context"

	"github.com/fwojciec/ifacedoc"
)

var _ ifacedoc.HierarchyLoader = (*HierarchyLoader)(nil)

// HierarchyLoader is a mock implementation of ifacedoc.HierarchyLoader.
type HierarchyLoader struct {
	LoadFn func(ctx context.Context) (*ifacedoc.HierarchyTable, error)
}

func (l *HierarchyLoader) Load(ctx context.Context) (*ifacedoc.HierarchyTable, error) {
	return l.LoadFn(ctx)
}
