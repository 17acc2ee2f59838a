package mock

import (
	"context"

	"github.com/fwojciec/ifacedoc"
)

var _ ifacedoc.InterfaceService = (*InterfaceService)(nil)

// InterfaceService is a mock implementation of ifacedoc.InterfaceService.
type InterfaceService struct {
	UpsertInterfaceFn     func(ctx context.Context, iface *ifacedoc.Interface) error
	FindInterfaceByNameFn func(ctx context.Context, name string) (*ifacedoc.Interface, error)
	FindInterfacesFn      func(ctx context.Context, filter ifacedoc.InterfaceFilter) ([]*ifacedoc.Interface, error)
	DeleteInterfaceFn     func(ctx context.Context, name string) error
	DeleteAllInterfacesFn func(ctx context.Context) error
	StatsFn               func(ctx context.Context) (*ifacedoc.Stats, error)
}

func (s *InterfaceService) UpsertInterface(ctx context.Context, iface *ifacedoc.Interface) error {
	return s.UpsertInterfaceFn(ctx, iface)
}

func (s *InterfaceService) FindInterfaceByName(ctx context.Context, name string) (*ifacedoc.Interface, error) {
	return s.FindInterfaceByNameFn(ctx, name)
}

func (s *InterfaceService) FindInterfaces(ctx context.Context, filter ifacedoc.InterfaceFilter) ([]*ifacedoc.Interface, error) {
	return s.FindInterfacesFn(ctx, filter)
}

func (s *InterfaceService) DeleteInterface(ctx context.Context, name string) error {
	return s.DeleteInterfaceFn(ctx, name)
}

func (s *InterfaceService) DeleteAllInterfaces(ctx context.Context) error {
	return s.DeleteAllInterfacesFn(ctx)
}

func (s *InterfaceService) Stats(ctx context.Context) (*ifacedoc.Stats, error) {
	return s.StatsFn(ctx)
}
