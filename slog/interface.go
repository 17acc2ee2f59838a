package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ifacedoc"
)

// Ensure LoggingInterfaceService implements ifacedoc.InterfaceService.
var _ ifacedoc.InterfaceService = (*LoggingInterfaceService)(nil)

// LoggingInterfaceService wraps an InterfaceService with debug logging.
type LoggingInterfaceService struct {
	next   ifacedoc.InterfaceService
	logger *slog.Logger
}

// NewLoggingInterfaceService creates a new LoggingInterfaceService.
func NewLoggingInterfaceService(next ifacedoc.InterfaceService, logger *slog.Logger) *LoggingInterfaceService {
	return &LoggingInterfaceService{next: next, logger: logger}
}

// UpsertInterface delegates to the wrapped service and logs the operation.
func (s *LoggingInterfaceService) UpsertInterface(ctx context.Context, iface *ifacedoc.Interface) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("upsert interface",
			"name", iface.Name,
			"properties", len(iface.Properties),
			"methods", len(iface.Methods),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpsertInterface(ctx, iface)
}

// FindInterfaceByName delegates to the wrapped service and logs the operation.
func (s *LoggingInterfaceService) FindInterfaceByName(ctx context.Context, name string) (iface *ifacedoc.Interface, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find interface",
			"name", name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindInterfaceByName(ctx, name)
}

// FindInterfaces delegates to the wrapped service and logs the operation.
func (s *LoggingInterfaceService) FindInterfaces(ctx context.Context, filter ifacedoc.InterfaceFilter) (ifaces []*ifacedoc.Interface, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find interfaces",
			"count", len(ifaces),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindInterfaces(ctx, filter)
}

// DeleteInterface delegates to the wrapped service and logs the operation.
func (s *LoggingInterfaceService) DeleteInterface(ctx context.Context, name string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete interface",
			"name", name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteInterface(ctx, name)
}

// DeleteAllInterfaces delegates to the wrapped service and logs the operation.
func (s *LoggingInterfaceService) DeleteAllInterfaces(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("clear interfaces",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteAllInterfaces(ctx)
}

// Stats delegates to the wrapped service and logs the operation.
func (s *LoggingInterfaceService) Stats(ctx context.Context) (stats *ifacedoc.Stats, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("stats",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Stats(ctx)
}
