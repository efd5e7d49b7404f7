package pyroscope

import (
	"context"
	"strings"

	"github.com/flexprice/aggbot/internal/config"
	"github.com/flexprice/aggbot/internal/logger"
	"github.com/grafana/pyroscope-go"
	"go.uber.org/fx"
)

var profileTypes = map[string]pyroscope.ProfileType{
	"cpu":            pyroscope.ProfileCPU,
	"inuse_objects":  pyroscope.ProfileInuseObjects,
	"alloc_objects":  pyroscope.ProfileAllocObjects,
	"inuse_space":    pyroscope.ProfileInuseSpace,
	"alloc_space":    pyroscope.ProfileAllocSpace,
	"goroutines":     pyroscope.ProfileGoroutines,
	"mutex_count":    pyroscope.ProfileMutexCount,
	"mutex_duration": pyroscope.ProfileMutexDuration,
	"block_count":    pyroscope.ProfileBlockCount,
	"block_duration": pyroscope.ProfileBlockDuration,
}

var defaultProfileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileGoroutines,
}

type Service struct {
	cfg      config.PyroscopeConfig
	logger   *logger.Logger
	profiler *pyroscope.Profiler
}

// Module provides fx options for Pyroscope
func Module() fx.Option {
	return fx.Options(
		fx.Provide(NewPyroscopeService),
		fx.Invoke(RegisterHooks),
	)
}

func NewPyroscopeService(cfg *config.Configuration, logger *logger.Logger) *Service {
	return &Service{
		cfg:    cfg.Pyroscope,
		logger: logger,
	}
}

// RegisterHooks starts continuous profiling with the app when enabled
func RegisterHooks(lc fx.Lifecycle, svc *Service) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !svc.cfg.Enabled {
				svc.logger.Info("Pyroscope profiling is disabled")
				return nil
			}

			profiler, err := pyroscope.Start(pyroscope.Config{
				ApplicationName:   svc.cfg.ApplicationName,
				ServerAddress:     svc.cfg.ServerAddress,
				BasicAuthUser:     svc.cfg.BasicAuthUser,
				BasicAuthPassword: svc.cfg.BasicAuthPass,
				ProfileTypes:      svc.getProfileTypes(),
				Logger:            svc,
			})
			if err != nil {
				svc.logger.Errorw("Failed to initialize Pyroscope", "error", err)
				return err
			}
			svc.profiler = profiler

			svc.logger.Infow("Pyroscope profiling initialized",
				"application_name", svc.cfg.ApplicationName,
				"server_address", svc.cfg.ServerAddress,
			)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if svc.profiler == nil {
				return nil
			}
			svc.logger.Info("Stopping Pyroscope profiling")
			return svc.profiler.Stop()
		},
	})
}

// pyroscope.Logger
func (s *Service) Debugf(format string, args ...interface{}) {
	s.logger.Debugf("[Pyroscope] "+format, args...)
}

func (s *Service) Infof(format string, args ...interface{}) {
	s.logger.Infof("[Pyroscope] "+format, args...)
}

func (s *Service) Errorf(format string, args ...interface{}) {
	s.logger.Errorf("[Pyroscope] "+format, args...)
}

func (s *Service) getProfileTypes() []pyroscope.ProfileType {
	if len(s.cfg.ProfileTypes) == 0 {
		return defaultProfileTypes
	}

	var types []pyroscope.ProfileType
	for _, name := range s.cfg.ProfileTypes {
		pt, ok := profileTypes[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			s.logger.Warnw("Unknown profile type", "type", name)
			continue
		}
		types = append(types, pt)
	}
	return types
}
