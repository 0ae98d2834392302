package service

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
	// Debug events are dropped unless the observer runs at debug level.
	Debug bool
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *zap.Logger
}

// NewLogUseCaseObserver writes use-case events as JSON lines to w. level
// is a zap level name; unknown names mean info.
func NewLogUseCaseObserver(w io.Writer, level string) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(w), lvl)
	return &logUseCaseObserver{logger: zap.New(core)}
}

func (o *logUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	fields := make([]zap.Field, 0, 4+len(event.Fields))
	fields = append(fields,
		zap.String("use_case", event.Name),
		zap.Int64("duration_ms", event.Duration.Milliseconds()),
		zap.Bool("success", event.Success),
	)
	for k, v := range event.Fields {
		fields = append(fields, zap.Any(k, v))
	}

	switch {
	case event.Err != nil:
		fields = append(fields, zap.Error(event.Err))
		o.logger.Error("service_use_case", fields...)
	case event.Debug:
		o.logger.Debug("service_use_case", fields...)
	default:
		o.logger.Info("service_use_case", fields...)
	}
}

// Sync flushes buffered log entries, if the observer buffers any.
func Sync(obs UseCaseObserver) error {
	if o, ok := obs.(*logUseCaseObserver); ok {
		return o.logger.Sync()
	}
	return nil
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}
