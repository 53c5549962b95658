package application

import (
	"context"
	"log/slog"
	"time"

	"rokuwake/internal/domain"
)

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sequencer replays a command sequence against a live device.
type Sequencer struct {
	client DeviceClient
	sleep  SleepFunc
	logger *slog.Logger
}

func NewSequencer(client DeviceClient, sleep SleepFunc, logger *slog.Logger) *Sequencer {
	if sleep == nil {
		sleep = Sleep
	}
	return &Sequencer{client: client, sleep: sleep, logger: logger}
}

// Run sends every step in order and records one result per send. Send
// failures do not stop the sequence; only cancellation does.
func (s *Sequencer) Run(ctx context.Context, seq domain.Sequence) ([]domain.SendResult, error) {
	results := make([]domain.SendResult, 0, len(seq))

	for _, step := range seq {
		var err error
		switch step.Kind {
		case domain.StepWait:
			s.logger.Debug("waiting", "delay", step.Delay)
			if err := s.sleep(ctx, step.Delay); err != nil {
				return results, err
			}
			continue
		case domain.StepKeypress:
			err = s.client.Keypress(ctx, step.Key)
		case domain.StepLaunch:
			err = s.client.Launch(ctx, step.AppID)
		}

		result := domain.NewSendResult(step, err)
		if err != nil {
			s.logger.Warn("command send failed", "path", step.Path(), "status", result.Status, "error", err)
		} else {
			s.logger.Info("command sent", "path", step.Path())
		}
		results = append(results, result)
	}

	return results, nil
}

func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
