package domain

import (
	"context"
	"errors"
	"net"
	"net/url"
	"time"
)

type Key string

const (
	KeyPowerOn Key = "PowerOn"
	KeyHome    Key = "Home"
)

type StepKind string

const (
	StepKeypress StepKind = "keypress"
	StepLaunch   StepKind = "launch"
	StepWait     StepKind = "wait"
)

// Step is one entry of a remote-control sequence.
type Step struct {
	Kind  StepKind
	Key   Key
	AppID string
	Delay time.Duration
}

type Sequence []Step

// Delays between the two power-on presses and before launching. The live test
// and the scheduled script have always used different values; both are kept.
const (
	LivePowerOnGap    = 2 * time.Second
	LiveLaunchDelay   = 5 * time.Second
	ScriptPowerOnGap  = 3 * time.Second
	ScriptLaunchDelay = 2 * time.Second
)

// LiveSequence is the wake-and-launch sequence run in-process by the live test.
func LiveSequence(appID string) Sequence {
	return wakeSequence(appID, LivePowerOnGap, LiveLaunchDelay)
}

// ScriptSequence is the same sequence with the timings used by the trigger script.
func ScriptSequence(appID string) Sequence {
	return wakeSequence(appID, ScriptPowerOnGap, ScriptLaunchDelay)
}

// The second power-on covers devices that toggle rather than wake.
func wakeSequence(appID string, powerOnGap, launchDelay time.Duration) Sequence {
	return Sequence{
		{Kind: StepKeypress, Key: KeyPowerOn},
		{Kind: StepWait, Delay: powerOnGap},
		{Kind: StepKeypress, Key: KeyPowerOn},
		{Kind: StepWait, Delay: launchDelay},
		{Kind: StepLaunch, AppID: appID},
	}
}

// Path returns the control endpoint a non-wait step posts to.
func (s Step) Path() string {
	switch s.Kind {
	case StepKeypress:
		return "/keypress/" + string(s.Key)
	case StepLaunch:
		return "/launch/" + url.PathEscape(s.AppID)
	default:
		return ""
	}
}

type SendStatus string

const (
	SendOK      SendStatus = "ok"
	SendFailed  SendStatus = "failed"
	SendTimeout SendStatus = "timeout"
)

// SendResult records the outcome of one command send.
type SendResult struct {
	Step   Step
	Status SendStatus
	Err    error
}

func NewSendResult(step Step, err error) SendResult {
	result := SendResult{Step: step, Status: SendOK, Err: err}
	if err != nil {
		result.Status = SendFailed
		if isTimeout(err) {
			result.Status = SendTimeout
		}
	}
	return result
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
