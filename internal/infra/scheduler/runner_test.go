package scheduler_test

import (
	"context"
	"strings"
)

type call struct {
	name  string
	args  []string
	stdin string
}

// recordingRunner replays canned responses keyed by "name arg0".
type recordingRunner struct {
	calls     []call
	responses map[string]response
}

type response struct {
	out string
	err error
}

func (r *recordingRunner) Run(_ context.Context, stdin []byte, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, call{name: name, args: args, stdin: string(stdin)})

	key := name
	if len(args) > 0 {
		key += " " + args[0]
	}
	resp := r.responses[key]
	return []byte(resp.out), resp.err
}

func (r *recordingRunner) last() call {
	return r.calls[len(r.calls)-1]
}

func joinArgs(c call) string {
	return strings.Join(c.args, " ")
}
