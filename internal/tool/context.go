package tool

import "context"

type contextKey string

const invocationKey contextKey = "invocation"

// WithInvocationID sets the ID the next invocation run with ctx logs under.
// Without it Runner generates one.
func WithInvocationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, invocationKey, id)
}

// InvocationIDFromContext returns the ID set by WithInvocationID.
func InvocationIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(invocationKey).(string)
	return id, ok && id != ""
}

// Tee returns a sink that hands every line to each non-nil sink in order.
// It returns nil when no sink is given, so the stream stays unredirected.
func Tee(sinks ...LineSink) LineSink {
	var active []LineSink
	for _, s := range sinks {
		if s != nil {
			active = append(active, s)
		}
	}
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}
	return func(line string) {
		for _, s := range active {
			s(line)
		}
	}
}
