// Package actorctx carries who is driving a request, e.g. "http:<request id>"
// or "shell:<session id>", so log lines from deep layers can be attributed.
package actorctx

import "context"

type ctxKey struct{}

func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, ctxKey{}, actor)
}

func ActorFrom(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKey{}).(string)

	return v, ok && v != ""
}
