package mcp

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/pulseboard/internal/auth"
)

// actorHeaderMiddleware extracts the upstream-verified identity headers
// and puts the actor on the context. Protocol methods pass through.
func actorHeaderMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if method == "initialize" || method == "ping" {
				return next(ctx, method, req)
			}

			extra := req.GetExtra()
			if extra == nil || extra.Header == nil {
				return nil, fmt.Errorf("unauthorized: missing identity headers")
			}

			actor := auth.Actor{
				ID:     extra.Header.Get("X-Actor-Id"),
				Name:   extra.Header.Get("X-Actor-Name"),
				Role:   auth.Role(extra.Header.Get("X-Actor-Role")),
				TeamID: extra.Header.Get("X-Team-Id"),
			}
			if actor.ID == "" || !actor.Role.Valid() {
				return nil, fmt.Errorf("unauthorized: missing or invalid identity")
			}

			return next(auth.WithActor(ctx, actor), method, req)
		}
	}
}

// staticActorMiddleware injects a fixed actor. Used in stdio mode, where
// the process serves a single local caller.
func staticActorMiddleware(actor auth.Actor) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			return next(auth.WithActor(ctx, actor), method, req)
		}
	}
}

func actorFrom(ctx context.Context) (auth.Actor, error) {
	actor, ok := auth.ActorFromContext(ctx)
	if !ok {
		return auth.Actor{}, fmt.Errorf("unauthorized: no actor on context")
	}
	return actor, nil
}

func requireAdmin(ctx context.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	if actor.Role != auth.RoleAdmin {
		return &APIError{Code: "ACCESS_DENIED", Message: "access denied"}
	}
	return nil
}
