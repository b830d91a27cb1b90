package middleware

import (
	"context"
	"net/http"

	"github.com/rpattn/marvel/internal/characterloader"
	"github.com/rpattn/marvel/internal/repository"
)

type ctxKey string

const characterLoaderKey ctxKey = "characterLoader"

// DataLoaderMiddleware attaches a fresh character loader to the request context
func DataLoaderMiddleware(repo repository.CharacterRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			loader := characterloader.NewCharacterLoader(repo)
			ctx := ContextWithCharacterLoader(r.Context(), loader)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ContextWithCharacterLoader stores loader in ctx.
func ContextWithCharacterLoader(ctx context.Context, loader *characterloader.CharacterLoader) context.Context {
	return context.WithValue(ctx, characterLoaderKey, loader)
}

// CharacterLoaderFromContext retrieves the loader from context
func CharacterLoaderFromContext(ctx context.Context) *characterloader.CharacterLoader {
	if l, ok := ctx.Value(characterLoaderKey).(*characterloader.CharacterLoader); ok {
		return l
	}
	return nil
}
