package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor returns an attribute to add to a record logged with ctx.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

type (
	operationKey struct{}
	accountIDKey struct{}
)

// WithOperation stores the operation name in ctx for OperationExtractor.
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, operationKey{}, op)
}

// WithAccountID stores the account id in ctx for AccountIDExtractor.
func WithAccountID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, accountIDKey{}, id)
}

// OperationExtractor adds the "operation" attribute set by WithOperation.
func OperationExtractor(ctx context.Context) (slog.Attr, bool) {
	if op, ok := ctx.Value(operationKey{}).(string); ok && op != "" {
		return Operation(op), true
	}
	return slog.Attr{}, false
}

// AccountIDExtractor adds the "account_id" attribute set by WithAccountID.
func AccountIDExtractor(ctx context.Context) (slog.Attr, bool) {
	if id, ok := ctx.Value(accountIDKey{}).(string); ok && id != "" {
		return AccountID(id), true
	}
	return slog.Attr{}, false
}
