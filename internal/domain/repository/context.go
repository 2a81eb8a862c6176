package repository

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

// OperatorIDKey is the context key for the authenticated operator
const OperatorIDKey ctxKey = "operator_id"

// WithOperator adds the operator ID to the context
func WithOperator(ctx context.Context, operatorID uuid.UUID) context.Context {
	return context.WithValue(ctx, OperatorIDKey, operatorID)
}

// GetOperatorID extracts the operator ID from the context
func GetOperatorID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(OperatorIDKey).(uuid.UUID)
	return id, ok
}
