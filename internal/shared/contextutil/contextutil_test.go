package contextutil_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jyhens/Layer2-Application/internal/domain"
	"github.com/jyhens/Layer2-Application/internal/shared/contextutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestCallerRoundTrip(t *testing.T) {
	ctx := context.Background()

	_, ok := contextutil.GetCaller(ctx)
	assert.False(t, ok)

	caller := domain.Caller{EmployeeID: uuid.New(), Name: "Peter", Role: domain.RoleApprover}
	ctx = contextutil.WithCaller(ctx, caller)
	ctx = contextutil.WithRequestID(ctx, "req-1")

	got, ok := contextutil.GetCaller(ctx)
	assert.True(t, ok)
	assert.Equal(t, caller, got)

	md := contextutil.ExtractMetadata(ctx)
	assert.Equal(t, "req-1", md.RequestID)
	assert.Equal(t, caller.EmployeeID.String(), md.CallerID)
	assert.Equal(t, "APPROVER", md.Role)
}

func TestGetLogger_Fallbacks(t *testing.T) {
	assert.NotNil(t, contextutil.GetLogger(context.Background(), nil))

	def := zap.NewNop()
	assert.Same(t, def, contextutil.GetLogger(context.Background(), def))

	scoped := zap.NewNop().Named("scoped")
	ctx := contextutil.WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, contextutil.GetLogger(ctx, def))
}
