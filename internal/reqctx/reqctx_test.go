package reqctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithRun(t *testing.T) {
	ctx := WithRun(context.Background(), "full")
	r := FromContext(ctx)

	assert.Len(t, r.ID, 16)
	assert.Equal(t, "full", r.Mode)
	assert.NotEqual(t, r.ID, FromContext(WithRun(context.Background(), "full")).ID)
}

func TestFromContext_Missing(t *testing.T) {
	assert.Equal(t, "unknown", FromContext(context.Background()).ID)
}
