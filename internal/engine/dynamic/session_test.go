package dynamic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionClose_Idempotent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var browserCancels, allocCancels int

	s := &Session{
		ctx:         ctx,
		cancel:      func() { browserCancels++; cancel() },
		allocCancel: func() { allocCancels++ },
	}

	s.Close()
	s.Close()

	assert.Equal(t, 1, browserCancels)
	assert.Equal(t, 1, allocCancels)
	assert.ErrorIs(t, s.Context().Err(), context.Canceled)
}

func TestAllocatorOptions_ProxyAndExtras(t *testing.T) {
	base := allocatorOptions(SessionOptions{Headless: true}, "")
	withProxy := allocatorOptions(SessionOptions{Headless: true, Proxy: "http://127.0.0.1:8080"}, "")
	withPath := allocatorOptions(SessionOptions{Headless: true}, "/opt/chrome/chrome")

	assert.Len(t, withProxy, len(base)+1)
	assert.Len(t, withPath, len(base)+1)
}
