// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestNewLimiter_Anonymous(t *testing.T) {
	l := NewLimiter(false)
	assert.Equal(t, rate.Limit(3), l.Limit())
	assert.Equal(t, 3, l.Burst())
}

func TestNewLimiter_WithKey(t *testing.T) {
	l := NewLimiter(true)
	assert.Equal(t, rate.Limit(10), l.Limit())
	assert.Equal(t, 10, l.Burst())
}

func TestNewLimiter_AdmitsBurstImmediately(t *testing.T) {
	l := NewLimiter(false)
	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow(), "request %d within burst should be admitted", i+1)
	}
	assert.False(t, l.Allow(), "request beyond burst should be throttled")
}
