//go:build windows

package webgpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_AdapterInfo(t *testing.T) {
	backend := newOrSkip(t)

	assert.True(t, strings.HasPrefix(backend.Name(), "webgpu"))
	if backend.adapterInfo != nil {
		assert.Contains(t, backend.Name(), backend.adapterInfo.Device)
	}
	assert.NotNil(t, backend.instance)
	assert.NotNil(t, backend.queue)
}

func TestIsAvailable_MatchesNew(t *testing.T) {
	backend, err := New()
	if err != nil {
		assert.ErrorIs(t, err, ErrUnavailable)
		return
	}
	defer backend.Release()
	assert.True(t, IsAvailable())
}
