package controller

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubWriter struct {
	n   int
	err error
}

func (w stubWriter) Write([]byte) (int, error) { return w.n, w.err }

// TestWriteFull verifies short and failed writes are both errors.
func TestWriteFull(t *testing.T) {
	boom := errors.New("boom")
	assert.NoError(t, writeFull(stubWriter{n: 3}, []byte("abc")))
	assert.ErrorIs(t, writeFull(stubWriter{n: 2}, []byte("abc")), io.ErrShortWrite)
	assert.ErrorIs(t, writeFull(stubWriter{n: 3, err: boom}, []byte("abc")), boom)
}
