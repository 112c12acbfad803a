package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawWriter(t *testing.T) {
	a := assert.New(t)

	var buf bytes.Buffer
	w := &rawWriter{w: &buf}
	n, err := w.Write([]byte("one\ntwo\n"))
	a.NoError(err)
	a.Equal(8, n)
	a.Equal("one\r\ntwo\r\n", buf.String())
}
