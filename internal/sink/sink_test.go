package sink_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/nikolayk812/autoposter/internal/sink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	p := sink.NewPrint(&buf)

	require.NoError(t, p.Open(t.Context(), "tg://resolve?domain=shop&text=hi"))
	require.NoError(t, p.Open(t.Context(), "https://t.me/shop?text=hi"))

	assert.Equal(t, "tg://resolve?domain=shop&text=hi\nhttps://t.me/shop?text=hi\n", buf.String())
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed pipe")
}

func TestPrint_WriteError(t *testing.T) {
	err := sink.NewPrint(brokenWriter{}).Open(t.Context(), "https://t.me/shop")
	require.ErrorContains(t, err, "closed pipe")
}
