package chrome

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer_Defaults(t *testing.T) {
	r := NewRenderer(Config{})

	assert.Equal(t, defaultTimeout, r.config.Timeout)
	assert.NotNil(t, r.logger)
}

func TestPDFParams_A4WithMargins(t *testing.T) {
	params := pdfParams()

	assert.InDelta(t, 8.27, params.paperWidth, 0.01)
	assert.InDelta(t, 11.69, params.paperHeight, 0.01)
	assert.InDelta(t, 0.3937, params.margin, 0.001)
	assert.True(t, params.printBackground)
}

func TestRender_RejectsEmptyMarkup(t *testing.T) {
	r := NewRenderer(Config{Timeout: time.Second})

	_, err := r.Render(context.Background(), "   ", FormatPDF)

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
}

func TestRender_RejectsUnknownFormat(t *testing.T) {
	r := NewRenderer(Config{Timeout: time.Second})

	_, err := r.Render(context.Background(), "<html></html>", Format("gif"))

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeRenderFailed, renderErr.Code)
}

func TestRenderError_Unwrap(t *testing.T) {
	cause := context.DeadlineExceeded
	err := NewRenderError(ErrCodeRenderTimeout, "rendering timed out", cause)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "rendering timed out: context deadline exceeded", err.Error())
}

func TestExecOptions_NoSandbox(t *testing.T) {
	plain := NewRenderer(Config{})
	sandboxless := NewRenderer(Config{NoSandbox: true})

	assert.Len(t, sandboxless.execOptions(), len(plain.execOptions())+1)
}
