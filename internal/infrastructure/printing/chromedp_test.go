package printing

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/iletigo/mutabakat/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestA4PrintParams(t *testing.T) {
	p := a4PrintParams()

	assert.InDelta(t, 8.27, p.paperWidth, 0.01)
	assert.InDelta(t, 11.69, p.paperHeight, 0.01)
	assert.InDelta(t, mmToInches(20), p.marginTop, 0.0001)
	assert.Equal(t, p.marginTop, p.marginLeft)
}

func TestNewChromedpRenderer_Defaults(t *testing.T) {
	r := NewChromedpRenderer(config.PrintingConfig{}, nil)
	defer r.Close()

	assert.Equal(t, defaultChromeTimeout, r.timeout)
	assert.NotNil(t, r.logger)
	assert.NotNil(t, r.allocCtx)
}

func TestChromedpRenderer_RejectsEmptyHTML(t *testing.T) {
	r := NewChromedpRenderer(config.PrintingConfig{Timeout: time.Second}, zaptest.NewLogger(t))
	defer r.Close()

	_, err := r.Convert(context.Background(), nil)
	assert.Error(t, err)
}

func findChrome() bool {
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "headless-shell"} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

func TestChromedpRenderer_ConvertReport(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Chrome test in short mode")
	}
	if !findChrome() {
		t.Skip("Chrome is not installed")
	}

	report, err := NewReportRenderer()
	require.NoError(t, err)
	html, err := report.Render(sampleView(), sampleDetails(), generatedAt)
	require.NoError(t, err)

	r := NewChromedpRenderer(config.PrintingConfig{NoSandbox: true, Timeout: time.Minute}, zaptest.NewLogger(t))
	defer r.Close()

	pdf, err := r.Convert(context.Background(), html)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
