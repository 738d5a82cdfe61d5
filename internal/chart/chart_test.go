package chart

import (
	"bytes"
	"image/png"
	"math"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

func sampleSeries() Series {
	s := Series{XLabel: "Time (s)"}
	for i := 0; i < 50; i++ {
		f := float64(i * (50 - i))
		s.X = append(s.X, float64(i)*0.1)
		s.Force = append(s.Force, f)
		s.Stress = append(s.Stress, f*1.3)
	}
	return s
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPNG(&buf, sampleSeries(), 4*vg.Inch, 3*vg.Inch))

	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Greater(t, cfg.Width, 0)
	assert.Greater(t, cfg.Height, cfg.Width/2)
}

func TestRenderPNGRejectsBadSeries(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, RenderPNG(&buf, Series{}, vg.Inch, vg.Inch), ErrEmptySeries)

	s := sampleSeries()
	s.Stress = s.Stress[:3]
	assert.Error(t, RenderPNG(&buf, s, vg.Inch, vg.Inch))
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.png")
	require.NoError(t, SavePNG(path, sampleSeries()))
	assert.FileExists(t, path)
}

func TestSavePNGLeavesNoFileOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.png")
	assert.ErrorIs(t, SavePNG(path, Series{}), ErrEmptySeries)
	assert.NoFileExists(t, path)

	s := sampleSeries()
	s.Force = s.Force[:2]
	assert.Error(t, SavePNG(path, s))
	assert.NoFileExists(t, path)

	// rejected by the plotter after the file was created
	s = sampleSeries()
	s.Stress[3] = math.NaN()
	assert.Error(t, SavePNG(path, s))
	assert.NoFileExists(t, path)
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "▁▂▃▄▅▆▇█", Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 20))
	assert.Equal(t, "▁▁▁", Sparkline([]float64{5, 5, 5}, 10))
	assert.Empty(t, Sparkline(nil, 10))
	assert.Empty(t, Sparkline([]float64{1}, 0))

	long := make([]float64, 1000)
	for i := range long {
		long[i] = float64(i)
	}
	got := Sparkline(long, 40)
	assert.Equal(t, 40, utf8.RuneCountInString(got))
	r, _ := utf8.DecodeRuneInString(got)
	assert.Equal(t, '▁', r)
}
