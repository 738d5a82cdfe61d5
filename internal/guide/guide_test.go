package guide

import (
	"strings"
	"testing"

	"github.com/brafe/qc/internal/bend"
	"github.com/brafe/qc/internal/dimension"
	"github.com/brafe/qc/internal/loi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Settings {
	return Settings{
		Dimensional: dimension.DefaultSpec(),
		Bend:        bend.DefaultParams(),
		LOI:         loi.DefaultLimits(),
	}
}

func TestParseTopic(t *testing.T) {
	got, err := ParseTopic(" LOI ")
	require.NoError(t, err)
	assert.Equal(t, TopicLOI, got)

	_, err = ParseTopic("xray")
	assert.Error(t, err)
}

func TestMarkdownQuotesSettings(t *testing.T) {
	s := defaults()

	dim := Markdown(TopicDimensional, s)
	assert.Contains(t, dim, "| X | Length | 172 mm |")
	assert.Contains(t, dim, "±0.45 mm")

	b := Markdown(TopicBend, s)
	assert.Contains(t, b, "Minimum bending strength: 260 N/cm²")
	assert.Contains(t, b, "Point index")

	l := Markdown(TopicLOI, s)
	assert.Contains(t, l, "Optimal range: 0.5-2.5%")
	assert.Contains(t, l, "Bunsen Burner (Section 3.5.1)")

	s.Dimensional.Tolerance = 0.3
	assert.Contains(t, Markdown(TopicDimensional, s), "±0.3 mm")
}

func TestAllJoinsTopics(t *testing.T) {
	all := All(defaults())
	assert.Equal(t, 2, strings.Count(all, "\n---\n"))
	assert.Empty(t, Markdown("nope", defaults()))
}

func TestSpecs(t *testing.T) {
	out := Specs(defaults())
	assert.Contains(t, out, "172 × 22.4 × 22.4 mm")
	assert.Contains(t, out, SupportEmail)
	assert.Contains(t, out, Hotline)
}
