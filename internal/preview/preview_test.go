package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/neon-portfolio/internal/content"
)

func TestMarkdown_FollowsPageOrder(t *testing.T) {
	md := Markdown(content.Default())

	order := []string{"## About", "## Education", "## Experience", "## Projects", "## Skills", "## Achievements", "## Contact"}
	last := -1
	for _, h := range order {
		i := strings.Index(md, h)
		require.GreaterOrEqual(t, i, 0, h)
		assert.Greater(t, i, last, h)
		last = i
	}
	assert.Contains(t, md, "Terminal Mail ★")
	assert.Contains(t, md, "█████████░ 90%")
}

func TestMarkdown_SkipsEmptySections(t *testing.T) {
	md := Markdown(&content.Portfolio{Profile: content.Profile{Name: "Solo"}})
	assert.Equal(t, "# Solo\n\n", md)
}

func TestRender(t *testing.T) {
	out, err := Render(content.Default(), 60)
	require.NoError(t, err)
	assert.Contains(t, out, "Terminal Mail")
}

func TestBar(t *testing.T) {
	assert.Equal(t, "░░░░░░░░░░ 0%", bar(-5))
	assert.Equal(t, "██████████ 100%", bar(120))
}
