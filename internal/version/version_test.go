package version

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestColoredPlain(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "1.2.3-rc1"
	assert.Equal(t, "1.2.3-rc1", Colored())

	Version = "dev"
	assert.Equal(t, "dev", Colored())
}

func TestSplit(t *testing.T) {
	major, minor, patch, suffix, ok := split("10.0.7+meta")
	assert.True(t, ok)
	assert.Equal(t, []string{"10", "0", "7", "+meta"}, []string{major, minor, patch, suffix})

	_, _, _, _, ok = split("1.x.3")
	assert.False(t, ok)
	_, _, _, _, ok = split("1.2")
	assert.False(t, ok)
}
