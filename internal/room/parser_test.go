package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDeaths(t *testing.T) {
	t.Run("No Marker", func(t *testing.T) {
		names := parseDeaths("GM: The storm rages on.\nAlice: We hold the line.")
		assert.Nil(t, names)
	})

	t.Run("Single Name", func(t *testing.T) {
		names := parseDeaths("GM: A wave crashes over the bow.\nDEAD: Bob")
		assert.Equal(t, []string{"Bob"}, names)
	})

	t.Run("Multiple Names With Spaces", func(t *testing.T) {
		names := parseDeaths("DEAD: Bob,  Carol , Dave")
		assert.Equal(t, []string{"Bob", "Carol", "Dave"}, names)
	})

	t.Run("Trailing Comma Tolerated", func(t *testing.T) {
		names := parseDeaths("DEAD: Bob, Carol,")
		assert.Equal(t, []string{"Bob", "Carol"}, names)
	})

	t.Run("Case Insensitive Keyword", func(t *testing.T) {
		names := parseDeaths("dead: Bob")
		assert.Equal(t, []string{"Bob"}, names)
	})

	t.Run("Keyword Without Colon Ignored", func(t *testing.T) {
		names := parseDeaths("DEAD silence fell over the room.")
		assert.Nil(t, names)
	})

	t.Run("First Matching Line Wins", func(t *testing.T) {
		names := parseDeaths("DEAD: Bob\nDEAD: Carol")
		assert.Equal(t, []string{"Bob"}, names)
	})

	t.Run("Marker Mid Text", func(t *testing.T) {
		text := "GM: The oxygen alarm blares.\n  DEAD: Eve\nAlice: No..."
		assert.Equal(t, []string{"Eve"}, parseDeaths(text))
	})
}

func TestParseResolution(t *testing.T) {
	t.Run("No Marker", func(t *testing.T) {
		names, ok := parseResolution("GM: The debate continues.")
		assert.False(t, ok)
		assert.Nil(t, names)
	})

	t.Run("With Outcome Prefix", func(t *testing.T) {
		names, ok := parseResolution("RESOLUTION: SURVIVORS: Alice, Carol")
		assert.True(t, ok)
		assert.Equal(t, []string{"Alice", "Carol"}, names)
	})

	t.Run("Without Prefix", func(t *testing.T) {
		names, ok := parseResolution("RESOLUTION: Alice, Carol")
		assert.True(t, ok)
		assert.Equal(t, []string{"Alice", "Carol"}, names)
	})

	t.Run("Empty Name List", func(t *testing.T) {
		names, ok := parseResolution("RESOLUTION: SURVIVORS:")
		assert.True(t, ok)
		assert.Empty(t, names)
	})

	t.Run("Lowercase Keyword", func(t *testing.T) {
		names, ok := parseResolution("resolution: released: Bob")
		assert.True(t, ok)
		assert.Equal(t, []string{"Bob"}, names)
	})

	t.Run("Both Markers In One Reply", func(t *testing.T) {
		text := "GM: It ends here.\nDEAD: Dave\nRESOLUTION: SURVIVORS: Alice, Bob"
		assert.Equal(t, []string{"Dave"}, parseDeaths(text))
		names, ok := parseResolution(text)
		assert.True(t, ok)
		assert.Equal(t, []string{"Alice", "Bob"}, names)
	})
}

func TestHasSpeakerLine(t *testing.T) {
	text := "GM: The lifeboat rocks.\nAlice: I say we ration the water.\nBob : Agreed."

	t.Run("Present", func(t *testing.T) {
		assert.True(t, hasSpeakerLine(text, "Alice"))
	})

	t.Run("Space Before Colon", func(t *testing.T) {
		assert.True(t, hasSpeakerLine(text, "Bob"))
	})

	t.Run("Case Insensitive", func(t *testing.T) {
		assert.True(t, hasSpeakerLine(text, "alice"))
	})

	t.Run("Absent", func(t *testing.T) {
		assert.False(t, hasSpeakerLine(text, "Carol"))
	})

	t.Run("Mentioned But Not Speaking", func(t *testing.T) {
		assert.False(t, hasSpeakerLine("GM: Carol looks worried.", "Carol"))
	})
}
