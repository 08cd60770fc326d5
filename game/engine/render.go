package engine

import "strings"

// Glyph is the single-character picture of a plot
func Glyph(c Crop) string {
	if c.Stage == Empty || c.Kind == "" {
		return "⬜"
	}
	switch c.Stage {
	case Planted:
		return "🌱"
	case Dead:
		return "💀"
	}
	switch c.Kind {
	case Wheat:
		if c.Stage == Harvestable {
			return "🥖"
		}
		return "🌾"
	case Tomato:
		return "🍅"
	case Carrot:
		return "🥕"
	}
	return "⬜"
}

// RenderFarm draws the grid one row per line, x selecting the row
func RenderFarm(farm *Farm) string {
	var b strings.Builder
	for _, row := range farm.Grid {
		glyphs := make([]string, len(row))
		for j, c := range row {
			glyphs[j] = Glyph(c)
		}
		b.WriteString(strings.Join(glyphs, " "))
		b.WriteString("\n")
	}
	return b.String()
}
