package render

import (
	"strings"
	"testing"

	"github.com/hollowmoor/hollowmoor/server/internal/grid"
)

func TestLevelDimensions(t *testing.T) {
	level, err := grid.NewLevel(8, 4, grid.FeatFloor)
	if err != nil {
		t.Fatalf("failed to create level: %v", err)
	}

	out := Level(level)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if len(line) != 8 {
			t.Errorf("row %d has %d columns, want 8", i, len(line))
		}
	}
}

func TestLevelGlyphs(t *testing.T) {
	level, err := grid.NewLevel(3, 1, grid.FeatFloor)
	if err != nil {
		t.Fatalf("failed to create level: %v", err)
	}
	level.SetFeature(0, 0, grid.FeatPermWall)
	level.SetFeature(2, 0, grid.FeatStairsDown)

	out := Level(level)
	if out != "#.>\n" {
		t.Errorf("rendered %q, want %q", out, "#.>\n")
	}
}

func TestSymbolCoversAllFeatures(t *testing.T) {
	for f := grid.FeatRock; f <= grid.FeatTrack; f++ {
		if Symbol(f) == '?' {
			t.Errorf("feature %v has no glyph", f)
		}
	}
}

func TestLegendMentionsCoreGlyphs(t *testing.T) {
	legend := Legend()
	for _, s := range []string{"[#]", "[.]", "[~]", "[O]"} {
		if !strings.Contains(legend, s) {
			t.Errorf("legend missing %s", s)
		}
	}
}
