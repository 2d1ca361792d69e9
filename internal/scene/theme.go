package scene

import (
	"fmt"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme is the track palette.
type Theme struct {
	Name      string
	Grass     colorful.Color
	Road      colorful.Color
	KerbRed   colorful.Color
	KerbWhite colorful.Color
	UI        colorful.Color
	CheckerA  colorful.Color
	CheckerB  colorful.Color
	Pole      colorful.Color
	Flash     colorful.Color
	Wheel     colorful.Color
	Trim      colorful.Color
}

type themeHex struct {
	grass, road, kerbRed, kerbWhite, ui string
}

var themeDefs = map[string]themeHex{
	"classic": {grass: "#0b5d1e", road: "#2b2f36", kerbRed: "#d62828", kerbWhite: "#f1f1f1", ui: "#e6edf3"},
	"dusk":    {grass: "#23304a", road: "#1a1c24", kerbRed: "#ff4f79", kerbWhite: "#d9d4ff", ui: "#ffd6a5"},
	"desert":  {grass: "#c89b5a", road: "#4a4039", kerbRed: "#b23a1e", kerbWhite: "#fff4dc", ui: "#fffaf0"},
}

// DefaultTheme is used when no theme is named.
const DefaultTheme = "classic"

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("scene: bad colour %q: %v", s, err))
	}
	return c
}

// ThemeByName returns a built-in theme.
func ThemeByName(name string) (Theme, error) {
	if name == "" {
		name = DefaultTheme
	}
	d, ok := themeDefs[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q (have %v)", name, ThemeNames())
	}
	return Theme{
		Name:      name,
		Grass:     mustHex(d.grass),
		Road:      mustHex(d.road),
		KerbRed:   mustHex(d.kerbRed),
		KerbWhite: mustHex(d.kerbWhite),
		UI:        mustHex(d.ui),
		CheckerA:  mustHex("#eeeeee"),
		CheckerB:  mustHex("#111111"),
		Pole:      mustHex("#ffffff"),
		Flash:     mustHex("#ffffff"),
		Wheel:     mustHex("#111111"),
		Trim:      mustHex("#ffffff"),
	}, nil
}

// ThemeNames lists the built-in themes in sorted order.
func ThemeNames() []string {
	out := make([]string, 0, len(themeDefs))
	for k := range themeDefs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
