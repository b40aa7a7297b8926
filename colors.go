package tschart

import (
	"fmt"
	"math/rand"
	"time"
)

type Palette []string

var (
	Category10 Palette
	Tableau10  Palette
)

func init() {
	Category10 = splitColorString("1f77b4ff7f0e2ca02cd627289467bd8c564be377c27f7f7fbcbd2217becf")
	Tableau10 = splitColorString("4e79a7f28e2ce1575976b7b259a14fedc949af7aa1ff9da79c755fbab0ab")
}

func splitColorString(str string) []string {
	var arr []string
	for i := 0; i < len(str); i += 6 {
		arr = append(arr, "#"+str[i:i+6])
	}
	return arr
}

// ColorSource gives the default color of the serie at the given index.
type ColorSource interface {
	Color(int) string
}

type ColorFunc func(int) string

func (f ColorFunc) Color(i int) string {
	return f(i)
}

// PaletteColors cycles through the colors of the palette.
func PaletteColors(p Palette) ColorSource {
	return ColorFunc(func(i int) string {
		if len(p) == 0 {
			return "black"
		}
		return p[i%len(p)]
	})
}

// FixedColors returns the given colors in order and black once they are
// exhausted.
func FixedColors(colors ...string) ColorSource {
	return ColorFunc(func(i int) string {
		if i < len(colors) {
			return colors[i]
		}
		return "black"
	})
}

type randomColors struct {
	rnd *rand.Rand
}

// RandomColors returns a source of pseudo-random colors.
func RandomColors(seed int64) ColorSource {
	return randomColors{
		rnd: rand.New(rand.NewSource(seed)),
	}
}

func (r randomColors) Color(_ int) string {
	return fmt.Sprintf("#%06x", r.rnd.Intn(0x1000000))
}

func defaultColors() ColorSource {
	return RandomColors(time.Now().UnixNano())
}

// keptColors serves the colors already given to the series and asks src only
// for the series added since.
type keptColors struct {
	list []string
	src  ColorSource
}

func (k keptColors) Color(i int) string {
	if i < len(k.list) {
		return k.list[i]
	}
	return k.src.Color(i)
}
