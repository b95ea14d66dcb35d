package frame

import (
	"path/filepath"
	"strings"

	"github.com/datatug/millertug/pkg/files"
	"github.com/gdamore/tcell/v2"
)

const dirColor = tcell.ColorLightSkyBlue

var fileColors = map[string]tcell.Color{
	"exe":  tcell.ColorRed,
	"go":   tcell.ColorAqua,
	"rs":   tcell.ColorOrange,
	"cpp":  tcell.ColorDodgerBlue,
	"c":    tcell.ColorDodgerBlue,
	"h":    tcell.ColorDodgerBlue,
	"cs":   tcell.ColorLime,
	"js":   tcell.ColorYellow,
	"ts":   tcell.ColorDeepSkyBlue,
	"html": tcell.ColorOrangeRed,
	"css":  tcell.ColorViolet,
	"sql":  tcell.ColorSpringGreen,
	"json": tcell.ColorGold,
	"toml": tcell.ColorLightYellow,
	"xml":  tcell.ColorLightYellow,
	"yaml": tcell.ColorLightYellow,
	"yml":  tcell.ColorLightYellow,
	"md":   tcell.ColorBisque,
	"py":   tcell.ColorLightGreen,
	"rb":   tcell.ColorRed,
	"php":  tcell.ColorPurple,
	"sh":   tcell.ColorGreen,
	"bat":  tcell.ColorDarkRed,
	"txt":  tcell.ColorWhite,
	"csv":  tcell.ColorLightGreen,
	"jpg":  tcell.ColorMediumPurple,
	"jpeg": tcell.ColorMediumPurple,
	"png":  tcell.ColorMediumPurple,
	"gif":  tcell.ColorMediumPurple,
	"webp": tcell.ColorMediumPurple,
	"mov":  tcell.ColorLightSalmon,
	"mp4":  tcell.ColorLightSalmon,
	"log":  tcell.ColorRosyBrown,
	"zip":  tcell.ColorIndianRed,
	"gz":   tcell.ColorIndianRed,
	"tar":  tcell.ColorIndianRed,
}

// ColorByFileName picks a color from the file extension.
func ColorByFileName(name string) tcell.Color {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if color, ok := fileColors[ext]; ok {
		return color
	}
	return tcell.ColorWhiteSmoke
}

func entryColor(e files.Entry) tcell.Color {
	if e.IsDir() {
		return dirColor
	}
	return ColorByFileName(e.Name())
}

// entryLabel is the text shown for e in a column.
func entryLabel(e files.Entry) string {
	if e.IsDir() {
		return e.Name() + "/"
	}
	return e.Name()
}
