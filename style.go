package clashreport

import (
	"dario.cat/mergo"
	"github.com/BurntSushi/toml"
)

// Style holds the report appearance knobs. The zero value is not useful;
// start from DefaultStyle or LoadStyle.
type Style struct {
	HeaderFontSize  float64 `toml:"header_font_size"`
	HeaderFill      string  `toml:"header_fill"`
	HeaderFontColor string  `toml:"header_font_color"`
	AltRowFill      string  `toml:"alt_row_fill"`
	DataFontColor   string  `toml:"data_font_color"`
	// ImageWidth is the display width, in inches, of images embedded in
	// the Word report. Height follows the image's aspect ratio.
	ImageWidth float64 `toml:"image_width"`
}

func DefaultStyle() Style {
	return Style{
		HeaderFontSize:  18,
		HeaderFill:      "#2C7676",
		HeaderFontColor: "#FFFFFF",
		AltRowFill:      "#DCE6F1",
		DataFontColor:   "#000000",
		ImageWidth:      4,
	}
}

// LoadStyle reads a TOML style file. Fields left out of the file keep
// their defaults.
func LoadStyle(path string) (Style, error) {
	var s Style
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return Style{}, err
	}
	if err := mergo.Merge(&s, DefaultStyle()); err != nil {
		return Style{}, err
	}
	return s, nil
}
