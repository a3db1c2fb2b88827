package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Editor colours. Panels are dark so the world canvas stands out.
var (
	panelColor      = color.RGBA{32, 34, 40, 255}
	toolbarColor    = color.RGBA{58, 62, 72, 255}
	listColor       = color.RGBA{46, 49, 57, 255}
	listSelected    = color.RGBA{72, 110, 170, 255}
	buttonIdle      = color.RGBA{84, 90, 104, 255}
	buttonHover     = color.RGBA{104, 112, 128, 255}
	buttonPressed   = color.RGBA{140, 170, 220, 255}
	textColor       = color.RGBA{230, 232, 236, 255}
	disabledColor   = color.Gray{Y: 128}
	inputBackground = color.RGBA{236, 238, 242, 255}
)

var sectionLabelColor = &widget.LabelColor{Idle: textColor, Disabled: disabledColor}

func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func buttonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:    solidNineSlice(buttonIdle),
		Hover:   solidNineSlice(buttonHover),
		Pressed: solidNineSlice(buttonPressed),
	}
}

func newEditorTheme(fontFace *text.Face) *widget.Theme {
	return &widget.Theme{
		ListTheme: &widget.ListParams{
			EntryFace: fontFace,
			EntryColor: &widget.ListEntryColor{
				Unselected:          textColor,
				Selected:            color.White,
				DisabledUnselected:  disabledColor,
				DisabledSelected:    disabledColor,
				SelectingBackground: buttonHover,
				SelectedBackground:  listSelected,
			},
			ScrollContainerImage: &widget.ScrollContainerImage{
				Idle: solidNineSlice(listColor),
				Mask: solidNineSlice(listColor),
			},
		},
		PanelTheme: &widget.PanelParams{
			BackgroundImage: solidNineSlice(panelColor),
		},
		ButtonTheme: &widget.ButtonParams{
			Image:     buttonImage(),
			TextFace:  fontFace,
			TextColor: &widget.ButtonTextColor{Idle: textColor, Disabled: disabledColor},
		},
	}
}
