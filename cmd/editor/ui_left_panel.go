package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/worldbuilder/palette"
)

// LeftPanelCallbacks are the session commands the side panel triggers.
type LeftPanelCallbacks struct {
	OnLayerSelected    func(name string)
	OnArtifactSelected func(name string)
	OnTemplateSelected func(name string)
	OnMacroSelected    func(name string)
}

// LeftPanel holds the list widgets so they can be refreshed after a palette
// reload or a world change.
type LeftPanel struct {
	Container     *widget.Container
	FileNameInput *widget.TextInput

	layers    *widget.List
	artifacts *widget.List
	templates *widget.List
	macros    *widget.List

	// suppressEvents keeps programmatic selections from reaching callbacks.
	suppressEvents bool
}

type paletteEntry struct {
	Name  string
	Model string
}

func buildLeftPanelUI(fontFace *text.Face, cb LeftPanelCallbacks) *LeftPanel {
	lp := &LeftPanel{}
	lp.Container = widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(leftPanelWidth, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelColor)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)

	lp.FileNameInput = addFileNameSection(lp.Container, fontFace)
	lp.layers = lp.addList("Layers", fontFace, 80, cb.OnLayerSelected)
	lp.artifacts = lp.addList("Artifacts", fontFace, 160, cb.OnArtifactSelected)
	lp.templates = lp.addList("Entities", fontFace, 100, cb.OnTemplateSelected)
	lp.macros = lp.addList("Macros", fontFace, 80, cb.OnMacroSelected)
	return lp
}

func (lp *LeftPanel) addList(title string, fontFace *text.Face, minHeight int, onSelected func(string)) *widget.List {
	lp.Container.AddChild(widget.NewLabel(
		widget.LabelOpts.Text(title, fontFace, sectionLabelColor),
	))
	list := widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			switch v := e.(type) {
			case paletteEntry:
				if v.Model == "" {
					return v.Name
				}
				return fmt.Sprintf("%s (%s)", v.Name, v.Model)
			case string:
				return v
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if lp.suppressEvents || onSelected == nil {
				return
			}
			switch v := args.Entry.(type) {
			case paletteEntry:
				onSelected(v.Name)
			case string:
				onSelected(v)
			}
		}),
	)
	list.GetWidget().MinHeight = minHeight
	lp.Container.AddChild(list)
	return list
}

// SetLayers fills the layer list and selects current.
func (lp *LeftPanel) SetLayers(names []string, current string) {
	lp.suppressEvents = true
	defer func() { lp.suppressEvents = false }()
	entries := make([]any, len(names))
	for i, n := range names {
		entries[i] = n
	}
	lp.layers.SetEntries(entries)
	if current != "" {
		lp.layers.SetSelectedEntry(current)
	}
}

// SetPalette refreshes the artifact and entity template lists.
func (lp *LeftPanel) SetPalette(p *palette.Palette) {
	lp.suppressEvents = true
	defer func() { lp.suppressEvents = false }()
	arts := make([]any, 0, len(p.Artifacts))
	for _, a := range p.Artifacts {
		arts = append(arts, paletteEntry{Name: a.Name, Model: a.Model})
	}
	lp.artifacts.SetEntries(arts)
	tmpls := make([]any, 0, len(p.Entities))
	for _, e := range p.Entities {
		tmpls = append(tmpls, paletteEntry{Name: e.Name, Model: e.Type})
	}
	lp.templates.SetEntries(tmpls)
}

func (lp *LeftPanel) SetMacros(names []string) {
	lp.suppressEvents = true
	defer func() { lp.suppressEvents = false }()
	entries := make([]any, len(names))
	for i, n := range names {
		entries[i] = n
	}
	lp.macros.SetEntries(entries)
}

func addFileNameSection(parent *widget.Container, fontFace *text.Face) *widget.TextInput {
	fileLabel := widget.NewLabel(
		widget.LabelOpts.Text("File", fontFace, sectionLabelColor),
	)
	fileNameInput := widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(leftPanelWidth-20, 28),
		),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     solidNineSlice(inputBackground),
			Disabled: solidNineSlice(disabledColor),
		}),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:     color.Black,
			Disabled: disabledColor,
			Caret:    color.Black,
		}),
		widget.TextInputOpts.Face(fontFace),
	)
	parent.AddChild(fileLabel)
	parent.AddChild(fileNameInput)
	return fileNameInput
}
