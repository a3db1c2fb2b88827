package main

import (
	"bytes"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

const leftPanelWidth = 220

// EditorUI bundles the widgets the game updates every frame.
type EditorUI struct {
	*ebitenui.UI
	ToolBar   *ToolBar
	LeftPanel *LeftPanel
	Status    *widget.Text
}

func BuildEditorUI(onToolSelected func(tool Tool), cb LeftPanelCallbacks) *EditorUI {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}

	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newEditorTheme(&fontFace)

	toolbarContainer, toolBar := buildToolBar(ui.PrimaryTheme, &fontFace, onToolSelected)
	leftPanel := buildLeftPanelUI(&fontFace, cb)
	status := widget.NewText(
		widget.TextOpts.Text("", &fontFace, textColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.MinSize(400, 24)),
	)

	// Root container: anchor layout
	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	leftPanel.Container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	toolbarContainer.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	status.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionEnd,
	}
	root.AddChild(leftPanel.Container)
	root.AddChild(toolbarContainer)
	root.AddChild(status)
	ui.Container = root

	return &EditorUI{UI: ui, ToolBar: toolBar, LeftPanel: leftPanel, Status: status}
}
