package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/worldbuilder/brush"
)

// Tool is a toolbar button. Each one arms a brush behavior.
type Tool int

const (
	ToolSelect Tool = iota
	ToolPaint
	ToolErase
	ToolSample
	ToolResize
)

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "Select"
	case ToolPaint:
		return "Paint"
	case ToolErase:
		return "Erase"
	case ToolSample:
		return "Sample"
	case ToolResize:
		return "Resize"
	default:
		return "Unknown"
	}
}

// toolFor maps a brush behavior back to the button that shows it.
func toolFor(k brush.Kind) Tool {
	switch k {
	case brush.KindPlace:
		return ToolPaint
	case brush.KindClear:
		return ToolErase
	case brush.KindSample:
		return ToolSample
	case brush.KindResizeZone:
		return ToolResize
	default:
		return ToolSelect
	}
}

// ToolBar contains the radio-group state for the floating tool buttons.
type ToolBar struct {
	group   *widget.RadioGroup
	buttons []*widget.Button
	syncing bool
}

// SetTool highlights t without reporting a selection.
func (tb *ToolBar) SetTool(t Tool) {
	idx := int(t)
	if tb == nil || tb.group == nil || idx < 0 || idx >= len(tb.buttons) {
		return
	}
	if tb.group.Active() == tb.buttons[idx] {
		return
	}
	tb.syncing = true
	tb.group.SetActive(tb.buttons[idx])
	tb.syncing = false
}

func buildToolBar(theme *widget.Theme, fontFace *text.Face, onToolSelected func(tool Tool)) (*widget.Container, *ToolBar) {
	tools := []Tool{ToolSelect, ToolPaint, ToolErase, ToolSample, ToolResize}
	buttonTextColor := &widget.ButtonTextColor{
		Idle:     textColor,
		Hover:    textColor,
		Pressed:  color.Black,
		Disabled: disabledColor,
	}

	toolbar := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(320, 48),
		),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(toolbarColor)),
	)

	tb := &ToolBar{}
	for _, t := range tools {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(t.String(), fontFace, buttonTextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(56, 40),
			),
		)
		tb.buttons = append(tb.buttons, btn)
		toolbar.AddChild(btn)
	}

	elements := make([]widget.RadioGroupElement, 0, len(tb.buttons))
	for _, b := range tb.buttons {
		elements = append(elements, b)
	}

	tb.group = widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			if onToolSelected == nil || tb.syncing {
				return
			}
			for idx, b := range tb.buttons {
				if args.Active == b {
					onToolSelected(tools[idx])
					return
				}
			}
		}),
	)
	return toolbar, tb
}
