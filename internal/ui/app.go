package ui

import (
	"fmt"

	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/oligo/gioview/menu"
	"github.com/oligo/gioview/theme"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/document"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/draft"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/plan"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/units"
)

// toolbarDraw and toolbarModify are the two toolbar rows: creation tools
// first, then the tools that edit what exists.
var (
	toolbarDraw = []draft.Tool{
		draft.ToolSelect, draft.ToolWall, draft.ToolLine, draft.ToolPolyline,
		draft.ToolRoom, draft.ToolRoof, draft.ToolHatch, draft.ToolDimension,
		draft.ToolDoor, draft.ToolWindow, draft.ToolText, draft.ToolFurniture,
	}
	toolbarModify = []draft.Tool{
		draft.ToolMove, draft.ToolRotate, draft.ToolExtend, draft.ToolTrim,
		draft.ToolCorner, draft.ToolChamfer, draft.ToolFillet,
	}
)

var wallTypeNames = map[plan.WallType]string{
	plan.WallExterior:  "Exterior",
	plan.WallInterior:  "Interior",
	plan.WallPartition: "Partition",
}

// App is the plan editor window: a toolbar, the drafting canvas, and a
// status bar fed by the engine's feedback.
type App struct {
	window  *app.Window
	ops     op.Ops
	gvTheme *theme.Theme

	store    *document.Store
	engine   *draft.Engine
	canvas   *Canvas
	planPath string
	config   *AppConfig
	dirty    bool
	notice   string

	drawClicks   []widget.Clickable
	modifyClicks []widget.Clickable
	undoBtn      widget.Clickable
	redoBtn      widget.Clickable
	saveBtn      widget.Clickable
	fitBtn       widget.Clickable
	snapGridBtn  widget.Clickable
	snapAngleBtn widget.Clickable
	snapObjBtn   widget.Clickable
	touchBtn     widget.Clickable
	unitBtn      widget.Clickable
	wallMenuBtn  widget.Clickable
	wallMenu     *menu.DropdownMenu
	floorPrevBtn widget.Clickable
	floorNextBtn widget.Clickable
	floorAddBtn  widget.Clickable

	undoIcon *widget.Icon
	redoIcon *widget.Icon
	saveIcon *widget.Icon
	fitIcon  *widget.Icon
}

// New creates the editor around an open document store. planPath is where
// Ctrl+S writes; empty means plan.json in the working directory.
func New(w *app.Window, store *document.Store, planPath string) *App {
	if w == nil {
		w = new(app.Window)
	}
	w.Option(app.Title("OpenPlanCAD"), app.Size(unit.Dp(1360), unit.Dp(860)))

	config, err := LoadConfig()
	if err != nil || config == nil {
		config = defaultAppConfig()
	}

	a := &App{
		window:   w,
		gvTheme:  theme.NewTheme("", nil, true),
		store:    store,
		engine:   draft.NewEngine(store, config.Drafting),
		planPath: planPath,
		config:   config,
	}
	a.canvas = NewCanvas(a.engine)
	a.drawClicks = make([]widget.Clickable, len(toolbarDraw))
	a.modifyClicks = make([]widget.Clickable, len(toolbarModify))

	if icon, err := widget.NewIcon(icons.ContentUndo); err == nil {
		a.undoIcon = icon
	}
	if icon, err := widget.NewIcon(icons.ContentRedo); err == nil {
		a.redoIcon = icon
	}
	if icon, err := widget.NewIcon(icons.ContentSave); err == nil {
		a.saveIcon = icon
	}
	if icon, err := widget.NewIcon(icons.ActionZoomOut); err == nil {
		a.fitIcon = icon
	}
	a.wallMenu = a.buildWallMenu()

	store.OnChange(func() {
		a.dirty = true
		w.Invalidate()
	})
	return a
}

// Run blocks processing window events until the window closes.
func (a *App) Run() error {
	for {
		e := a.window.Event()
		switch ev := e.(type) {
		case app.DestroyEvent:
			a.persistConfig()
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&a.ops, ev)
			a.layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	a.handleKeys(gtx)

	paint.FillShape(gtx.Ops, a.gvTheme.Palette.Bg, clip.Rect{Max: gtx.Constraints.Max}.Op())

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(a.layoutToolbar),
		layout.Flexed(1, a.canvas.Layout),
		layout.Rigid(a.layoutStatusBar),
	)
}

func (a *App) handleKeys(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(
			key.Filter{Name: key.NameEscape},
			key.Filter{Name: key.NameDeleteBackward},
			key.Filter{Name: key.NameDeleteForward},
			key.Filter{Name: key.NameSpace},
			key.Filter{Name: "Z", Required: key.ModShortcut, Optional: key.ModShift},
			key.Filter{Name: "Y", Required: key.ModShortcut},
			key.Filter{Name: "S", Required: key.ModShortcut},
			key.Filter{Name: "G"},
		)
		if !ok {
			break
		}
		ke, ok := ev.(key.Event)
		if !ok || ke.State != key.Press {
			continue
		}
		switch ke.Name {
		case key.NameEscape:
			a.engine.Cancel()
		case key.NameDeleteBackward, key.NameDeleteForward:
			a.engine.DeleteSelection()
		case key.NameSpace:
			a.fitView()
		case "Z":
			if ke.Modifiers.Contain(key.ModShift) {
				a.store.Redo()
			} else {
				a.store.Undo()
			}
		case "Y":
			a.store.Redo()
		case "S":
			a.save()
		case "G":
			cfg := a.engine.Config()
			cfg.Snap.Grid = !cfg.Snap.Grid
			a.engine.SetConfig(cfg)
		}
		a.window.Invalidate()
	}
}

func (a *App) fitView() {
	floor := a.store.Floor()
	cam := a.engine.Camera()
	if floor.IsEmpty() {
		cam.CenterX, cam.CenterY = 0, 0
		cam.Zoom = 1
		return
	}
	cam.Fit(floor.Bounds())
}

func (a *App) save() {
	if a.planPath == "" {
		a.planPath = "plan.json"
	}
	if err := a.store.Save(a.planPath); err != nil {
		a.notice = "save failed: " + err.Error()
		return
	}
	a.dirty = false
	a.notice = "saved " + a.planPath
}

func (a *App) persistConfig() {
	a.config.Drafting = a.engine.Config()
	a.config.RecentFile = a.planPath
	_ = SaveConfig(a.config)
}

func (a *App) layoutToolbar(gtx layout.Context) layout.Dimensions {
	for i := range a.drawClicks {
		if a.drawClicks[i].Clicked(gtx) {
			a.engine.SetTool(toolbarDraw[i])
		}
	}
	for i := range a.modifyClicks {
		if a.modifyClicks[i].Clicked(gtx) {
			a.engine.SetTool(toolbarModify[i])
		}
	}
	if a.undoBtn.Clicked(gtx) {
		a.store.Undo()
	}
	if a.redoBtn.Clicked(gtx) {
		a.store.Redo()
	}
	if a.saveBtn.Clicked(gtx) {
		a.save()
	}
	if a.fitBtn.Clicked(gtx) {
		a.fitView()
	}
	if a.snapGridBtn.Clicked(gtx) {
		cfg := a.engine.Config()
		cfg.Snap.Grid = !cfg.Snap.Grid
		a.engine.SetConfig(cfg)
	}
	if a.snapAngleBtn.Clicked(gtx) {
		cfg := a.engine.Config()
		cfg.Snap.Angle = !cfg.Snap.Angle
		a.engine.SetConfig(cfg)
	}
	if a.snapObjBtn.Clicked(gtx) {
		cfg := a.engine.Config()
		on := !cfg.Snap.Endpoint
		cfg.Snap.Endpoint = on
		cfg.Snap.Midpoint = on
		cfg.Snap.Perpendicular = on
		cfg.Snap.Nearest = on
		a.engine.SetConfig(cfg)
	}
	if a.touchBtn.Clicked(gtx) {
		cfg := a.engine.Config()
		cfg.Touch = !cfg.Touch
		a.engine.SetConfig(cfg)
	}
	if a.unitBtn.Clicked(gtx) {
		a.config.MetricUI = !a.config.MetricUI
	}
	if a.floorPrevBtn.Clicked(gtx) {
		a.switchFloor(a.store.ActiveIndex() - 1)
	}
	if a.floorNextBtn.Clicked(gtx) {
		a.switchFloor(a.store.ActiveIndex() + 1)
	}
	if a.floorAddBtn.Clicked(gtx) {
		a.store.AddFloor(fmt.Sprintf("Floor %d", a.store.FloorCount()+1))
	}

	paint.FillShape(gtx.Ops, a.gvTheme.Bg2, clip.Rect{Max: gtx.Constraints.Max}.Op())
	inset := layout.Inset{Top: unit.Dp(6), Bottom: unit.Dp(6), Left: unit.Dp(10), Right: unit.Dp(10)}
	return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(a.layoutDrawRow),
			layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
			layout.Rigid(a.layoutModifyRow),
		)
	})
}

func (a *App) layoutDrawRow(gtx layout.Context) layout.Dimensions {
	children := make([]layout.FlexChild, 0, len(toolbarDraw))
	for i, t := range toolbarDraw {
		idx, tool := i, t
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Right: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return a.toolButton(gtx, &a.drawClicks[idx], tool)
			})
		}))
	}
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
}

func (a *App) layoutModifyRow(gtx layout.Context) layout.Dimensions {
	children := make([]layout.FlexChild, 0, len(toolbarModify)+16)
	for i, t := range toolbarModify {
		idx, tool := i, t
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Right: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return a.toolButton(gtx, &a.modifyClicks[idx], tool)
			})
		}))
	}
	children = append(children,
		layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
		layout.Rigid(a.layoutWallPicker),
		layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.toggleButton(gtx, &a.snapGridBtn, "Grid", a.engine.Config().Snap.Grid)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.toggleButton(gtx, &a.snapAngleBtn, "Angle", a.engine.Config().Snap.Angle)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.toggleButton(gtx, &a.snapObjBtn, "Osnap", a.engine.Config().Snap.Endpoint)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.toggleButton(gtx, &a.touchBtn, "Touch", a.engine.Config().Touch)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			label := "ft"
			if a.config.MetricUI {
				label = "m"
			}
			return a.toggleButton(gtx, &a.unitBtn, label, a.config.MetricUI)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Dimensions{Size: gtx.Constraints.Min}
		}),
		layout.Rigid(a.layoutFloorNav),
		layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
		layout.Rigid(a.iconButton(&a.undoBtn, a.undoIcon, "Undo")),
		layout.Rigid(a.iconButton(&a.redoBtn, a.redoIcon, "Redo")),
		layout.Rigid(a.iconButton(&a.fitBtn, a.fitIcon, "Fit view")),
		layout.Rigid(a.iconButton(&a.saveBtn, a.saveIcon, "Save")),
	)
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
}

func (a *App) toolButton(gtx layout.Context, click *widget.Clickable, t draft.Tool) layout.Dimensions {
	btn := material.Button(a.gvTheme.Theme, click, t.String())
	btn.TextSize = unit.Sp(12)
	btn.Inset = layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4), Left: unit.Dp(8), Right: unit.Dp(8)}
	if a.engine.Tool() != t {
		btn.Background = a.gvTheme.Palette.Bg
		btn.Color = a.gvTheme.Palette.Fg
	}
	return btn.Layout(gtx)
}

func (a *App) toggleButton(gtx layout.Context, click *widget.Clickable, label string, on bool) layout.Dimensions {
	btn := material.Button(a.gvTheme.Theme, click, label)
	btn.TextSize = unit.Sp(11)
	btn.Inset = layout.Inset{Top: unit.Dp(3), Bottom: unit.Dp(3), Left: unit.Dp(6), Right: unit.Dp(6)}
	if !on {
		btn.Background = a.gvTheme.Palette.Bg
		btn.Color = a.gvTheme.Palette.Fg
	}
	return btn.Layout(gtx)
}

func (a *App) iconButton(click *widget.Clickable, icon *widget.Icon, desc string) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		if icon == nil {
			return layout.Dimensions{}
		}
		btn := material.IconButton(a.gvTheme.Theme, click, icon, desc)
		btn.Size = unit.Dp(18)
		btn.Inset = layout.UniformInset(unit.Dp(5))
		return layout.Inset{Left: unit.Dp(2), Right: unit.Dp(2)}.Layout(gtx, btn.Layout)
	}
}

func (a *App) layoutWallPicker(gtx layout.Context) layout.Dimensions {
	if a.wallMenuBtn.Clicked(gtx) {
		a.wallMenu.ToggleVisibility(gtx)
	}
	label := "Wall: " + wallTypeNames[a.engine.Config().WallType]
	btn := material.Button(a.gvTheme.Theme, &a.wallMenuBtn, label)
	btn.TextSize = unit.Sp(11)
	btn.Inset = layout.Inset{Top: unit.Dp(3), Bottom: unit.Dp(3), Left: unit.Dp(6), Right: unit.Dp(6)}
	dims := btn.Layout(gtx)
	a.wallMenu.Layout(gtx, a.gvTheme)
	return dims
}

func (a *App) buildWallMenu() *menu.DropdownMenu {
	wallTypes := []plan.WallType{plan.WallExterior, plan.WallInterior, plan.WallPartition}
	opts := make([]menu.MenuOption, 0, len(wallTypes))
	for _, wt := range wallTypes {
		wt := wt
		opts = append(opts, menu.MenuOption{
			OnClicked: func() error {
				cfg := a.engine.Config()
				cfg.WallType = wt
				a.engine.SetConfig(cfg)
				return nil
			},
			Layout: func(gtx menu.C, th *theme.Theme) menu.D {
				lbl := material.Body1(th.Theme, wallTypeNames[wt])
				if a.engine.Config().WallType == wt {
					lbl.Color = th.Palette.ContrastBg
				}
				return layout.Inset{Left: unit.Dp(4), Right: unit.Dp(4)}.Layout(gtx, lbl.Layout)
			},
		})
	}
	drop := menu.NewDropdownMenu([][]menu.MenuOption{opts})
	drop.MaxWidth = unit.Dp(180)
	return drop
}

func (a *App) layoutFloorNav(gtx layout.Context) layout.Dimensions {
	floor := a.store.Floor()
	label := fmt.Sprintf("%s (%d/%d)", floor.Name, a.store.ActiveIndex()+1, a.store.FloorCount())
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.toggleButton(gtx, &a.floorPrevBtn, "<", false)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Left: unit.Dp(6), Right: unit.Dp(6)}.Layout(gtx,
				material.Body2(a.gvTheme.Theme, label).Layout)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.toggleButton(gtx, &a.floorNextBtn, ">", false)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.toggleButton(gtx, &a.floorAddBtn, "+ Floor", false)
		}),
	)
}

func (a *App) switchFloor(i int) {
	if i < 0 || i >= a.store.FloorCount() {
		return
	}
	a.engine.Cancel()
	a.engine.SelectOnly()
	a.store.SetActive(i)
}

func (a *App) layoutStatusBar(gtx layout.Context) layout.Dimensions {
	fb := a.engine.Feedback()
	formatLen := units.Format
	if a.config.MetricUI {
		formatLen = units.FormatMetric
	}

	left := fb.Status
	if a.notice != "" {
		left = a.notice + "  |  " + left
	}
	pos := fmt.Sprintf("%s, %s", formatLen(fb.Snap.Point.X), formatLen(fb.Snap.Point.Y))
	if fb.Snap.Kind != draft.SnapNone {
		pos += "  [" + fb.Snap.Kind.String() + "]"
	}
	zoom := fmt.Sprintf("%.0f%%", a.engine.Camera().Zoom*100)
	doc := "saved"
	if a.dirty {
		doc = "modified"
	}
	docLbl := material.Body2(a.gvTheme.Theme, doc)
	if !a.dirty {
		docLbl.Color = colorStatusOK
	}

	paint.FillShape(gtx.Ops, a.gvTheme.Bg2, clip.Rect{Max: gtx.Constraints.Max}.Op())
	inset := layout.Inset{Left: unit.Dp(16), Right: unit.Dp(16), Top: unit.Dp(6), Bottom: unit.Dp(6)}
	return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(material.Body2(a.gvTheme.Theme, left).Layout),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{Size: gtx.Constraints.Min}
			}),
			layout.Rigid(material.Body2(a.gvTheme.Theme, pos).Layout),
			layout.Rigid(layout.Spacer{Width: unit.Dp(16)}.Layout),
			layout.Rigid(material.Body2(a.gvTheme.Theme, zoom).Layout),
			layout.Rigid(layout.Spacer{Width: unit.Dp(16)}.Layout),
			layout.Rigid(docLbl.Layout),
		)
	})
}
