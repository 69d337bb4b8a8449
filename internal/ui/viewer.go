package ui

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"gioui.org/app"
	gfont "gioui.org/font"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"github.com/go-logr/logr"
	"github.com/oligo/gioview/menu"
	"github.com/oligo/gioview/theme"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/OpenTraceLab/OpenTracePlot/pkg/gioplot"
	"github.com/OpenTraceLab/OpenTracePlot/pkg/plot"
)

// Loader builds the plots of a sample log read from r. name is the base
// name of the file, when known.
type Loader func(r io.Reader, name string) (*plot.Composer, error)

type loadResult struct {
	composer *plot.Composer
	name     string
	err      error
}

// Viewer is the window showing a Figure. It completes plot.Surface with
// Redraw and Show and surrounds the figure with a toolbar, a log pane and a
// status line.
type Viewer struct {
	*gioplot.Figure

	window *app.Window
	ops    op.Ops

	state      *AppState
	config     *ViewerConfig
	configPath string
	log        logr.Logger

	gvTheme    *theme.Theme
	session    *plot.Session
	dispatcher plot.Dispatcher

	explorer *explorer.Explorer
	loader   Loader
	loaded   chan loadResult

	triggerMenu *menu.DropdownMenu
	triggerBtn  widget.Clickable
	hideBtn     widget.Clickable
	themeBtn    widget.Clickable
	openBtn     widget.Clickable

	hideIcon  *widget.Icon
	themeIcon *widget.Icon
	openIcon  *widget.Icon

	logList widget.List
}

// NewViewer wraps fig in window w. The window may be nil in which case Show
// fails and Redraw only updates state.
func NewViewer(w *app.Window, fig *gioplot.Figure, state *AppState, config *ViewerConfig, log logr.Logger) *Viewer {
	if state == nil {
		state = NewState()
	}
	if config == nil {
		config = DefaultViewerConfig()
	}
	if w != nil {
		snap := state.Snapshot()
		w.Option(app.Title(snap.Title), app.Size(unit.Dp(config.Width), unit.Dp(config.Height)))
	}

	v := &Viewer{
		Figure:  fig,
		window:  w,
		state:   state,
		config:  config,
		log:     log,
		gvTheme: theme.NewTheme("", nil, true),
		loaded:  make(chan loadResult, 1),
	}
	if w != nil {
		v.explorer = explorer.NewExplorer(w)
	}
	if path, err := ConfigPath(); err == nil {
		v.configPath = path
	}
	if icon, err := widget.NewIcon(icons.ActionVisibilityOff); err == nil {
		v.hideIcon = icon
	}
	if icon, err := widget.NewIcon(icons.ImageBrightness4); err == nil {
		v.themeIcon = icon
	}
	if icon, err := widget.NewIcon(icons.FileFolderOpen); err == nil {
		v.openIcon = icon
	}
	v.logList.Axis = layout.Vertical
	v.logList.ScrollToEnd = true
	v.triggerMenu = v.buildTriggerMenu()
	v.applyPalette()
	return v
}

// SetLoader enables opening other logs from the toolbar.
func (v *Viewer) SetLoader(l Loader) {
	v.loader = l
}

// Subscribe selects the pointer interactions forwarded to the session.
func (v *Viewer) Subscribe(t plot.Trigger) {
	v.Figure.Subscribe(t)
	v.state.SetTriggers(t)
}

// Redraw schedules a new frame.
func (v *Viewer) Redraw() {
	if v.session != nil {
		v.state.SetVisible(v.session.Visible())
	}
	if v.window != nil {
		v.window.Invalidate()
	}
}

// Show runs the window event loop until the window is closed. Pointer input
// goes to d, or to the session of a log opened from the toolbar.
func (v *Viewer) Show(d plot.Dispatcher) error {
	if v.window == nil {
		return errors.New("viewer has no window")
	}
	v.attach(d)

	for {
		e := v.window.Event()
		v.explorer.ListenEvents(e)
		switch e := e.(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&v.ops, e)
			v.update(gtx)
			v.layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (v *Viewer) attach(d plot.Dispatcher) {
	v.dispatcher = d
	if s, ok := d.(*plot.Session); ok {
		v.session = s
		v.state.SetSession(len(v.Axes()), len(s.Bindings()))
		v.state.SetVisible(s.Visible())
	}
	v.state.SetStatus("Ready")
}

func (v *Viewer) update(gtx layout.Context) {
	select {
	case res := <-v.loaded:
		v.load(res)
	default:
	}

	v.Figure.Update(gtx, v.dispatcher)

	if v.hideBtn.Clicked(gtx) {
		v.hideAll()
	}
	if v.themeBtn.Clicked(gtx) {
		v.setDarkMode(!v.config.DarkMode)
	}
	if v.openBtn.Clicked(gtx) {
		v.openFile()
	}

	for {
		ev, ok := gtx.Event(
			key.Filter{Name: key.NameEscape},
			key.Filter{Name: "Q"},
			key.Filter{Name: "H"},
		)
		if !ok {
			break
		}
		ke, ok := ev.(key.Event)
		if !ok || ke.State != key.Press {
			continue
		}
		switch ke.Name {
		case key.NameEscape, "Q":
			v.window.Perform(system.ActionClose)
		case "H":
			v.hideAll()
		}
	}
}

// openFile asks for a log in the background; the result is picked up by
// the next frame.
func (v *Viewer) openFile() {
	if v.explorer == nil || v.loader == nil {
		return
	}
	v.state.SetStatus("Opening...")
	go func() {
		file, err := v.explorer.ChooseFile(".log", ".txt")
		if err != nil {
			if errors.Is(err, explorer.ErrUserDecline) {
				err = nil
			}
			v.deliver(loadResult{err: err})
			return
		}
		defer file.Close()

		name := "log"
		if f, ok := file.(*os.File); ok {
			name = filepath.Base(f.Name())
		}
		c, err := v.loader(file, name)
		v.deliver(loadResult{composer: c, name: name, err: err})
	}()
}

func (v *Viewer) deliver(res loadResult) {
	v.loaded <- res
	if v.window != nil {
		v.window.Invalidate()
	}
}

// load replaces the shown plots. Failures keep the current view.
func (v *Viewer) load(res loadResult) {
	if res.err != nil {
		v.log.Error(res.err, "cannot open log", "file", res.name)
		v.state.SetStatus("Open failed")
		return
	}
	if res.composer == nil {
		v.state.SetStatus("Ready")
		return
	}
	if len(res.composer.Subplots()) == 0 {
		v.log.Info("nothing to plot", "file", res.name)
		v.state.SetStatus("Open failed")
		return
	}

	triggers := v.Triggers()
	v.Reset()
	s := res.composer.Render(v)
	v.Subscribe(triggers)
	v.attach(s)
	title := "OpenTracePlot - " + res.name
	v.state.SetTitle(title)
	if v.window != nil {
		v.window.Option(app.Title(title))
	}
	v.log.Info("log opened", "file", res.name, "plots", len(res.composer.Subplots()))
	v.Redraw()
}

func (v *Viewer) hideAll() {
	if v.session == nil {
		return
	}
	if plot.HideAll(v.session) {
		v.log.V(1).Info("annotations hidden")
	}
}

func (v *Viewer) setTriggers(t plot.Trigger) {
	if t == v.Triggers() {
		return
	}
	v.Subscribe(t)
	v.config.Trigger = triggerName(t)
	v.log.Info("trigger changed", "trigger", t.String())
	v.saveConfig()
	v.Redraw()
}

func (v *Viewer) setDarkMode(enabled bool) {
	if v.config.DarkMode == enabled {
		return
	}
	v.config.DarkMode = enabled
	v.applyPalette()
	v.saveConfig()
	v.Redraw()
}

func (v *Viewer) saveConfig() {
	if v.configPath == "" {
		return
	}
	if err := SaveConfigFile(v.configPath, v.config); err != nil {
		v.log.Error(err, "cannot save viewer settings", "path", v.configPath)
	}
}

func (v *Viewer) applyPalette() {
	if v.config.DarkMode {
		v.gvTheme.WithPalette(theme.Palette{
			Bg:         color.NRGBA{R: 18, G: 20, B: 26, A: 255},
			Fg:         color.NRGBA{R: 233, G: 236, B: 245, A: 255},
			ContrastBg: color.NRGBA{R: 120, G: 150, B: 255, A: 255},
			ContrastFg: color.NRGBA{R: 12, G: 16, B: 24, A: 255},
			Bg2:        color.NRGBA{R: 34, G: 40, B: 50, A: 255},
		})
		v.SetPalette(gioplot.DarkPalette)
	} else {
		v.gvTheme.WithPalette(theme.Palette{
			Bg:         color.NRGBA{R: 245, G: 247, B: 253, A: 255},
			Fg:         color.NRGBA{R: 34, G: 37, B: 49, A: 255},
			ContrastBg: color.NRGBA{R: 80, G: 120, B: 255, A: 255},
			ContrastFg: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
			Bg2:        color.NRGBA{R: 225, G: 230, B: 244, A: 255},
		})
		v.SetPalette(gioplot.DefaultPalette)
	}
}

func (v *Viewer) buildTriggerMenu() *menu.DropdownMenu {
	choices := []plot.Trigger{plot.TriggerPick, plot.TriggerMove, plot.TriggerBoth}
	opts := make([]menu.MenuOption, 0, len(choices))
	for _, t := range choices {
		opts = append(opts, menu.MenuOption{
			OnClicked: func() error {
				v.setTriggers(t)
				return nil
			},
			Layout: func(gtx menu.C, th *theme.Theme) menu.D {
				lbl := material.Body1(th.Theme, triggerName(t))
				if t == v.Triggers() {
					lbl.Color = th.Palette.ContrastBg
				}
				return layout.Inset{Left: unit.Dp(4), Right: unit.Dp(4)}.Layout(gtx, lbl.Layout)
			},
		})
	}
	drop := menu.NewDropdownMenu([][]menu.MenuOption{opts})
	drop.MaxWidth = unit.Dp(160)
	return drop
}

func (v *Viewer) layout(gtx layout.Context) layout.Dimensions {
	snap := v.state.Snapshot()
	paint.FillShape(gtx.Ops, v.gvTheme.Palette.Bg, clip.Rect{Max: gtx.Constraints.Max}.Op())

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return v.layoutToolbar(gtx, snap)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return v.Figure.Layout(gtx, v.gvTheme.Theme)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return v.layoutLogPane(gtx, snap)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return v.layoutStatusBar(gtx, snap)
		}),
	)
}

func (v *Viewer) layoutToolbar(gtx layout.Context, snap StateSnapshot) layout.Dimensions {
	th := v.gvTheme.Theme
	inset := layout.Inset{Left: unit.Dp(16), Right: unit.Dp(16), Top: unit.Dp(6), Bottom: unit.Dp(6)}
	return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(material.H6(th, snap.Title).Layout),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{Size: image.Pt(gtx.Constraints.Min.X, 0)}
			}),
			layout.Rigid(material.Body2(th, fmt.Sprintf("%d / %d annotations", snap.Visible, snap.Annotations)).Layout),
			layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if v.triggerBtn.Clicked(gtx) {
					v.triggerMenu.ToggleVisibility(gtx)
				}
				dims := material.Button(th, &v.triggerBtn, "Trigger: "+triggerName(snap.Triggers)).Layout(gtx)
				v.triggerMenu.Layout(gtx, v.gvTheme)
				return dims
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return v.iconButton(gtx, &v.hideBtn, v.hideIcon, "Hide all")
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if v.loader == nil || v.explorer == nil {
					return layout.Dimensions{}
				}
				gtx.Constraints.Min.X = 0
				return layout.Inset{Left: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return v.iconButton(gtx, &v.openBtn, v.openIcon, "Open log")
				})
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return v.iconButton(gtx, &v.themeBtn, v.themeIcon, "Dark mode")
			}),
		)
	})
}

func (v *Viewer) iconButton(gtx layout.Context, btn *widget.Clickable, icon *widget.Icon, description string) layout.Dimensions {
	th := v.gvTheme.Theme
	if icon == nil {
		return material.Button(th, btn, description).Layout(gtx)
	}
	b := material.IconButton(th, btn, icon, description)
	b.Size = unit.Dp(18)
	b.Inset = layout.UniformInset(unit.Dp(6))
	return b.Layout(gtx)
}

func (v *Viewer) layoutLogPane(gtx layout.Context, snap StateSnapshot) layout.Dimensions {
	h := gtx.Dp(unit.Dp(120))
	gtx.Constraints.Min.Y = h
	gtx.Constraints.Max.Y = h
	size := image.Pt(gtx.Constraints.Max.X, h)
	paint.FillShape(gtx.Ops, v.gvTheme.Bg2, clip.Rect{Max: size}.Op())

	th := v.gvTheme.Theme
	inset := layout.Inset{Left: unit.Dp(16), Right: unit.Dp(16), Top: unit.Dp(6), Bottom: unit.Dp(6)}
	inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min = gtx.Constraints.Max
		return material.List(th, &v.logList).Layout(gtx, len(snap.Logs), func(gtx layout.Context, i int) layout.Dimensions {
			lbl := material.Caption(th, snap.Logs[i])
			lbl.Font.Typeface = gfont.Typeface("Go Mono")
			lbl.MaxLines = 1
			return lbl.Layout(gtx)
		})
	})
	return layout.Dimensions{Size: size}
}

func (v *Viewer) layoutStatusBar(gtx layout.Context, snap StateSnapshot) layout.Dimensions {
	th := v.gvTheme.Theme
	inset := layout.Inset{Left: unit.Dp(16), Right: unit.Dp(16), Top: unit.Dp(6), Bottom: unit.Dp(6)}
	return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(material.Body2(th, snap.Status).Layout),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{Size: image.Pt(gtx.Constraints.Min.X, 0)}
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min.X = gtx.Dp(unit.Dp(150))
				return material.Body2(th, fmt.Sprintf("%d plots", snap.Plots)).Layout(gtx)
			}),
		)
	})
}
