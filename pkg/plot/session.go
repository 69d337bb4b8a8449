package plot

import "github.com/go-logr/logr"

// Binding pairs a marker with the annotation it reveals.
type Binding struct {
	Marker     Marker
	Annotation Annotation
}

// Session is one rendered view. It owns the bindings and the surface until
// the view closes and is only touched from the surface's event loop.
type Session struct {
	surface  Surface
	bindings []Binding
	log      logr.Logger
}

// Bindings returns the marker/annotation pairs in render order.
func (s *Session) Bindings() []Binding {
	return s.bindings
}

// Visible returns the number of annotations currently shown.
func (s *Session) Visible() int {
	n := 0
	for _, b := range s.bindings {
		if b.Annotation.Visible() {
			n++
		}
	}
	return n
}

// Dispatch routes ev to HandlePick or HandleMove.
func (s *Session) Dispatch(ev PointerEvent) {
	switch ev.Kind {
	case TriggerPick:
		HandlePick(s, ev)
	case TriggerMove:
		HandleMove(s, ev)
	}
}

// HandlePick updates annotations for a pick event and reports whether the
// surface was redrawn.
func HandlePick(s *Session, ev PointerEvent) bool {
	return commit(s, UpdateVisibility(s, ev.Location))
}

// HandleMove updates annotations for a pointer move and reports whether the
// surface was redrawn.
func HandleMove(s *Session, ev PointerEvent) bool {
	return commit(s, UpdateVisibility(s, ev.Location))
}

// HideAll hides every visible annotation and reports whether the surface
// was redrawn.
func HideAll(s *Session) bool {
	changed := 0
	for _, b := range s.bindings {
		if b.Annotation.Visible() {
			b.Annotation.SetVisible(false)
			changed++
		}
	}
	return commit(s, changed)
}

// UpdateVisibility shows the annotation of every marker containing loc and
// hides the rest. It returns the number of annotations whose visibility
// flipped and never redraws.
func UpdateVisibility(s *Session, loc Location) int {
	changed := 0
	for _, b := range s.bindings {
		want := b.Marker.Contains(loc)
		if want != b.Annotation.Visible() {
			b.Annotation.SetVisible(want)
			changed++
		}
	}
	return changed
}

func commit(s *Session, changed int) bool {
	if changed == 0 {
		return false
	}
	s.log.V(2).Info("annotations updated", "changed", changed)
	s.surface.Redraw()
	return true
}
