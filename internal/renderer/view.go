package renderer

import "fmt"

// View is an element a canvas can hold. The set of implementations is
// closed: *Text and *Canvas.
type View interface {
	// Position returns the offset inside the parent's active area.
	Position() (x, y int)
	// Width and Height are the footprint drawn into the parent.
	Width() int
	Height() int

	isView()
}

// ViewKind names the concrete type behind a View.
type ViewKind uint8

const (
	KindText ViewKind = iota
	KindCanvas
	// KindUnknown is reported for nil or foreign views.
	KindUnknown
)

func (k ViewKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindCanvas:
		return "canvas"
	default:
		return "unknown"
	}
}

// Kind reports which kind of view v is.
func Kind(v View) ViewKind {
	if isNilView(v) {
		return KindUnknown
	}
	switch v.(type) {
	case *Text:
		return KindText
	case *Canvas:
		return KindCanvas
	default:
		return KindUnknown
	}
}

// AsText returns v as a *Text, or ErrViewKind.
func AsText(v View) (*Text, error) {
	t, ok := v.(*Text)
	if !ok || t == nil {
		return nil, fmt.Errorf("%w: want text, have %s", ErrViewKind, describe(v))
	}
	return t, nil
}

// AsCanvas returns v as a *Canvas, or ErrViewKind.
func AsCanvas(v View) (*Canvas, error) {
	c, ok := v.(*Canvas)
	if !ok || c == nil {
		return nil, fmt.Errorf("%w: want canvas, have %s", ErrViewKind, describe(v))
	}
	return c, nil
}

// ViewEqual reports whether two views are of the same kind and
// structurally equal.
func ViewEqual(a, b View) bool {
	switch av := a.(type) {
	case *Text:
		bv, ok := b.(*Text)
		return ok && av.Equals(bv)
	case *Canvas:
		bv, ok := b.(*Canvas)
		return ok && av.Equals(bv)
	default:
		return a == nil && b == nil
	}
}

func isNilView(v View) bool {
	switch vv := v.(type) {
	case *Text:
		return vv == nil
	case *Canvas:
		return vv == nil
	default:
		return true
	}
}

func describe(v View) string {
	if isNilView(v) {
		return "nil"
	}
	return Kind(v).String()
}
