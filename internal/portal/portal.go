// Package portal attaches window subtrees to render layers while they are
// visible.
package portal

import (
	"fmt"
	"slices"
)

type selfTarget struct{}

func (selfTarget) String() string { return "self" }

// Self mounts the element where its owner renders it instead of on a layer.
var Self any = selfTarget{}

// Layer is an element that children can be appended to. The host program
// draws each layer's children in append order.
type Layer struct {
	name     string
	children []string
}

// NewLayer returns an empty layer.
func NewLayer(name string) *Layer {
	return &Layer{name: name}
}

// Name returns the layer name.
func (l *Layer) Name() string { return l.name }

// String implements fmt.Stringer.
func (l *Layer) String() string { return "layer(" + l.name + ")" }

// Children returns a copy of the mounted element ids.
func (l *Layer) Children() []string { return slices.Clone(l.children) }

// Contains reports whether id is mounted on the layer.
func (l *Layer) Contains(id string) bool { return slices.Contains(l.children, id) }

// TargetError is returned when an element is appended to or removed from
// something that is not a layer.
type TargetError struct {
	Op     string
	Source string
	Target any
}

func (e *TargetError) Error() string {
	if e.Op == "remove" {
		return fmt.Sprintf("portal: cannot remove %s from %v", e.Source, e.Target)
	}
	return fmt.Sprintf("portal: cannot append %v to %s", e.Target, e.Source)
}

// AppendChild mounts id on target.
func AppendChild(id string, target any) error {
	l, ok := target.(*Layer)
	if !ok || l == nil {
		return &TargetError{Op: "append", Source: id, Target: target}
	}
	if !l.Contains(id) {
		l.children = append(l.children, id)
	}
	return nil
}

// RemoveChild unmounts id from target.
func RemoveChild(id string, target any) error {
	l, ok := target.(*Layer)
	if !ok || l == nil {
		return &TargetError{Op: "remove", Source: id, Target: target}
	}
	l.children = slices.DeleteFunc(l.children, func(x string) bool { return x == id })
	return nil
}

// Validate reports whether target can host elements.
func Validate(id string, target any) error {
	if target == nil || target == Self {
		return nil
	}
	if l, ok := target.(*Layer); ok && l != nil {
		return nil
	}
	return &TargetError{Op: "append", Source: id, Target: target}
}

// Portal keeps one element mounted on its target while visible.
type Portal struct {
	Element     string
	AppendTo    any // nil uses the fallback layer, Self renders in place
	OnMounted   func()
	OnUnmounted func()

	fallback *Layer
	mounted  bool
}

// New returns a portal for element that mounts on fallback when AppendTo is
// nil.
func New(element string, appendTo any, fallback *Layer) *Portal {
	return &Portal{Element: element, AppendTo: appendTo, fallback: fallback}
}

// Mounted reports whether the element is attached.
func (p *Portal) Mounted() bool { return p.mounted }

func (p *Portal) target() any {
	if p.AppendTo == nil {
		return p.fallback
	}
	return p.AppendTo
}

// SetVisible mounts or unmounts the element. Errors from inconsistent
// targets are returned unchanged.
func (p *Portal) SetVisible(visible bool) error {
	if visible == p.mounted {
		return nil
	}

	target := p.target()
	if target != Self {
		var err error
		if visible {
			err = AppendChild(p.Element, target)
		} else {
			err = RemoveChild(p.Element, target)
		}
		if err != nil {
			return err
		}
	}

	p.mounted = visible
	if visible {
		if p.OnMounted != nil {
			p.OnMounted()
		}
	} else if p.OnUnmounted != nil {
		p.OnUnmounted()
	}
	return nil
}
