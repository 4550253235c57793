// Package menu implements the navigation item model: priority-ordered item
// lists, containers, flattened groups and their HTML rendering.
//
// Items are built per request and are not safe for concurrent mutation.
// Registries such as CreationForms and QuickForms are built once at startup
// and are only read afterwards.
package menu

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

// Kind tags the rendering behaviour of an item.
type Kind int

const (
	KindLeaf Kind = iota
	KindContainer
	KindGroup
	KindSeparator
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindGroup:
		return "group"
	case KindSeparator:
		return "separator"
	default:
		return "leaf"
	}
}

// Item is a navigation node. Implementations embed Base, which carries the
// id and the priority owned by the ItemList the item belongs to.
type Item interface {
	ID() string
	// Priority returns the priority inside the owning list; ok is false
	// while the item does not belong to any list.
	Priority() (priority int, ok bool)
	Kind() Kind
	// Render returns an HTML fragment; level is the depth (0 is top).
	Render(ctx *Context, level int) (string, error)
	String() string

	base() *Base
}

// Base holds the identity of an item.
type Base struct {
	id       string
	priority int
	owned    bool
}

// ValidateID rejects ids which would break HTML attributes.
func ValidateID(id string) error {
	if strings.ContainsAny(id, `"'`) {
		return fmt.Errorf("%w: %s", ErrInvalidID, id)
	}
	return nil
}

// NewBase validates id.
func NewBase(id string) (Base, error) {
	if err := ValidateID(id); err != nil {
		return Base{}, err
	}
	return Base{id: id}, nil
}

func (b *Base) ID() string { return b.id }

func (b *Base) Priority() (int, bool) { return b.priority, b.owned }

func (b *Base) base() *Base { return b }

func (b *Base) priorityString() string {
	if !b.owned {
		return "none"
	}
	return strconv.Itoa(b.priority)
}

// Option configures viewable items.
type Option func(*settings)

type settings struct {
	label     string
	labelSet  bool
	icon      string
	iconLabel string
	perm      Permission
	permSet   bool
	url       func() string
}

// WithLabel sets the displayed text.
func WithLabel(label string) Option {
	return func(s *settings) { s.label, s.labelSet = label, true }
}

// WithIcon sets an icon name and its alternative text (defaults to the label).
func WithIcon(name, label string) Option {
	return func(s *settings) { s.icon, s.iconLabel = name, label }
}

// WithPerm sets the permission; nil means always allowed.
func WithPerm(p Permission) Option {
	return func(s *settings) { s.perm, s.permSet = p, true }
}

// WithURL overrides the URL of URL-backed items.
func WithURL(url string) Option {
	return func(s *settings) { s.url = func() string { return url } }
}

// WithURLFunc sets a URL resolved at render time.
func WithURLFunc(f func() string) Option {
	return func(s *settings) { s.url = f }
}

func collect(opts []Option) settings {
	var s settings
	for _, o := range opts {
		if o != nil {
			o(&s)
		}
	}
	return s
}

// Viewable is a leaf with a label, an optional icon and a permission.
// It renders as an inert span.
type Viewable struct {
	Base
	Label     string
	Icon      string
	IconLabel string
	Perm      Permission
}

func newViewable(id string, s settings) (Viewable, error) {
	b, err := NewBase(id)
	if err != nil {
		return Viewable{}, err
	}
	v := Viewable{Base: b, Label: s.label, Icon: s.icon, IconLabel: s.iconLabel, Perm: s.perm}
	if v.IconLabel == "" {
		v.IconLabel = v.Label
	}
	return v, nil
}

// NewItem builds a plain viewable item.
func NewItem(id string, opts ...Option) (*Viewable, error) {
	v, err := newViewable(id, collect(opts))
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (v *Viewable) Kind() Kind { return KindLeaf }

func (v *Viewable) Render(ctx *Context, _ int) (string, error) {
	return "<span>" + v.RenderIcon(ctx) + v.RenderLabel(ctx) + "</span>", nil
}

// RenderIcon returns the icon tag, or "" without icon.
func (v *Viewable) RenderIcon(ctx *Context) string {
	if v.Icon == "" {
		return ""
	}
	alt := esc(v.IconLabel)
	return fmt.Sprintf(`<img src="%s" class="header-menu-icon" alt="%s" title="%s" width="16px"/>`,
		esc(ctx.iconURL(v.Icon)), alt, alt)
}

// RenderLabel returns the escaped label.
func (v *Viewable) RenderLabel(*Context) string {
	return esc(v.Label)
}

func (v *Viewable) String() string { return v.describe("Item") }

func (v *Viewable) describe(kind string) string {
	return fmt.Sprintf(`<%s: id="%s" priority=%s label="%s">`, kind, v.id, v.priorityString(), v.Label)
}

func esc(s string) string { return html.EscapeString(s) }
