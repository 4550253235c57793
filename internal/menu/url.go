package menu

import (
	"fmt"
)

// URLItem is rendered as a link, or as a disabled text when the user is not
// allowed.
type URLItem struct {
	Viewable
	url func() string
}

// NewURLItem builds a link to a fixed URL.
func NewURLItem(id, url string, opts ...Option) (*URLItem, error) {
	return NewURLItemFunc(id, func() string { return url }, opts...)
}

// NewURLItemFunc builds a link whose URL is resolved at render time.
func NewURLItemFunc(id string, url func() string, opts ...Option) (*URLItem, error) {
	s := collect(opts)
	v, err := newViewable(id, s)
	if err != nil {
		return nil, err
	}
	if s.url != nil {
		url = s.url
	}
	return &URLItem{Viewable: v, url: url}, nil
}

// ListView links the list of entities of m. WithURL, WithLabel and WithPerm
// override the values taken from the model.
func ListView(id string, m *Model, opts ...Option) (*URLItem, error) {
	s := collect(opts)
	if s.url == nil {
		if m.ListURL == "" {
			return nil, fmt.Errorf("%w: list view %q", ErrMissingURL, id)
		}
		s.url = constURL(m.ListURL)
	}
	if s.label == "" {
		s.label = m.VerboseNamePlural
	}
	if !s.permSet {
		s.perm = StringPolicy(m.AppLabel)
	}
	return fromSettings(id, s)
}

// CreationView links the creation form of m.
func CreationView(id string, m *Model, opts ...Option) (*URLItem, error) {
	s := collect(opts)
	if s.url == nil {
		if m.CreateURL == "" {
			return nil, fmt.Errorf("%w: creation view %q", ErrMissingURL, id)
		}
		s.url = constURL(m.CreateURL)
	}
	if s.label == "" {
		s.label = m.VerboseName
	}
	if !s.permSet {
		s.perm = StringPolicy(m.CreationPerm())
	}
	return fromSettings(id, s)
}

func fromSettings(id string, s settings) (*URLItem, error) {
	v, err := newViewable(id, s)
	if err != nil {
		return nil, err
	}
	return &URLItem{Viewable: v, url: s.url}, nil
}

func constURL(u string) func() string { return func() string { return u } }

// URL resolves the target.
func (u *URLItem) URL() string {
	if u.url == nil {
		return ""
	}
	return u.url()
}

// SetURL replaces the target.
func (u *URLItem) SetURL(url string) { u.url = constURL(url) }

func (u *URLItem) Render(ctx *Context, _ int) (string, error) {
	img, label := u.RenderIcon(ctx), u.RenderLabel(ctx)
	if !Allowed(u.Perm, ctx.user()) {
		return forbidden(img + label), nil
	}
	return fmt.Sprintf(`<a href="%s">%s%s</a>`, esc(u.URL()), img, label), nil
}

func (u *URLItem) String() string { return u.describe("URLItem") }

func forbidden(inner string) string {
	return `<span class="` + textEntryClass + ` forbidden">` + inner + "</span>"
}
