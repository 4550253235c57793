package menu

import "fmt"

// Separator is a horizontal rule between blocks of items.
type Separator struct {
	Base
}

// NewSeparator builds a separator item.
func NewSeparator(id string) (*Separator, error) {
	b, err := NewBase(id)
	if err != nil {
		return nil, err
	}
	return &Separator{Base: b}, nil
}

func (s *Separator) Kind() Kind { return KindSeparator }

func (s *Separator) Render(*Context, int) (string, error) {
	return fmt.Sprintf(`<hr class="ui-creme-navigation-separator ui-creme-navigation-separator-id_%s"/>`, esc(s.id)), nil
}

func (s *Separator) String() string { return "--" }
