package menu

// Grouper is an item whose content is flattened into the parent sequence.
type Grouper interface {
	Item
	// Expand returns the items to display in place of the group.
	Expand() []Item
}

func boundary(id, suffix string) *Separator {
	return &Separator{Base: Base{id: id + "-" + suffix}}
}

// Flatten replaces the groups of items by their content, as containers show
// them.
//
// A group gets a "{id}-begin" separator unless it comes first or right after
// another group, and a "{id}-end" separator unless it comes last.
func Flatten(items []Item) []Item {
	out := make([]Item, 0, len(items))
	previousIsGroup := false

	for i, it := range items {
		g, ok := it.(Grouper)
		if !ok {
			out = append(out, it)
			previousIsGroup = false
			continue
		}
		if i > 0 && !previousIsGroup {
			out = append(out, boundary(g.ID(), "begin"))
		}
		out = append(out, g.Expand()...)
		if i != len(items)-1 {
			out = append(out, boundary(g.ID(), "end"))
		}
		previousIsGroup = true
	}
	return out
}

// flattenEnclosed is the top-level variant: a run of consecutive groups is
// enclosed by "{first}-begin" and "{last}-end" only when other items sit on
// both sides of it. Two adjacent groups are split by one "{previous}-end".
func flattenEnclosed(items []Item) []Item {
	out := make([]Item, 0, len(items))

	for i := 0; i < len(items); {
		g, ok := items[i].(Grouper)
		if !ok {
			out = append(out, items[i])
			i++
			continue
		}

		j := i
		for j < len(items) {
			if _, ok := items[j].(Grouper); !ok {
				break
			}
			j++
		}
		enclosed := i > 0 && j < len(items)

		if enclosed {
			out = append(out, boundary(g.ID(), "begin"))
		}
		for k := i; k < j; k++ {
			if k > i {
				out = append(out, boundary(items[k-1].ID(), "end"))
			}
			out = append(out, items[k].(Grouper).Expand()...)
		}
		if enclosed {
			out = append(out, boundary(items[j-1].ID(), "end"))
		}
		i = j
	}
	return out
}
