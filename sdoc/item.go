package sdoc

import (
	"iter"
	"strconv"
)

// Kind identifies the type of an [Item].
type Kind uint8

const (
	Singlet Kind = iota + 1
	KeyValue
	Group
	Spacer
	Comment
)

func (k Kind) String() string {
	switch k {
	case Singlet:
		return "singlet"
	case KeyValue:
		return "key-value"
	case Group:
		return "group"
	case Spacer:
		return "spacer"
	case Comment:
		return "comment"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Item is one node of a parsed document.
//
// Name is set for singlets, key-values, and groups. Value holds the value of
// a key-value or the text of a comment. Items holds the children of a group.
// Line and Column locate the first character of the item.
type Item struct {
	Kind   Kind
	Name   []rune
	Value  []rune
	Items  []*Item
	Line   uint32
	Column uint32
}

func (it *Item) NameString() string { return string(it.Name) }

func (it *Item) ValueString() string { return string(it.Value) }

// Document is the root of a parsed document.
type Document struct {
	Version int // 0 when the header is absent
	Items   []*Item
}

// Groups returns the top-level groups named name, in document order.
func (d *Document) Groups(name string) iter.Seq[*Item] {
	return func(yield func(*Item) bool) {
		for _, it := range d.Items {
			if it.Kind == Group && string(it.Name) == name {
				if !yield(it) {
					return
				}
			}
		}
	}
}
