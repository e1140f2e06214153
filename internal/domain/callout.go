package domain

// CalloutKind is the flavour of a block-quoted callout in the source markdown.
type CalloutKind int

const (
	CalloutNotice CalloutKind = iota
	CalloutTip
	CalloutNote
)

// CalloutKinds lists every kind in output order.
var CalloutKinds = []CalloutKind{CalloutNotice, CalloutTip, CalloutNote}

// Component returns the name of the rich-text component the kind maps to.
func (k CalloutKind) Component() string {
	switch k {
	case CalloutNotice:
		return "Warning"
	case CalloutTip:
		return "Tip"
	default:
		return "Note"
	}
}

// Title returns the heading rendered inside the component.
func (k CalloutKind) Title() string {
	switch k {
	case CalloutNotice:
		return "Notice"
	case CalloutTip:
		return "Tips"
	default:
		return "Note"
	}
}

func (k CalloutKind) String() string {
	switch k {
	case CalloutNotice:
		return "notice"
	case CalloutTip:
		return "tip"
	case CalloutNote:
		return "note"
	default:
		return "unknown"
	}
}
