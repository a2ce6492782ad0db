package markup

// Kind tags the variant carried by a Node.
type Kind int

const (
	KindText Kind = iota
	KindBold
	KindItalic
	KindLink
	KindChip
	KindListItem
	KindList
	KindBreak
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBold:
		return "bold"
	case KindItalic:
		return "italic"
	case KindLink:
		return "link"
	case KindChip:
		return "chip"
	case KindListItem:
		return "list_item"
	case KindList:
		return "list"
	case KindBreak:
		return "break"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// LogoKind tells a renderer how to embed a chip logo.
type LogoKind string

const (
	LogoNone LogoKind = ""
	LogoURL  LogoKind = "url"
	LogoSVG  LogoKind = "svg"
)

// Node is one rich-text element. Only the fields relevant to Kind are set:
// Text for text/bold/italic/link, Href for links, Name/Logo/LogoKind for
// chips, Ordered/Start for lists and Children for lists and list items.
type Node struct {
	Kind     Kind     `json:"kind"`
	Text     string   `json:"text,omitempty"`
	Href     string   `json:"href,omitempty"`
	Name     string   `json:"name,omitempty"`
	Logo     string   `json:"logo,omitempty"`
	LogoKind LogoKind `json:"logo_kind,omitempty"`
	Ordered  bool     `json:"ordered,omitempty"`
	Start    int      `json:"start,omitempty"`
	Children []Node   `json:"children,omitempty"`
}

func Text(s string) Node { return Node{Kind: KindText, Text: s} }

func Bold(s string) Node { return Node{Kind: KindBold, Text: s} }

func Italic(s string) Node { return Node{Kind: KindItalic, Text: s} }

func Link(text, href string) Node { return Node{Kind: KindLink, Text: text, Href: href} }

func Break() Node { return Node{Kind: KindBreak} }

// Chip builds a chip node, classifying logo when present.
func Chip(name, logo string) Node {
	return Node{Kind: KindChip, Name: name, Logo: logo, LogoKind: classifyLogo(logo)}
}

func ListItem(children ...Node) Node { return Node{Kind: KindListItem, Children: children} }

// List builds a list; start is the first number of an ordered list.
func List(ordered bool, start int, items ...Node) Node {
	return Node{Kind: KindList, Ordered: ordered, Start: start, Children: items}
}

// Equal reports whether two node sequences are structurally identical.
func Equal(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !nodeEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func nodeEqual(a, b Node) bool {
	return a.Kind == b.Kind &&
		a.Text == b.Text &&
		a.Href == b.Href &&
		a.Name == b.Name &&
		a.Logo == b.Logo &&
		a.LogoKind == b.LogoKind &&
		a.Ordered == b.Ordered &&
		a.Start == b.Start &&
		Equal(a.Children, b.Children)
}

// PlainText flattens nodes to their visible text.
func PlainText(nodes []Node) string {
	var out []byte
	var walk func([]Node)
	walk = func(list []Node) {
		for _, node := range list {
			switch node.Kind {
			case KindChip:
				out = append(out, node.Name...)
			case KindBreak:
				out = append(out, '\n')
			case KindList:
				walk(node.Children)
			case KindListItem:
				walk(node.Children)
				out = append(out, '\n')
			default:
				out = append(out, node.Text...)
			}
		}
	}
	walk(nodes)
	return string(out)
}
