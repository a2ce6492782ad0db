package markup

import (
	"bytes"
	"encoding/base64"
	"strconv"

	"github.com/yuin/goldmark/util"
)

// RenderHTML renders nodes as an HTML preview fragment. Text is escaped and
// SVG logos are embedded as data URIs rather than inline markup.
func RenderHTML(nodes []Node) string {
	var buf bytes.Buffer
	renderNodes(&buf, nodes)
	return buf.String()
}

func renderNodes(buf *bytes.Buffer, nodes []Node) {
	for _, node := range nodes {
		renderNode(buf, node)
	}
}

func renderNode(buf *bytes.Buffer, node Node) {
	switch node.Kind {
	case KindText:
		buf.Write(escape(node.Text))
	case KindBold:
		buf.WriteString("<strong>")
		buf.Write(escape(node.Text))
		buf.WriteString("</strong>")
	case KindItalic:
		buf.WriteString("<em>")
		buf.Write(escape(node.Text))
		buf.WriteString("</em>")
	case KindLink:
		buf.WriteString(`<a href="`)
		buf.Write(util.EscapeHTML(util.URLEscape([]byte(node.Href), false)))
		buf.WriteString(`">`)
		buf.Write(escape(node.Text))
		buf.WriteString("</a>")
	case KindChip:
		buf.WriteString(`<span class="chip">`)
		if src := logoSource(node); src != "" {
			buf.WriteString(`<img class="chip-logo" src="`)
			buf.Write(util.EscapeHTML([]byte(src)))
			buf.WriteString(`" alt="">`)
		}
		buf.Write(escape(node.Name))
		buf.WriteString("</span>")
	case KindBreak:
		buf.WriteString("<br>")
	case KindList:
		if node.Ordered {
			buf.WriteString("<ol")
			if node.Start != 1 {
				buf.WriteString(` start="`)
				buf.WriteString(strconv.Itoa(node.Start))
				buf.WriteString(`"`)
			}
			buf.WriteString(">")
			renderNodes(buf, node.Children)
			buf.WriteString("</ol>")
			return
		}
		buf.WriteString("<ul>")
		renderNodes(buf, node.Children)
		buf.WriteString("</ul>")
	case KindListItem:
		buf.WriteString("<li>")
		renderNodes(buf, node.Children)
		buf.WriteString("</li>")
	}
}

func logoSource(node Node) string {
	switch node.LogoKind {
	case LogoSVG:
		return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(node.Logo))
	case LogoURL:
		if !SafeHref(node.Logo) {
			return ""
		}
		return string(util.URLEscape([]byte(node.Logo), false))
	default:
		return ""
	}
}

func escape(s string) []byte {
	return util.EscapeHTML([]byte(s))
}
