package output

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// maxTextWidth truncates long text nodes in PrettyPrint output
const maxTextWidth = 80

// StripCard removes non-structural elements from a card and keeps only the
// attributes card selectors depend on, so that a dump shows what the
// extractor sees.
func StripCard(card *goquery.Selection) *goquery.Selection {
	clone := card.Clone()
	clone.Find("script, style, noscript, svg, img, iframe, picture, source").Remove()

	strip := func(_ int, s *goquery.Selection) {
		for _, node := range s.Nodes {
			kept := node.Attr[:0]
			for _, a := range node.Attr {
				if a.Key == "class" || a.Key == "href" {
					kept = append(kept, a)
				}
			}
			node.Attr = kept
		}
	}
	strip(0, clone)
	clone.Find("*").Each(strip)
	return clone
}

// PrettyPrint returns an indented human-readable representation of an HTML node tree.
func PrettyPrint(n *html.Node) string {
	var sb strings.Builder
	printNode(&sb, n, 0)
	return sb.String()
}

func printNode(sb *strings.Builder, n *html.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n.Type {
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			printNode(sb, c, depth)
		}
	case html.ElementNode:
		fmt.Fprintf(sb, "%s<%s", indent, n.Data)
		for _, a := range n.Attr {
			fmt.Fprintf(sb, " %s=%q", a.Key, a.Val)
		}
		sb.WriteString(">\n")
		if isVoidElement(n.Data) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			printNode(sb, c, depth+1)
		}
		fmt.Fprintf(sb, "%s</%s>\n", indent, n.Data)
	case html.TextNode:
		text := strings.Join(strings.Fields(n.Data), " ")
		if text == "" {
			return
		}
		if r := []rune(text); len(r) > maxTextWidth {
			text = string(r[:maxTextWidth]) + "..."
		}
		fmt.Fprintf(sb, "%s%s\n", indent, text)
	case html.DoctypeNode:
		fmt.Fprintf(sb, "<!DOCTYPE %s>\n", n.Data)
	}
}

func isVoidElement(tag string) bool {
	switch tag {
	case "area", "base", "br", "col", "embed", "hr", "img", "input", "link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}
