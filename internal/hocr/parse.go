package hocr

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"
)

// Parse converts raw hOCR data into a structured Document. Engines that
// declare a non-UTF-8 charset are decoded through Latin-1 first.
func Parse(data []byte) (Document, error) {
	var doc Document

	decoded := data
	if enc := declaredCharset(string(data)); enc != "" && enc != "utf-8" {
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return doc, fmt.Errorf("failed to decode %s hOCR data: %w", enc, err)
		}
		decoded = out
	}

	root, err := html.Parse(strings.NewReader(string(decoded)))
	if err != nil {
		return doc, fmt.Errorf("failed to parse hOCR markup: %w", err)
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" && hasClass(n, "ocr_page") {
			doc.Pages = append(doc.Pages, parsePage(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return doc, nil
}

// declaredCharset pulls the charset out of the meta content-type, if any.
func declaredCharset(content string) string {
	idx := strings.Index(content, "charset=")
	if idx < 0 {
		return ""
	}
	rest := content[idx+len("charset="):]
	end := strings.IndexFunc(rest, func(r rune) bool {
		return r == '"' || r == '\'' || r == ';' || r == '>' || r == ' '
	})
	if end < 0 {
		end = len(rest)
	}
	return strings.ToLower(rest[:end])
}

func parsePage(n *html.Node) Page {
	page := Page{
		ID:   attr(n, "id"),
		BBox: parseBBox(attr(n, "title")),
	}

	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.ElementNode && c.Data == "p" && hasClass(c, "ocr_par") {
			page.Paragraphs = append(page.Paragraphs, parseParagraph(c))
			return
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return page
}

func parseParagraph(n *html.Node) Paragraph {
	text := wordText(n)
	return Paragraph{
		ID:      attr(n, "id"),
		BBox:    parseBBox(attr(n, "title")),
		Text:    text,
		HasText: strings.TrimSpace(text) != "",
	}
}

// wordText concatenates the ocrx_word spans of a paragraph, separated by
// single spaces within a line and newlines between ocr_line elements.
func wordText(n *html.Node) string {
	var lines []string
	var current []string

	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.ElementNode {
			if c.Data == "span" && hasClass(c, "ocr_line") && len(current) > 0 {
				lines = append(lines, strings.Join(current, " "))
				current = current[:0]
			}
			if c.Data == "span" && hasClass(c, "ocrx_word") {
				current = append(current, nodeText(c))
				return
			}
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return strings.Join(lines, "\n")
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// parseBBox extracts the bbox property from an hOCR title attribute,
// e.g. "bbox 100 200 300 400; x_wconf 95".
func parseBBox(title string) BBox {
	for _, part := range strings.Split(title, ";") {
		fields := strings.Fields(strings.TrimSpace(part))
		if len(fields) == 5 && fields[0] == "bbox" {
			coords := make([]float64, 4)
			ok := true
			for i, f := range fields[1:] {
				v, err := strconv.ParseFloat(f, 64)
				if err != nil {
					ok = false
					break
				}
				coords[i] = v
			}
			if ok {
				return BBox{X0: coords[0], Y0: coords[1], X1: coords[2], Y1: coords[3]}
			}
		}
	}
	return BBox{}
}
