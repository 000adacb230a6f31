package pipeline

import (
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// rebasedAttrs lists the URL attributes rewritten per element.
var rebasedAttrs = map[atom.Atom]string{
	atom.Img:    "src",
	atom.Source: "src",
	atom.Script: "src",
	atom.A:      "href",
	atom.Link:   "href",
}

// RebaseRelativePaths rewrites relative URLs in an HTML fragment that was
// read from fromDir so they stay valid in a document written to toDir.
// If either directory is empty, returns the HTML unchanged.
//
// Rewrites img[src], source[src], script[src], a[href] and link[href].
// URLs with a scheme, absolute paths and anchors are left alone.
func RebaseRelativePaths(htmlContent, fromDir, toDir string) (string, error) {
	if fromDir == "" || toDir == "" {
		return htmlContent, nil
	}

	absFrom, err := filepath.Abs(fromDir)
	if err != nil {
		return "", err
	}
	absTo, err := filepath.Abs(toDir)
	if err != nil {
		return "", err
	}
	if absFrom == absTo {
		return htmlContent, nil
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	rebaseNode(doc, absFrom, absTo)

	return renderHTML(doc, isFragment)
}

// parseHTML parses HTML content, handling both full documents and fragments.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders the tree back to text. Fragments render their children
// only, so no <html><body> wrapper is added.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func rebaseNode(n *html.Node, fromDir, toDir string) {
	if n.Type == html.ElementNode {
		if key, ok := rebasedAttrs[n.DataAtom]; ok {
			rebaseAttr(n, key, fromDir, toDir)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rebaseNode(c, fromDir, toDir)
	}
}

func rebaseAttr(n *html.Node, key, fromDir, toDir string) {
	for i, attr := range n.Attr {
		if attr.Key != key || !isRelativeURL(attr.Val) {
			continue
		}

		path, suffix := splitURLSuffix(attr.Val)
		rel, err := filepath.Rel(toDir, filepath.Join(fromDir, filepath.FromSlash(path)))
		if err != nil {
			continue
		}
		n.Attr[i].Val = filepath.ToSlash(rel) + suffix
	}
}

// isRelativeURL returns true if the URL is a relative file reference.
func isRelativeURL(u string) bool {
	if u == "" || strings.HasPrefix(u, "#") || strings.HasPrefix(u, "/") || strings.HasPrefix(u, "?") {
		return false
	}
	if filepath.IsAbs(u) {
		return false
	}

	// Any scheme (http:, data:, mailto:) before the first path separator.
	if i := strings.IndexByte(u, ':'); i >= 0 && !strings.ContainsAny(u[:i], "/?#") {
		return false
	}
	return true
}

// splitURLSuffix separates a query or fragment from the path.
func splitURLSuffix(u string) (path, suffix string) {
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		return u[:i], u[i:]
	}
	return u, ""
}
