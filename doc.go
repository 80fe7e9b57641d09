/*
Package flexmark renders Markdown with inline mark spans.

A mark span highlights inline content and may carry a one-letter
classification that selects a colour:

	Here is ==marked content==
	Here is =r=marked content with red classification==

Spans may wrap other inline formatting (==**bold**== or =g=_italic_==) and
may open and close in different text runs of the same paragraph.

# Usage

	eng, err := flexmark.New()
	if err != nil {
		log.Fatal(err)
	}

	out, err := eng.RenderHTML([]byte("Here is ==marked content=="))
	// <p>Here is <mark class="flexible-marker flexible-marker-default">marked content</mark></p>

The tag name, class list and extra attributes of mark elements are
configurable through marker.Options (or a YAML file, see cmd/flexmark).

# Architecture

The engine parses Markdown with goldmark into an mdast tree
(pkg/adapters/goldmark), resolves mark spans in place (pkg/marker) and hands
the tree to a renderer (pkg/render/html, pkg/render/term). Adapters expose
the engine over HTTP, MCP and loam document repositories.
*/
package flexmark
