// Package marker resolves inline mark spans in a Markdown syntax tree.
//
// A span opens with "=" followed by an optional classification letter and
// another "=", and closes with "==":
//
//	==highlighted==
//	=r=highlighted in red==
//
// Transform runs four passes over the text nodes of a tree. The single-run
// pass handles spans wholly inside one text node. The cross-run pass
// handles spans whose delimiters sit in different sibling text nodes, with
// formatted content between them. The empty pass applies the configured
// policy to spans with no content, and the escape pass restores a literal
// "==" written with the configured escape pattern.
//
// The classification letter is looked up in a Dictionary (by default a
// colour per letter). The resolved colour drives the tag name, class list
// and extra properties set on each mark node; see Options.
package marker
