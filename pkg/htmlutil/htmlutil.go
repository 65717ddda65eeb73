// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

// Package htmlutil has small helpers for walking parsed HTML documents.
package htmlutil

import (
	"strings"

	"golang.org/x/net/html"
)

// VisitHTML walks the node tree depth-first, calling before on the way down
// and after on the way up.  Either callback may be nil.
func VisitHTML(node *html.Node, before, after func(*html.Node) error) error {
	if before != nil {
		if err := before(node); err != nil {
			return err
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if err := VisitHTML(child, before, after); err != nil {
			return err
		}
	}
	if after != nil {
		if err := after(node); err != nil {
			return err
		}
	}
	return nil
}

// GetAttr looks up an attribute on a node.
func GetAttr(node *html.Node, namespace, name string) (val string, ok bool) {
	if node == nil {
		return "", false
	}
	for _, attr := range node.Attr {
		if attr.Namespace == namespace && attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

// InnerText returns the concatenated text content of the node's subtree.
func InnerText(node *html.Node) string {
	var text strings.Builder
	_ = VisitHTML(node, func(n *html.Node) error {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		return nil
	}, nil)
	return text.String()
}
