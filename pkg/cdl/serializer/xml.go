package serializer

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"canvas-hq/loom/pkg/cdl/ast"
)

const indent = "  "

// Serialize renders a document tree back to CDL text.
//
// Output is deterministic: two-space indentation, metadata elements in
// canonical order, section content and diagram bodies wrapped in CDATA.
// The rendered text round-trips through the parser to an equivalent tree.
func Serialize(doc *ast.Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("cannot serialize a nil document")
	}

	var sb strings.Builder
	sb.WriteString(xml.Header)

	version := doc.Version
	if version == "" {
		version = "1.0"
	}
	fmt.Fprintf(&sb, "<context version=%q>\n", version)

	if doc.Meta != nil {
		writeMetadata(&sb, doc.Meta)
	}
	writeVariables(&sb, doc.Variables)
	writeSections(&sb, doc.Sections)
	if doc.Flow != nil {
		writeFlow(&sb, doc.Flow)
	}

	sb.WriteString("</context>\n")
	return sb.String(), nil
}

func writeMetadata(sb *strings.Builder, meta *ast.Metadata) {
	sb.WriteString(indent + "<meta>\n")
	writeTextElement(sb, 2, "title", meta.Title)
	writeTextElement(sb, 2, "author", meta.Author)
	writeTextElement(sb, 2, "created", meta.Created)
	fmt.Fprintf(sb, "%s<app name=%q version=%q/>\n",
		strings.Repeat(indent, 2), escapeAttr(meta.App.Name), escapeAttr(meta.App.Version))
	writeTextElement(sb, 2, "tags", strings.Join(meta.Tags, ", "))
	writeTextElement(sb, 2, "description", meta.Description)
	sb.WriteString(indent + "</meta>\n")
}

func writeVariables(sb *strings.Builder, variables []*ast.Variable) {
	sb.WriteString(indent + "<variables>\n")
	for _, v := range variables {
		fmt.Fprintf(sb, "%s<var name=%q>%s</var>\n",
			strings.Repeat(indent, 2), escapeAttr(v.Name), escapeText(v.Value))
	}
	sb.WriteString(indent + "</variables>\n")
}

func writeSections(sb *strings.Builder, sections []*ast.Section) {
	sb.WriteString(indent + "<sections>\n")
	for _, s := range sections {
		prefix := strings.Repeat(indent, 2)
		fmt.Fprintf(sb, "%s<section id=%q type=%q", prefix, escapeAttr(s.ID), escapeAttr(string(s.Type)))
		if s.RefTarget != "" {
			fmt.Fprintf(sb, " refTarget=%q", escapeAttr(s.RefTarget))
		}
		sb.WriteString(">\n")
		writeCDATAElement(sb, 3, "content", s.Content)
		sb.WriteString(prefix + "</section>\n")
	}
	sb.WriteString(indent + "</sections>\n")
}

func writeFlow(sb *strings.Builder, flow *ast.Flow) {
	version := flow.Version
	if version == "" {
		version = "1.0"
	}
	fmt.Fprintf(sb, "%s<flow id=%q version=%q>\n", indent, escapeAttr(flow.ID), escapeAttr(version))
	if flow.Title != "" {
		writeTextElement(sb, 2, "title", flow.Title)
	}
	writeCDATAElement(sb, 2, "diagram", flow.Source)
	sb.WriteString(indent + "</flow>\n")
}

func writeTextElement(sb *strings.Builder, depth int, tag, text string) {
	prefix := strings.Repeat(indent, depth)
	fmt.Fprintf(sb, "%s<%s>%s</%s>\n", prefix, tag, escapeText(text), tag)
}

// writeCDATAElement wraps content in a CDATA block. The body is emitted
// byte-exact, with no trimming or padding, so re-parsing the output yields
// content identical to what was serialized.
func writeCDATAElement(sb *strings.Builder, depth int, tag, content string) {
	prefix := strings.Repeat(indent, depth)
	// "]]>" cannot appear inside a CDATA block; split it across two blocks.
	body := strings.ReplaceAll(content, "]]>", "]]]]><![CDATA[>")
	fmt.Fprintf(sb, "%s<%s><![CDATA[%s]]></%s>\n", prefix, tag, body, tag)
}

func escapeText(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}

// escapeAttr escapes attribute values. xml.EscapeText also escapes quotes,
// which is sufficient for values rendered inside double quotes.
func escapeAttr(s string) string {
	return escapeText(s)
}
