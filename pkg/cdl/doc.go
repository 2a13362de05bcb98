// Package cdl assembles context documents from CDL source files.
//
// A load runs a fixed pipeline: parse the XML into a tree, validate the
// structure, resolve ${variable} placeholders in section content, parse the
// embedded flowchart into a graph, and validate the graph against the
// section set. The Loader exposes the full pipeline plus cheaper partial
// paths (sections only, flow only, metadata only) for callers that do not
// need the whole document.
//
// Subpackages hold the stages: parser, validator, resolver, mermaid,
// serializer, with the shared tree types in ast and the finding types in
// errors.
package cdl
