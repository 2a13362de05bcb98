// Package resolver substitutes ${name} variable placeholders in section
// content. Resolution is single-pass and non-recursive; unknown
// placeholders are left verbatim.
package resolver
