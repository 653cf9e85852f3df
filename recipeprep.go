// Package recipeprep reduces raw recipe-page HTML to a compact,
// information-dense excerpt before it is handed to a language model.
// A fixed chain of extraction strategies each proposes a candidate
// excerpt; the first one a strategy accepts wins, and the original page
// is returned unchanged when nothing safe comes out of the chain.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, yaml/).
package recipeprep
