// Package render defines the renderer contract shared by the markup and
// script template strategies, plus the registry that maps template suffixes
// and renderer names to implementations.
package render
