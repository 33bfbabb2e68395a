// Package docgen turns an invoice into the ordered batch of edit requests
// that reproduces its layout inside a remote rich-text document.
//
// The remote service models a document as one linear character buffer
// addressed by integer offsets, so the package is split in two stages:
// planning (what text, in what order, with what style) and patch building
// (the offset arithmetic that keeps style ranges correct while the buffer
// grows under the preceding inserts).
package docgen

// Style directives a content block may carry.
type Style int

const (
	StyleNone Style = iota
	StyleHeadingCentered
	StyleBodyCentered
)

// ContentBlock is one planned slice of document text. Blocks are produced in
// a fixed order and consumed exactly once by the patch builder.
type ContentBlock struct {
	Text  string
	Style Style
}
