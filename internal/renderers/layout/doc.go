// Package layout turns an inspection into positioned pages.
//
// Build makes a single forward pass over the record: header, title,
// identity rows, one section per non-empty checklist category, then the
// signature block. Before each atomic block it checks the space left on
// the page and starts a new one if the block does not fit, so lines,
// rows and images are never split. Page footers are added in a final
// pass once the page count is known.
//
// The package does no drawing and no image decoding of its own. Text
// metrics come from a Measurer and images are prepared by an Images
// implementation, both supplied by the output backend.
package layout
