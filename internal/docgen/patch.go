package docgen

import (
	"errors"
	"unicode/utf16"
)

// DocumentStartIndex is where writable content begins in a fresh remote
// document: the service reserves offset 0 for its implicit start marker.
const DocumentStartIndex = 1

// ErrInvalidStartIndex is returned when the builder is asked to start
// before the document origin.
var ErrInvalidStartIndex = errors.New("docgen: start index must not be negative")

// Wire types mirroring the remote batch-edit JSON. A Request carries exactly
// one populated member.

type EndOfSegmentLocation struct {
	SegmentID string `json:"segmentId"`
}

type Range struct {
	StartIndex int64 `json:"startIndex"`
	EndIndex   int64 `json:"endIndex"`
}

type InsertTextRequest struct {
	Text                 string                `json:"text"`
	EndOfSegmentLocation *EndOfSegmentLocation `json:"endOfSegmentLocation,omitempty"`
}

type ParagraphStyle struct {
	NamedStyleType string `json:"namedStyleType,omitempty"`
	Alignment      string `json:"alignment,omitempty"`
}

type UpdateParagraphStyleRequest struct {
	Range          Range          `json:"range"`
	ParagraphStyle ParagraphStyle `json:"paragraphStyle"`
	// Fields is the update mask naming which style attributes to touch.
	Fields string `json:"fields"`
}

type Request struct {
	InsertText           *InsertTextRequest           `json:"insertText,omitempty"`
	UpdateParagraphStyle *UpdateParagraphStyleRequest `json:"updateParagraphStyle,omitempty"`
}

// BuildRequests converts the block plan into the ordered edit batch.
// Applied strictly in order to an initially empty buffer, the inserts
// reproduce the plan byte for byte and every style range addresses exactly
// the span its block occupies after insertion.
//
// It returns the request list and the final cursor position
// (start + sum of all block lengths). Order of emission is the correctness
// contract: requests must never be reordered before submission.
func BuildRequests(blocks []ContentBlock, start int64) ([]Request, int64, error) {
	if start < 0 {
		return nil, 0, ErrInvalidStartIndex
	}

	b := patchBuilder{pos: start}
	for _, blk := range blocks {
		b.appendAndStyle(blk)
	}
	return b.requests, b.pos, nil
}

// patchBuilder tracks the growing buffer with a running cursor so that each
// style range is computed against the post-insertion buffer state.
type patchBuilder struct {
	pos      int64
	requests []Request
}

// appendAndStyle emits an end-of-document insert for the block and, when the
// block carries a style, a paragraph-style update over the exact span the
// inserted text now occupies: [pos, pos+len), with pos captured before the
// insert. Empty blocks are elided entirely — a zero-width style request is
// at best a no-op and at worst a remote-side error.
func (b *patchBuilder) appendAndStyle(blk ContentBlock) {
	length := textLength(blk.Text)
	if length == 0 {
		return
	}

	b.requests = append(b.requests, Request{
		InsertText: &InsertTextRequest{
			Text:                 blk.Text,
			EndOfSegmentLocation: &EndOfSegmentLocation{},
		},
	})

	if style, fields, ok := styleAttrs(blk.Style); ok {
		b.requests = append(b.requests, Request{
			UpdateParagraphStyle: &UpdateParagraphStyleRequest{
				Range:          Range{StartIndex: b.pos, EndIndex: b.pos + length},
				ParagraphStyle: style,
				Fields:         fields,
			},
		})
	}

	b.pos += length
}

func styleAttrs(s Style) (ParagraphStyle, string, bool) {
	switch s {
	case StyleHeadingCentered:
		return ParagraphStyle{NamedStyleType: "HEADING_1", Alignment: "CENTER"}, "namedStyleType,alignment", true
	case StyleBodyCentered:
		return ParagraphStyle{Alignment: "CENTER"}, "alignment", true
	default:
		return ParagraphStyle{}, "", false
	}
}

// textLength measures text the way the remote buffer indexes it:
// UTF-16 code units.
func textLength(s string) int64 {
	n := 0
	for _, r := range s {
		n += len(utf16.Encode([]rune{r}))
	}
	return int64(n)
}
