package docgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRequestsOffsets(t *testing.T) {
	blocks := []ContentBlock{
		{Text: "AB", Style: StyleHeadingCentered},
		{Text: "", Style: StyleNone},
		{Text: "C", Style: StyleBodyCentered},
	}

	reqs, end, err := BuildRequests(blocks, 1)
	require.NoError(t, err)

	// The empty block is elided: two inserts, two style updates.
	require.Len(t, reqs, 4)

	require.NotNil(t, reqs[0].InsertText)
	assert.Equal(t, "AB", reqs[0].InsertText.Text)
	require.NotNil(t, reqs[0].InsertText.EndOfSegmentLocation)

	require.NotNil(t, reqs[1].UpdateParagraphStyle)
	assert.Equal(t, Range{StartIndex: 1, EndIndex: 3}, reqs[1].UpdateParagraphStyle.Range)
	assert.Equal(t, "HEADING_1", reqs[1].UpdateParagraphStyle.ParagraphStyle.NamedStyleType)
	assert.Equal(t, "CENTER", reqs[1].UpdateParagraphStyle.ParagraphStyle.Alignment)
	assert.Equal(t, "namedStyleType,alignment", reqs[1].UpdateParagraphStyle.Fields)

	require.NotNil(t, reqs[2].InsertText)
	assert.Equal(t, "C", reqs[2].InsertText.Text)

	require.NotNil(t, reqs[3].UpdateParagraphStyle)
	assert.Equal(t, Range{StartIndex: 3, EndIndex: 4}, reqs[3].UpdateParagraphStyle.Range)
	assert.Equal(t, "", reqs[3].UpdateParagraphStyle.ParagraphStyle.NamedStyleType)
	assert.Equal(t, "alignment", reqs[3].UpdateParagraphStyle.Fields)

	assert.Equal(t, int64(4), end)
}

func TestBuildRequestsRejectsNegativeStart(t *testing.T) {
	_, _, err := BuildRequests([]ContentBlock{{Text: "x"}}, -1)
	assert.ErrorIs(t, err, ErrInvalidStartIndex)
}

func TestBuildRequestsEmptyPlan(t *testing.T) {
	reqs, end, err := BuildRequests(nil, DocumentStartIndex)
	require.NoError(t, err)
	assert.Empty(t, reqs)
	assert.Equal(t, int64(DocumentStartIndex), end)
}

// Style ranges never overlap and every range's width equals its block's
// text length; the final cursor is the initial offset plus the sum of all
// block lengths.
func TestBuildRequestsRangeInvariants(t *testing.T) {
	blocks := []ContentBlock{
		{Text: "HEADER\n\n", Style: StyleHeadingCentered},
		{Text: "middle text\n", Style: StyleNone},
		{Text: "", Style: StyleBodyCentered}, // styled but empty → elided
		{Text: "tail", Style: StyleBodyCentered},
	}

	reqs, end, err := BuildRequests(blocks, DocumentStartIndex)
	require.NoError(t, err)

	var total int64
	for _, blk := range blocks {
		total += int64(len(blk.Text)) // ASCII, so bytes == UTF-16 units
	}
	assert.Equal(t, DocumentStartIndex+total, end)

	var prevEnd int64
	for _, r := range reqs {
		if r.UpdateParagraphStyle == nil {
			continue
		}
		rng := r.UpdateParagraphStyle.Range
		assert.Less(t, rng.StartIndex, rng.EndIndex, "zero or negative width range emitted")
		assert.GreaterOrEqual(t, rng.StartIndex, prevEnd, "style ranges overlap")
		prevEnd = rng.EndIndex
	}
}

// Offsets count UTF-16 code units, the remote buffer's index unit — a
// character outside the BMP occupies two units.
func TestBuildRequestsUTF16Lengths(t *testing.T) {
	blocks := []ContentBlock{
		{Text: "a\U0001F600b", Style: StyleHeadingCentered}, // 1 + 2 + 1 units
	}
	reqs, end, err := BuildRequests(blocks, 1)
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, Range{StartIndex: 1, EndIndex: 5}, reqs[1].UpdateParagraphStyle.Range)
	assert.Equal(t, int64(5), end)
}

// End-to-end over a real plan: applying the inserts in order reproduces the
// planned text exactly.
func TestBuildRequestsReproducesPlan(t *testing.T) {
	blocks := PlanContent(sampleInvoice())
	reqs, _, err := BuildRequests(blocks, DocumentStartIndex)
	require.NoError(t, err)

	var buffer string
	for _, r := range reqs {
		if r.InsertText != nil {
			buffer += r.InsertText.Text
		}
	}

	var want string
	for _, blk := range blocks {
		want += blk.Text
	}
	assert.Equal(t, want, buffer)
}
