package utils

import (
	"image/color"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beancatalog/models"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"abc", 1},
		{"3", 3},
		{" 4 ", 4},
		{"0", 0},
		{"-2", -2},
		{"2.5", 1},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePage(tt.raw))
		})
	}
}

func TestParseViewState(t *testing.T) {
	values, err := url.ParseQuery("filterBy=Sour&sortBy=flavor+group&page=2")
	require.NoError(t, err)

	assert.Equal(t, models.ViewState{FilterBy: "Sour", SortBy: "flavor group", Page: 2}, ParseViewState(values))
	assert.Equal(t, models.ViewState{Page: 1}, ParseViewState(url.Values{}))
}

func TestParseViewState_KeepsFilterWhitespace(t *testing.T) {
	values, err := url.ParseQuery("filterBy=+sour+&sortBy=+name+")
	require.NoError(t, err)

	state := ParseViewState(values)
	assert.Equal(t, " sour ", state.FilterBy)
	assert.Equal(t, "name", state.SortBy)

	values, err = url.ParseQuery("filterBy=+++")
	require.NoError(t, err)
	assert.Equal(t, "   ", ParseViewState(values).FilterBy)
}

func TestPageHref(t *testing.T) {
	assert.Equal(t, "/?page=3", PageHref("", "", 3))
	assert.Equal(t, "/?filterBy=Sour&page=1&sortBy=flavor+group", PageHref("Sour", "flavor group", 1))
}

func TestShowingSummary(t *testing.T) {
	assert.Equal(t, "Showing 1-6 of 114 beans", ShowingSummary(0, 6, 114))
	assert.Equal(t, "Showing 109-114 of 114 beans", ShowingSummary(108, 114, 114))
	assert.Equal(t, "Showing 0-0 of 0 beans", ShowingSummary(0, 0, 0))
	assert.Equal(t, "Showing 1,201-1,206 of 2,000 beans", ShowingSummary(1200, 1206, 2000))
}

func TestSuffixes(t *testing.T) {
	assert.Equal(t, " (114 total available)", AvailableSuffix(114))
	assert.Equal(t, " • Page 2 of 19", PageLabel(2, 19))
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#FF8000")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}, c)

	c, err = ParseHexColor("fa0")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xaa, B: 0x00, A: 0xff}, c)

	for _, bad := range []string{"", "#12", "#GGGGGG", "red", "#1234567"} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestColorOrFallback(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff}, ColorOrFallback("not a colour"))
	assert.Equal(t, color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff}, ColorOrFallback("#123456"))
}
