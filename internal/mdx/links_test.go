package mdx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/i2y/oasmint/internal/domain"
	"github.com/i2y/oasmint/internal/mdx"
)

var testSite = domain.DocsSite{
	BaseURL:     "https://docs.example.com/reference",
	DemoBaseURL: "https://docs.example.com/v3.0.1/reference",
}

func TestRewriteReferenceLinks(t *testing.T) {
	input := "See [`coins-list`](/reference/coins-list) and [`ping`](/reference/ping-server)."

	tests := []struct {
		name string
		mode domain.Mode
		want string
	}{
		{
			name: "No mode uses primary base",
			mode: domain.ModeNone,
			want: "See [`coins-list`](<https://docs.example.com/reference/coins-list>) and [`ping`](<https://docs.example.com/reference/ping-server>).",
		},
		{
			name: "Pro uses primary base",
			mode: domain.ModePro,
			want: "See [`coins-list`](<https://docs.example.com/reference/coins-list>) and [`ping`](<https://docs.example.com/reference/ping-server>).",
		},
		{
			name: "Demo uses alternate base",
			mode: domain.ModeDemo,
			want: "See [`coins-list`](<https://docs.example.com/v3.0.1/reference/coins-list>) and [`ping`](<https://docs.example.com/v3.0.1/reference/ping-server>).",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mdx.RewriteReferenceLinks(input, testSite.BaseFor(tt.mode))
			assert.Equal(t, tt.want, got)

			// A second pass leaves the rewritten links alone.
			assert.Equal(t, got, mdx.RewriteReferenceLinks(got, testSite.BaseFor(tt.mode)))
		})
	}
}

func TestRewriteReferenceLinks_IgnoresOtherLinks(t *testing.T) {
	input := "[plain](/reference/x) [`code`](https://example.com) [`guide`](/guides/start)"
	assert.Equal(t, input, mdx.RewriteReferenceLinks(input, testSite.BaseURL))
}

func TestRewriteReferenceLinks_TrailingSlashOnBase(t *testing.T) {
	got := mdx.RewriteReferenceLinks("[`a`](/reference/a)", "https://docs.example.com/reference/")
	assert.Equal(t, "[`a`](<https://docs.example.com/reference/a>)", got)
}
