package mdx_test

import (
	"strings"
	"testing"

	"github.com/adrg/frontmatter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i2y/oasmint/internal/domain"
	"github.com/i2y/oasmint/internal/mdx"
)

const coinsListMarkdown = `# Coins List (ID Map)

get https://api.example.com/api/v3/coins/list

> 📘 Notes
>
> You may use [` + "`coins-markets`" + `](/reference/coins-markets) for market data.

## Response

Plain content that is dropped.
`

func TestConverter_Convert(t *testing.T) {
	conv := mdx.NewConverter(testSite, "")
	ref := domain.OperationRef{ReferenceFile: "coins.json", Path: "/coins/list", Method: "get"}

	got, err := conv.Convert(coinsListMarkdown, ref, domain.ModePro)
	require.NoError(t, err)

	want := lines(
		"---",
		"openapi: api-reference/coins.json get /coins/list",
		"---",
		"",
		"<Note>",
		"  ### Note",
		"",
		"  You may use [`coins-markets`](<https://docs.example.com/reference/coins-markets>) for market data.",
		"</Note>",
	)
	assert.Equal(t, want, got)
}

func TestConverter_Convert_HeaderParsesAsFrontMatter(t *testing.T) {
	conv := mdx.NewConverter(testSite, "api-reference")
	ref := domain.OperationRef{ReferenceFile: "coins.json", Path: "/coins/{id}", Method: "get"}

	got, err := conv.Convert(coinsListMarkdown, ref, domain.ModeDemo)
	require.NoError(t, err)

	var meta struct {
		OpenAPI string `yaml:"openapi"`
	}
	body, err := frontmatter.Parse(strings.NewReader(got), &meta)
	require.NoError(t, err)

	assert.Equal(t, "api-reference/coins.json get /coins/{id}", meta.OpenAPI)
	assert.Contains(t, string(body), "<Note>")
	assert.Contains(t, string(body), "<https://docs.example.com/v3.0.1/reference/coins-markets>")
}

func TestConverter_Convert_NoHeaderWithoutReference(t *testing.T) {
	conv := mdx.NewConverter(testSite, "")

	got, err := conv.Convert(coinsListMarkdown, domain.OperationRef{Path: "/coins/list"}, domain.ModeNone)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "<Note>"))
	assert.NotContains(t, got, "openapi:")
}

func TestConverter_Convert_NothingToConvert(t *testing.T) {
	conv := mdx.NewConverter(testSite, "")
	ref := domain.OperationRef{ReferenceFile: "coins.json", Path: "/coins/list", Method: "get"}

	got, err := conv.Convert("# Title\n\nNo callouts here.\n", ref, domain.ModePro)
	require.NoError(t, err)
	assert.Empty(t, got)
}
