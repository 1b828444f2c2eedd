package textextract

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTXT(t *testing.T) {
	data := []byte("  Ship name: Northern Star\nIMO 9312345  \n")

	out, err := Extract(bytes.NewReader(data), int64(len(data)), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "Ship name: Northern Star\nIMO 9312345", out.Content)
	assert.Equal(t, 1, out.Pages)
}

func TestExtractDOCX(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(`<w:document><w:body><w:p><w:r><w:t>Safety Management Certificate</w:t></w:r></w:p></w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	out, err := Extract(bytes.NewReader(buf.Bytes()), int64(buf.Len()), ".docx")
	require.NoError(t, err)
	assert.Equal(t, "Safety Management Certificate", out.Content)
}

func TestExtractUnsupportedType(t *testing.T) {
	_, err := Extract(bytes.NewReader(nil), 0, ".xlsx")
	assert.ErrorContains(t, err, "unsupported file type")
}

func TestSupportedTypes(t *testing.T) {
	assert.Equal(t, []string{".pdf", ".docx", ".txt"}, SupportedTypes())
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, "short", Summarize("  short  ", 100))
	assert.Equal(t, "abc", Summarize("abcdef", 3))

	// Rune-safe truncation.
	long := strings.Repeat("å", 10)
	assert.Equal(t, strings.Repeat("å", 4), Summarize(long, 4))
}

func TestStripXMLTags(t *testing.T) {
	assert.Equal(t, "one two", stripXMLTags("<a>one</a><b>two</b>"))
}
