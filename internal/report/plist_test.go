package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>files</key>
	<array>
		<string>/work/openssl/crypto/pkcs7/pk7_doit.c</string>
		<string>/work/openssl/ssl/ssl_lib.c</string>
	</array>
	<key>diagnostics</key>
	<array>
		<dict>
			<key>check_name</key>
			<string>unix.Malloc</string>
			<key>description</key>
			<string>Potential leak of memory</string>
			<key>location</key>
			<dict>
				<key>line</key>
				<integer>193</integer>
				<key>file</key>
				<integer>0</integer>
			</dict>
		</dict>
		<dict>
			<key>category</key>
			<string>core.NullDereference</string>
			<key>message</key>
			<string>Dereference of null pointer</string>
			<key>location</key>
			<dict>
				<key>line</key>
				<integer>42</integer>
				<key>file</key>
				<integer>1</integer>
			</dict>
		</dict>
		<dict>
			<key>check_name</key>
			<string>deadcode.DeadStores</string>
			<key>description</key>
			<string>Value stored is never read</string>
			<key>file_path</key>
			<string>/work/openssl/apps/openssl.c</string>
			<key>location</key>
			<dict>
				<key>line</key>
				<integer>7</integer>
				<key>file</key>
				<integer>99</integer>
			</dict>
		</dict>
		<dict>
			<key>check_name</key>
			<string>unix.API</string>
			<key>description</key>
			<string>No location at all</string>
		</dict>
	</array>
	<key>metadata</key>
	<dict>
		<key>analyzer</key>
		<string>clangsa</string>
	</dict>
</dict>
</plist>
`

func writeDocument(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParsePlistDocument(t *testing.T) {
	dir := t.TempDir()
	path := writeDocument(t, dir, "report.plist", samplePlist)

	doc := Parse(path, hclog.NewNullLogger())

	require.Len(t, doc.Findings, 4)

	leaks := doc.Findings["/work/openssl/crypto/pkcs7/pk7_doit.c"]
	require.Len(t, leaks, 1)
	assert.Equal(t, "unix.Malloc", leaks[0].Checker)
	assert.Equal(t, "Potential leak of memory", leaks[0].Message)
	require.NotNil(t, leaks[0].Line)
	assert.Equal(t, 193, *leaks[0].Line)

	// category and message are the fallback fields
	nulls := doc.Findings["/work/openssl/ssl/ssl_lib.c"]
	require.Len(t, nulls, 1)
	assert.Equal(t, "core.NullDereference", nulls[0].Checker)
	assert.Equal(t, "Dereference of null pointer", nulls[0].Message)

	// out-of-range file index resolves through the direct file_path field
	dead := doc.Findings["/work/openssl/apps/openssl.c"]
	require.Len(t, dead, 1)
	assert.Equal(t, "deadcode.DeadStores", dead[0].Checker)

	// no resolvable path lands under the sentinel
	unknown := doc.Findings[UnknownFile]
	require.Len(t, unknown, 1)
	assert.Equal(t, "unix.API", unknown[0].Checker)
	assert.Nil(t, unknown[0].Line)

	assert.Equal(t, "clangsa", doc.Metadata["analyzer"])
}

func TestParsePlistDocumentJSONPayload(t *testing.T) {
	dir := t.TempDir()
	content := `{
		"files": ["src/a.c"],
		"diagnostics": [
			{"check_name": "alpha", "description": "boom", "location": {"line": 3, "file": 0}}
		],
		"metadata": {"analyzer": "other"}
	}`
	path := writeDocument(t, dir, "report.plist", content)

	doc := Parse(path, hclog.NewNullLogger())

	require.Len(t, doc.Findings["src/a.c"], 1)
	assert.Equal(t, "alpha", doc.Findings["src/a.c"][0].Checker)
	require.NotNil(t, doc.Findings["src/a.c"][0].Line)
	assert.Equal(t, 3, *doc.Findings["src/a.c"][0].Line)
	assert.Equal(t, "other", doc.Metadata["analyzer"])
}

func TestParseMalformedDocumentContributesNothing(t *testing.T) {
	dir := t.TempDir()
	path := writeDocument(t, dir, "broken.plist", "this is not a plist")

	doc := Parse(path, hclog.NewNullLogger())

	if len(doc.Findings) != 0 {
		t.Fatalf("expected zero findings from a malformed document, got %d", len(doc.Findings))
	}
}

func TestParseMissingDocumentContributesNothing(t *testing.T) {
	doc := Parse(filepath.Join(t.TempDir(), "nope.plist"), hclog.NewNullLogger())

	if len(doc.Findings) != 0 {
		t.Fatalf("expected zero findings from a missing document, got %d", len(doc.Findings))
	}
}

func TestDiscoverFindsDocumentsSorted(t *testing.T) {
	dir := t.TempDir()
	writeDocument(t, dir, "b.plist", samplePlist)
	writeDocument(t, dir, "notes.txt", "irrelevant")
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0755))
	writeDocument(t, sub, "a.plist", samplePlist)

	found, err := Discover(dir)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, filepath.Join(dir, "b.plist"), found[0])
	assert.Equal(t, filepath.Join(sub, "a.plist"), found[1])
}

func TestDiscoverSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeDocument(t, dir, "only.plist", samplePlist)

	found, err := Discover(path)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, found)

	other := writeDocument(t, dir, "only.log", "text")
	found, err = Discover(other)
	require.NoError(t, err)
	assert.Empty(t, found)
}
