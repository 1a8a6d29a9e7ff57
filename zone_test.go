package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractDomains_RecordShapes(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		match bool
	}{
		{"type only", "example.org. NS ns1.example.org.", true},
		{"ttl", "example.org. 3600 NS ns1.example.org.", true},
		{"class", "example.org. IN NS ns1.example.org.", true},
		{"ttl then class", "example.org.  3600  IN  NS  ns1.example.org.", true},
		{"class then ttl", "example.org.\tIN\t3600\tNS\tns1.example.org.", true},
		{"lowercase", "example.org. in ns ns1.example.org.", true},
		{"mixed case", "example.org. 300 In nS ns1.example.org.", true},
		{"uppercase owner", "EXAMPLE.org. NS ns1.example.org.", true},
		{"a record", "example.org. 3600 IN A 192.0.2.1", false},
		{"indented", "   IN NS ns2.example.org.", false},
		{"at sign owner", "@ IN NS ns1.example.org.", false},
		{"comment", "; example.org. IN NS ns1.example.org.", false},
		{"directive", "$ORIGIN org.", false},
		{"no separator", "example.org.NS", false},
		{"blank", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			domains, err := ExtractDomains(strings.NewReader(tt.line+"\n"), "org", nil)
			require.NoError(t, err)
			if tt.match {
				require.Equal(t, 1, domains.Len())
			} else {
				require.Equal(t, 0, domains.Len())
			}
		})
	}
}

func TestExtractDomains_StripsTLD(t *testing.T) {
	zone := strings.Join([]string{
		"foo.example.org. IN NS ns1.example.net.",
		"bar.org. IN NS ns1.example.net.",
		"sub.example.com. IN NS ns1.example.net.",
		"Upper.ORG. IN NS ns1.example.net.",
		"relative IN NS ns1.example.net.",
	}, "\n")

	domains, err := ExtractDomains(strings.NewReader(zone), "org", nil)
	require.NoError(t, err)
	require.Equal(t, []string{
		"foo.example",
		"bar",
		"sub.example.com.",
		"Upper.ORG.",
		"relative",
	}, domains.names())
}

func TestExtractDomains_Deduplicates(t *testing.T) {
	zone := "bar.org. IN NS ns1.bar.org.\n" +
		"bar.org. IN NS ns2.bar.org.\n" +
		"baz.org. IN NS ns1.baz.org.\n"

	var echo bytes.Buffer
	domains, err := ExtractDomains(strings.NewReader(zone), "org", &echo)
	require.NoError(t, err)
	require.Equal(t, []string{"bar", "baz"}, domains.names())

	// Every matching line is echoed with its raw owner name
	require.Equal(t, "bar.org.\nbar.org.\nbaz.org.\n", echo.String())
}

func TestExtractDomains_LongLines(t *testing.T) {
	long := "x.org. IN TXT \"" + strings.Repeat("a", 200000) + "\"\n"
	zone := long + "y.org. IN NS ns1.y.org." // no trailing newline

	domains, err := ExtractDomains(strings.NewReader(zone), "org", nil)
	require.NoError(t, err)
	require.Equal(t, []string{"y"}, domains.names())
}

func TestStripTLD(t *testing.T) {
	require.Equal(t, "foo.example", StripTLD("foo.example.org.", "org"))
	require.Equal(t, "foo.example.org", StripTLD("foo.example.org", "org"))
	require.Equal(t, "foo.example.com.", StripTLD("foo.example.com.", "org"))
	require.Equal(t, "foo", StripTLD("foo.co.uk.", "co.uk"))
}

func TestLoadZoneFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "org.zone")
	zone := "$TTL 3600\n" +
		"org. IN SOA a0.org.afilias-nst.info. noc.afilias-nst.info. 1 2 3 4 5\n" +
		"example.org. 86400 IN NS ns1.example.org.\n" +
		"example.org. 86400 IN NS ns2.example.org.\n" +
		"isc.org. IN 86400 NS ns.isc.org.\n"
	require.NoError(t, os.WriteFile(path, []byte(zone), 0o644))

	var echo bytes.Buffer
	domains, err := LoadZoneFile(path, "org", &echo)
	require.NoError(t, err)
	require.Equal(t, []string{"example", "isc"}, domains.names())
	require.Equal(t, "example.org.\nexample.org.\nisc.org.\n", echo.String())
}

func TestLoadZoneFile_Missing(t *testing.T) {
	_, err := LoadZoneFile(filepath.Join(t.TempDir(), "missing.zone"), "org", nil)
	require.Error(t, err)

	var openErr *FileOpenError
	require.True(t, errors.As(err, &openErr))
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadZoneFile_NoDomains(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.zone")
	require.NoError(t, os.WriteFile(path, []byte("example.org. IN A 192.0.2.1\n"), 0o644))

	_, err := LoadZoneFile(path, "org", nil)

	var emptyErr *EmptyDomainSetError
	require.True(t, errors.As(err, &emptyErr))
	require.Equal(t, "No domains found in '"+path+"'", err.Error())
}

func TestExtractDomains_LineEndings(t *testing.T) {
	crlf := "a.org. IN NS ns1.a.org.\r\nb.org. 3600 NS ns1.b.org.\r\n"
	domains, err := ExtractDomains(strings.NewReader(crlf), "org", nil)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, domains.names())

	// Lines end at '\n' only, so a bare '\r' file is a single line
	cr := "a.org. IN NS ns1.a.org.\rb.org. IN NS ns1.b.org.\r"
	domains, err = ExtractDomains(strings.NewReader(cr), "org", nil)
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, domains.names())
}
