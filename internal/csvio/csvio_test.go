package csvio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSniff(t *testing.T) {
	assert.Equal(t, ';', Sniff("a;b\nc;d"))
	assert.Equal(t, ',', Sniff("a,b\nc,d"))
	assert.Equal(t, '\t', Sniff("a\tb\nc\td"))

	// Comma on tie and on delimiter-free input.
	assert.Equal(t, ',', Sniff("a,b;c\nd;e,f"))
	assert.Equal(t, ',', Sniff("plain text"))
	assert.Equal(t, ',', Sniff(""))

	// Only the first five lines are sampled.
	text := "a,b\nc,d\ne,f\ng,h\ni,j\nk;l;m;n;o;p;q\nr;s;t;u;v;w;x"
	assert.Equal(t, ',', Sniff(text))
}

func TestParseBasic(t *testing.T) {
	rows := Parse("Alice,alice@example.com\nBob,bob@example.com")
	require.Len(t, rows, 2)
	assert.Equal(t, "Alice", rows[0].Name)
	assert.Equal(t, "alice@example.com", rows[0].Email)
	assert.Equal(t, 2, rows[1].Line)
}

func TestParseHeaderStripped(t *testing.T) {
	rows := Parse("Name,Email\nAlice,alice@example.com")
	require.Len(t, rows, 1)
	assert.Equal(t, "Alice", rows[0].Name)

	// A lone header-looking row is kept: there is nothing to head.
	rows = Parse("Name,Email")
	require.Len(t, rows, 1)
	assert.Equal(t, "Name", rows[0].Name)
}

func TestParseQuotesAndBlanks(t *testing.T) {
	rows := Parse("\"Alice\";\"alice@example.com\"\n\n;\n'Bob';bob@example.com\r\n")
	require.Len(t, rows, 2)
	assert.Equal(t, "Alice", rows[0].Name)
	assert.Equal(t, "alice@example.com", rows[0].Email)
	assert.Equal(t, "Bob", rows[1].Name)
}

func TestParseLineNumbersCountBlanks(t *testing.T) {
	rows := Parse("Alice,alice@example.com\n\n\nBob,bob@example.com")
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Line)
	assert.Equal(t, 4, rows[1].Line)
}

func TestParseSingleColumn(t *testing.T) {
	rows := Parse("Alice")
	require.Len(t, rows, 1)
	assert.Equal(t, "Alice", rows[0].Name)
	assert.Equal(t, "", rows[0].Email)
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("a@x.com"))
	assert.True(t, ValidEmail("first.last+tag@sub.domain.co"))
	assert.False(t, ValidEmail(""))
	assert.False(t, ValidEmail("no-at-sign"))
	assert.False(t, ValidEmail("a@nodot"))
	assert.False(t, ValidEmail("spaces in@x.com"))
}

func TestExportQuoting(t *testing.T) {
	out := Export([]ExportRow{
		{Name: `Alice "Al" Smith`, Email: "alice@example.com", Category: "VIP"},
		{Name: "Bob", Email: "bob@example.com", Category: ""},
	})
	want := "\"name\",\"email\",\"category\"\n" +
		"\"Alice \"\"Al\"\" Smith\",\"alice@example.com\",\"VIP\"\n" +
		"\"Bob\",\"bob@example.com\",\"\"\n"
	assert.Equal(t, want, out)
}

func TestRoundTrip(t *testing.T) {
	in := []ExportRow{
		{Name: "Alice", Email: "alice@example.com", Category: "VIP"},
		{Name: "Bob Jr.", Email: "bob@example.com", Category: ""},
		{Name: "Carol", Email: "carol@example.com", Category: "Work"},
	}
	rows := Parse(Export(in))
	require.Len(t, rows, len(in))
	for i, r := range rows {
		assert.Equal(t, in[i].Name, r.Name)
		assert.Equal(t, in[i].Email, r.Email)
	}
}
