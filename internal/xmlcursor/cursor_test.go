package xmlcursor

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNS = "http://example.com/ns"

func TestCursorNavigation(t *testing.T) {
	c := NewString(`<?xml version="1.0"?>
<!-- prolog comment -->
<a:root xmlns:a="` + testNS + `" id="r">
  <a:child>  12.5 </a:child>
  <a:empty/>
</a:root>`)

	require.NoError(t, c.Start())
	assert.Equal(t, "root", c.LocalName())
	assert.Equal(t, testNS, c.Namespace())
	v, ok := c.Attr("", "id")
	assert.True(t, ok)
	assert.Equal(t, "r", v)

	ev, err := c.NextTag()
	require.NoError(t, err)
	assert.Equal(t, StartElement, ev)
	f, err := c.FloatElement(testNS, "child")
	require.NoError(t, err)
	assert.Equal(t, 12.5, f)
	require.NoError(t, c.Require(EndElement, testNS, "child"))

	ev, err = c.NextTag()
	require.NoError(t, err)
	assert.Equal(t, StartElement, ev)
	assert.Equal(t, 2, c.Depth())
	ev, err = c.NextTag()
	require.NoError(t, err)
	assert.Equal(t, EndElement, ev)
	assert.Equal(t, "empty", c.LocalName())

	ev, err = c.NextTag()
	require.NoError(t, err)
	assert.Equal(t, EndElement, ev)
	assert.Equal(t, "root", c.LocalName())
}

func TestCursorNextTagRejectsText(t *testing.T) {
	c := NewString(`<root>text<child/></root>`)
	require.NoError(t, c.Start())
	_, err := c.NextTag()
	require.Error(t, err)

	var serr *StructuralError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 1, serr.Location.Line)
}

func TestCursorRequire(t *testing.T) {
	c := NewString(`<root xmlns="` + testNS + `"><child/></root>`)
	require.NoError(t, c.Start())

	tests := []struct {
		name    string
		ev      Event
		ns      string
		local   string
		wantErr bool
	}{
		{"exact", StartElement, testNS, "root", false},
		{"any namespace", StartElement, "", "root", false},
		{"any name", StartElement, "", "", false},
		{"wrong name", StartElement, testNS, "other", true},
		{"wrong namespace", StartElement, "urn:x", "root", true},
		{"wrong event", EndElement, testNS, "root", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Require(tt.ev, tt.ns, tt.local)
			if (err != nil) != tt.wantErr {
				t.Errorf("Require() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCursorSkip(t *testing.T) {
	c := NewString(`<root><skip><a><b/></a>text</skip><after/></root>`)
	require.NoError(t, c.Start())
	_, err := c.NextTag()
	require.NoError(t, err)
	require.NoError(t, c.Skip())
	require.NoError(t, c.Require(EndElement, "", "skip"))
	_, err = c.NextTag()
	require.NoError(t, err)
	assert.Equal(t, "after", c.LocalName())
}

func TestCursorElementTextRejectsChildren(t *testing.T) {
	c := NewString(`<root>1 <x/> 2</root>`)
	require.NoError(t, c.Start())
	_, err := c.ElementText()
	assert.Error(t, err)
}

func TestCursorPositiveInt(t *testing.T) {
	for _, s := range []string{"0", "-3", "abc"} {
		c := NewString(`<n>` + s + `</n>`)
		require.NoError(t, c.Start())
		_, err := c.ElementTextAsPositiveInt()
		assert.Error(t, err, s)
	}
}

func TestCursorLatin1(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><n>M\xfcnster</n>"
	c := New(strings.NewReader(doc), "latin1.xml")
	require.NoError(t, c.Start())
	s, err := c.ElementText()
	require.NoError(t, err)
	assert.Equal(t, "Münster", s)
}

func TestWriterNamespaces(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.SetPrefix("a", testNS)
	w.SetPrefix("xlink", "http://www.w3.org/1999/xlink")

	w.StartElement(testNS, "root")
	w.Attr(testNS, "id", "r1")
	w.StartElement(testNS, "child")
	w.Attr("http://www.w3.org/1999/xlink", "href", "#r1")
	w.EndElement()
	w.StartElement(testNS, "text")
	w.Characters("1 < 2")
	w.EndElement()
	w.EndElement()
	require.NoError(t, w.Flush())

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, `xmlns:a="`+testNS+`"`))
	assert.Contains(t, out, `<a:child xmlns:xlink="http://www.w3.org/1999/xlink" xlink:href="#r1">`)
	assert.Contains(t, out, `1 &lt; 2`)

	// The output must be readable by the cursor.
	c := NewString(out)
	require.NoError(t, c.Start())
	id, ok := c.Attr(testNS, "id")
	assert.True(t, ok)
	assert.Equal(t, "r1", id)
}

func TestWriterUnbalanced(t *testing.T) {
	w := NewWriter(&bytes.Buffer{})
	w.EndElement()
	assert.Error(t, w.Flush())

	w = NewWriter(&bytes.Buffer{})
	w.Attr("", "x", "y")
	assert.Error(t, w.Err())
}
