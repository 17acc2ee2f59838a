package goquery_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/ifacedoc"
	"github.com/fwojciec/ifacedoc/goquery"
	"github.com/fwojciec/ifacedoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// measurablePage mimics a fully-detailed page of the known generator:
// summary and role between horizontal rules, index headings, and one
// anchored section per member.
const measurablePage = `<html><head><title>Measurable (Object)</title></head><body>
<h1>Measurable (Object)</h1>
<hr>
The <b>Measurable object</b> reports geometric measures.
<b>Role:</b> The Measurable object gives access to measures computed on the current selection.
<hr>
<h2><a name="PropertyIndex"></a>Property Index</h2>
<h2><a name="MethodIndex"></a>Method Index</h2>
<a name="Length"></a>
o Property <b>Length</b>() As <script>activateLink('CAAMeasurable','double')</script> (Read Only)
<dd>Returns the measured length.
<a name="Angle"></a>
o Property <b>Angle</b>() As <script>activateLink('CAAMeasurable','double')</script> (Read / Write)
<dd>Returns or sets the measured angle.
<a name="GetLength"></a>
o Func <b>GetLength</b>(<em>oLength</em>) As <script>activateLink('CAAMeasurable','double')</script>
<dd>Computes and returns the measured length.
<dl><dt><em>oLength</em><dd>The computed length value.</dl>
</body></html>`

// indexOnlyPage carries only the structured property index: two
// definition-term links each followed by a definition-description.
const indexOnlyPage = `<html><body>
<h2><a name="PropertyIndex"></a>Property Index</h2>
<dl>
<dt><a href="#Length"><b>Length</b></a><dd>Returns the length.
<dt><a href="#Width"><b>Width</b></a><dd>Returns the width.
</dl>
</body></html>`

func fixedHierarchy(table *ifacedoc.HierarchyTable) *mock.HierarchyLoader {
	return &mock.HierarchyLoader{
		LoadFn: func(context.Context) (*ifacedoc.HierarchyTable, error) {
			return table, nil
		},
	}
}

func emptyHierarchy() *mock.HierarchyLoader {
	return fixedHierarchy(&ifacedoc.HierarchyTable{})
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("detailed page", func(t *testing.T) {
		t.Parallel()

		table := &ifacedoc.HierarchyTable{
			ParentKeyOf:  map[string]string{"CAAMeasurable": "CAAAnyObject"},
			ParentNameOf: map[string]string{"CAAMeasurable": "AnyObject"},
		}
		e := goquery.NewExtractor(fixedHierarchy(table), nil)

		iface, err := e.Extract(context.Background(), measurablePage, "Measurable", "http://example.com/interface_Measurable.htm")
		require.NoError(t, err)

		assert.Equal(t, "Measurable", iface.Name)
		assert.Equal(t, ifacedoc.CategoryObject, iface.Category)
		assert.False(t, iface.IsCollection)
		assert.Equal(t, "http://example.com/interface_Measurable.htm", iface.SourceURL)
		assert.Equal(t, "Measurable object.", iface.Description)
		assert.Equal(t, "The Measurable object gives access to measures computed on the current selection.", iface.Role)
		assert.Equal(t, []string{"AnyObject", "Measurable"}, iface.Hierarchy)

		require.Len(t, iface.Properties, 2)
		length := iface.Properties[0]
		assert.Equal(t, "Length", length.Name)
		assert.Equal(t, "double", length.Type)
		assert.Equal(t, ifacedoc.AccessReadOnly, length.Access)
		assert.Equal(t, "Returns the measured length.", length.Description)
		assert.Equal(t, "Length", length.Anchor)
		assert.Equal(t, ifacedoc.AccessReadWrite, iface.Properties[1].Access)

		require.Len(t, iface.Methods, 1)
		m := iface.Methods[0]
		assert.Equal(t, "GetLength", m.Name)
		assert.Equal(t, "GetLength(oLength) As double", m.Signature)
		assert.Equal(t, "double", m.ReturnType)
		assert.Equal(t, "Computes and returns the measured length.", m.Description)
		require.Len(t, m.Params, 1)
		assert.Equal(t, "oLength", m.Params[0].Name)
		assert.Equal(t, "The computed length value.", m.Params[0].Description)
	})

	t.Run("structured property index", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(emptyHierarchy(), nil)
		iface, err := e.Extract(context.Background(), indexOnlyPage, "Measurable", "http://example.com/x.htm")
		require.NoError(t, err)

		require.Len(t, iface.Properties, 2)
		assert.Equal(t, "Length", iface.Properties[0].Name)
		assert.Equal(t, "Width", iface.Properties[1].Name)
		assert.Equal(t, "Length", iface.Properties[0].Anchor)
		assert.Equal(t, "Returns the length.", iface.Properties[0].Description)
		assert.Equal(t, "Returns the width.", iface.Properties[1].Description)
		assert.Equal(t, ifacedoc.AccessUnknown, iface.Properties[0].Access)
		assert.Empty(t, iface.Methods)
	})

	t.Run("missing role label yields empty role", func(t *testing.T) {
		t.Parallel()

		markup := `<html><body><hr>The <b>Widget object</b> does things.<hr></body></html>`
		e := goquery.NewExtractor(emptyHierarchy(), nil)
		iface, err := e.Extract(context.Background(), markup, "Widget", "http://example.com/x.htm")
		require.NoError(t, err)

		assert.Empty(t, iface.Role)
		assert.Equal(t, "Widget object.", iface.Description)
	})

	t.Run("flat index falls back to trigger segmentation", func(t *testing.T) {
		t.Parallel()

		markup := `<html><body>
<h2><a name="MethodIndex"></a>Method Index</h2>
<p>GetLength Returns the measured length. GetArea Returns the measured area.</p>
</body></html>`
		e := goquery.NewExtractor(emptyHierarchy(), nil)
		iface, err := e.Extract(context.Background(), markup, "Measurable", "http://example.com/x.htm")
		require.NoError(t, err)

		require.Len(t, iface.Methods, 2)
		assert.Equal(t, "GetLength", iface.Methods[0].Name)
		assert.Equal(t, "Returns the measured length.", iface.Methods[0].Description)
		assert.Equal(t, "GetLength()", iface.Methods[0].Signature)
		assert.Equal(t, "GetArea", iface.Methods[1].Name)
	})

	t.Run("collection keyword wins category", func(t *testing.T) {
		t.Parallel()

		markup := `<html><body><h1>Documents (Collection)</h1>A collection of documents.</body></html>`
		e := goquery.NewExtractor(emptyHierarchy(), nil)
		iface, err := e.Extract(context.Background(), markup, "Documents", "http://example.com/x.htm")
		require.NoError(t, err)

		assert.Equal(t, ifacedoc.CategoryCollection, iface.Category)
		assert.True(t, iface.IsCollection)
	})

	t.Run("extraction is deterministic", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(emptyHierarchy(), nil)
		first, err := e.Extract(context.Background(), measurablePage, "Measurable", "http://example.com/x.htm")
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := e.Extract(context.Background(), measurablePage, "Measurable", "http://example.com/x.htm")
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})
}

func TestExtractor_Truncation(t *testing.T) {
	t.Parallel()

	t.Run("long property description is bounded", func(t *testing.T) {
		t.Parallel()

		long := strings.TrimSpace(strings.Repeat("word ", 100)) // 499 chars
		markup := fmt.Sprintf(`<html><body>
<a name="Length"></a>
o Property <b>Length</b>() As <script>activateLink('CAAMeasurable','double')</script> (Read Only)
<dd>%s
</body></html>`, long)

		e := goquery.NewExtractor(emptyHierarchy(), nil)
		iface, err := e.Extract(context.Background(), markup, "Measurable", "http://example.com/x.htm")
		require.NoError(t, err)

		require.Len(t, iface.Properties, 1)
		desc := iface.Properties[0].Description
		assert.Equal(t, 303, utf8.RuneCountInString(desc))
		assert.True(t, strings.HasSuffix(desc, "..."))
	})

	t.Run("long method description is bounded", func(t *testing.T) {
		t.Parallel()

		long := strings.TrimSpace(strings.Repeat("word ", 100))
		markup := fmt.Sprintf(`<html><body>
<a name="Run"></a>
o Sub <b>Run</b>()
<dd>%s
</body></html>`, long)

		e := goquery.NewExtractor(emptyHierarchy(), nil)
		iface, err := e.Extract(context.Background(), markup, "Measurable", "http://example.com/x.htm")
		require.NoError(t, err)

		require.Len(t, iface.Methods, 1)
		desc := iface.Methods[0].Description
		assert.Equal(t, 203, utf8.RuneCountInString(desc))
		assert.True(t, strings.HasSuffix(desc, "..."))
	})

	t.Run("short descriptions pass through", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(emptyHierarchy(), nil)
		iface, err := e.Extract(context.Background(), measurablePage, "Measurable", "http://example.com/x.htm")
		require.NoError(t, err)

		require.Len(t, iface.Properties, 2)
		assert.Equal(t, "Returns the measured length.", iface.Properties[0].Description)
	})
}

func TestExtractor_PropertyCap(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	sb.WriteString(`<html><body><h2><a name="PropertyIndex"></a>Property Index</h2><dl>`)
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&sb, `<dt><a href="#P%02d">P%02d</a><dd>Entry %d.`, i, i, i)
	}
	sb.WriteString(`</dl></body></html>`)

	e := goquery.NewExtractor(emptyHierarchy(), nil)
	iface, err := e.Extract(context.Background(), sb.String(), "Measurable", "http://example.com/x.htm")
	require.NoError(t, err)

	require.Len(t, iface.Properties, 15)
	assert.Equal(t, "P00", iface.Properties[0].Name)
	assert.Equal(t, "P14", iface.Properties[14].Name)
}

func TestExtractor_HierarchyLoadFailure(t *testing.T) {
	t.Parallel()

	loader := &mock.HierarchyLoader{
		LoadFn: func(context.Context) (*ifacedoc.HierarchyTable, error) {
			return nil, ifacedoc.Errorf(ifacedoc.EUNAVAILABLE, "script unreachable")
		},
	}
	e := goquery.NewExtractor(loader, nil)

	iface, err := e.Extract(context.Background(), measurablePage, "Measurable", "http://example.com/x.htm")
	require.NoError(t, err, "a missing hierarchy must not fail the page")
	assert.Empty(t, iface.Hierarchy)
	assert.Equal(t, "Measurable", iface.Name)
}
