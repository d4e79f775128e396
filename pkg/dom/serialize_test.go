package dom

import "testing"

func TestSerialize(t *testing.T) {
	div := NewElement("div", NamespaceHTML)
	div.SetAttribute("id", "main")
	div.SetAttribute("class", `a "b"`)
	div.AppendChild(NewText("1 < 2"))
	div.AppendChild(NewElement("br", NamespaceHTML))
	div.AppendChild(NewComment("note"))

	svg := NewElement("svg", NamespaceSVG)
	svg.AppendChild(NewElement("circle", NamespaceSVG))
	div.AppendChild(svg)

	want := `<div class="a &quot;b&quot;" id="main">1 &lt; 2<br/><!--note-->` +
		`<svg xmlns="http://www.w3.org/2000/svg"><circle></circle></svg></div>`
	if got := Serialize(div); got != want {
		t.Errorf("Serialize =\n%s\nwant\n%s", got, want)
	}

	if got := SerializeChildren(svg); got != "<circle></circle>" {
		t.Errorf("SerializeChildren = %q", got)
	}
}

func TestParseRoundTrip(t *testing.T) {
	tests := []string{
		`<div class="x" id="y">text</div>`,
		`<ul><li>a</li><li>b</li></ul>`,
		`<p>a<br/>b</p><!--[--><span></span><!--]-->`,
		`<svg xmlns="http://www.w3.org/2000/svg"><circle r="1"></circle></svg>`,
		`<select><option selected="" value="1">one</option></select>`,
		`<input disabled="" value="&quot;q&quot;"/>`,
	}
	for _, markup := range tests {
		t.Run(markup, func(t *testing.T) {
			root, err := Parse(markup, "div")
			if err != nil {
				t.Fatal(err)
			}
			if got := SerializeChildren(root); got != markup {
				t.Errorf("round trip =\n%s\nwant\n%s", got, markup)
			}
		})
	}
}

func TestIsVoid(t *testing.T) {
	if !IsVoid("img", NamespaceHTML) {
		t.Error("img is void")
	}
	if IsVoid("div", NamespaceHTML) {
		t.Error("div is not void")
	}
	if IsVoid("img", NamespaceSVG) {
		t.Error("void applies to html only")
	}
}
