package vpx

import "testing"

func TestFontStyleFlagsRoundTrip(t *testing.T) {
	styles := map[FontStyle]bool{FontStyleBold: true, FontStyleItalic: true}
	flags := stylesToFlags(styles)
	got := flagsToStyles(flags)
	if !got[FontStyleBold] || !got[FontStyleItalic] {
		t.Fatalf("styles = %v, want bold+italic", got)
	}
	if got[FontStyleUnderline] || got[FontStyleNormal] || got[FontStyleStrikethrough] {
		t.Fatalf("unexpected extra styles set: %v", got)
	}
}

func TestFontStreamRoundTrip(t *testing.T) {
	fd := newFontDescriptor()
	fd.Charset = 0
	fd.Styles[FontStyleBold] = true
	fd.Weight = 700
	fd.Size = 12
	fd.Name = "Arial"

	data := WriteFontStream(fd)
	got, err := ReadFontStream(data)
	if err != nil {
		t.Fatalf("ReadFontStream: %v", err)
	}
	if got.Version != 1 || got.Charset != 0 || got.Weight != 700 || got.Size != 12 || got.Name != "Arial" {
		t.Fatalf("got = %+v", got)
	}
	if !got.Styles[FontStyleBold] {
		t.Fatal("expected bold style to survive")
	}
}
