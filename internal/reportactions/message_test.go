package reportactions

import (
	"slices"
	"strings"
	"testing"
)

func TestText_PrefersHTML(t *testing.T) {
	a := &Action{Message: ListMessage(Fragment{HTML: "<b>bold</b> &amp; more", Text: "ignored"})}
	if got := Text(a); got != "bold & more" {
		t.Errorf("Text = %q, want %q", got, "bold & more")
	}
	a.Message.Fragments[0].HTML = ""
	if got := Text(a); got != "ignored" {
		t.Errorf("Text = %q, want %q", got, "ignored")
	}
	if got := Text(nil); got != "" {
		t.Errorf("Text(nil) = %q, want empty", got)
	}
}

func TestOldDotMessage(t *testing.T) {
	a := &Action{
		Name: NameExportedToCSV,
		Message: ListMessage(
			Fragment{Text: "exported "},
			Fragment{HTML: "<strong>this report</strong>"},
			Fragment{Text: " to CSV"},
		),
	}
	if !IsOldDot(a) {
		t.Fatal("export to CSV should be a legacy kind")
	}
	if got := OldDotMessage(a); got != "exported this report to CSV" {
		t.Errorf("OldDotMessage = %q", got)
	}
}

func TestExtractLinks(t *testing.T) {
	a := &Action{Message: ListMessage(Fragment{
		HTML: `see <a href="https://a.example">a</a> and <a href="https://b.example">b</a>`,
	})}
	if got := ExtractLinks(a); !slices.Equal(got, []string{"https://a.example", "https://b.example"}) {
		t.Errorf("ExtractLinks = %v", got)
	}
	if got := ExtractLinks(comment("1", t1, 1)); got == nil || len(got) != 0 {
		t.Errorf("ExtractLinks(no anchors) = %v, want empty non-nil", got)
	}
}

func TestSummarizeMessage(t *testing.T) {
	long := strings.Repeat("a", 150) + "<br>" + strings.Repeat("b", 150)

	tests := []struct {
		name string
		a    *Action
		want LastVisibleMessage
	}{
		{"nil", nil, LastVisibleMessage{}},
		{"created", created("1", t0), LastVisibleMessage{}},
		{"attachment", &Action{Message: ListMessage(Fragment{
			Text: AttachmentMessageText,
			HTML: `<img data-expensify-source="https://example.com/r.png"/>`,
		})}, LastVisibleMessage{
			TranslationKey: AttachmentTranslationKey,
			Text:           AttachmentMessageText,
			HTML:           AttachmentTranslationKey,
		}},
		{"line breaks flattened", &Action{Message: ListMessage(Fragment{HTML: "one<br>two\nthree"})},
			LastVisibleMessage{Text: "one two three"}},
		{"capped", &Action{Message: ListMessage(Fragment{HTML: long})},
			LastVisibleMessage{Text: strings.Repeat("a", 150) + " " + strings.Repeat("b", 49)}},
		{"trimmed", &Action{Message: ListMessage(Fragment{HTML: "  padded  "})},
			LastVisibleMessage{Text: "padded"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SummarizeMessage(tt.a); got != tt.want {
				t.Errorf("SummarizeMessage = %+v, want %+v", got, tt.want)
			}
		})
	}
}
