package reportactions

import (
	"path"
	"strings"

	"github.com/zulandar/threadline/internal/htmltext"
)

// Last-message summary constants.
const (
	AttachmentMessageText     = "[Attachment]"
	AttachmentTranslationKey  = "common.attachment"
	AttachmentSourceAttribute = "data-expensify-source"
	AttachmentUploadingHTML   = "Uploading attachment..."
	LastMessageTextMaxLength  = 200
)

var videoExtensions = map[string]bool{".mp4": true, ".mov": true, ".webm": true, ".mkv": true, ".m4v": true}

// PrimaryFragment returns the first fragment of a list-form message or the
// single fragment of an object-form one. It returns nil when there is none.
func PrimaryFragment(a *Action) *Fragment {
	if a == nil || len(a.Message.Fragments) == 0 {
		return nil
	}
	return &a.Message.Fragments[0]
}

// HTML returns the primary fragment's html.
func HTML(a *Action) string {
	if f := PrimaryFragment(a); f != nil {
		return f.HTML
	}
	return ""
}

// Text returns the primary fragment as plain text, preferring html over text.
func Text(a *Action) string {
	f := PrimaryFragment(a)
	if f == nil {
		return ""
	}
	return fragmentText(*f)
}

func fragmentText(f Fragment) string {
	src := f.HTML
	if src == "" {
		src = f.Text
	}
	return htmltext.FromHTML(src)
}

// MessageText returns the plain text of the whole message. List-form
// messages concatenate every fragment; other forms use the primary fragment.
func MessageText(a *Action) string {
	if a == nil {
		return ""
	}
	if a.Message.Form != FormList {
		return Text(a)
	}
	var b strings.Builder
	for _, f := range a.Message.Fragments {
		b.WriteString(fragmentText(f))
	}
	return b.String()
}

// OldDotMessage renders a legacy action by concatenating the text of all of
// its fragments in order, without a separator.
func OldDotMessage(a *Action) string {
	return MessageText(a)
}

// ExtractLinks returns the href of every anchor in the action's html.
func ExtractLinks(a *Action) []string {
	h := HTML(a)
	if h == "" {
		return []string{}
	}
	links := htmltext.Links(h)
	if links == nil {
		return []string{}
	}
	return links
}

func isFragmentAttachment(f *Fragment) bool {
	if f == nil || f.Text == "" || f.HTML == "" {
		return false
	}
	if f.TranslationKey != "" && f.Text == AttachmentMessageText {
		return f.TranslationKey == AttachmentTranslationKey
	}
	isVideo := videoExtensions[strings.ToLower(path.Ext(f.Text))]
	if f.Text != AttachmentMessageText && !isVideo {
		return false
	}
	return htmltext.HasAttribute(f.HTML, AttachmentSourceAttribute) || f.HTML == AttachmentUploadingHTML
}

// LastVisibleMessage is the summary shown for a conversation in a list.
type LastVisibleMessage struct {
	TranslationKey string `json:"translation_key,omitempty"`
	Text           string `json:"text"`
	HTML           string `json:"html,omitempty"`
}

// SummarizeMessage builds the list summary for a. Attachments get a
// placeholder, created actions are blank, and other text has line breaks
// flattened and is capped at LastMessageTextMaxLength characters.
func SummarizeMessage(a *Action) LastVisibleMessage {
	return summarize(a, LastMessageTextMaxLength)
}

func summarize(a *Action, maxLen int) LastVisibleMessage {
	if maxLen <= 0 {
		maxLen = LastMessageTextMaxLength
	}
	f := PrimaryFragment(a)
	if f != nil && isFragmentAttachment(f) {
		return LastVisibleMessage{
			TranslationKey: AttachmentTranslationKey,
			Text:           AttachmentMessageText,
			HTML:           AttachmentTranslationKey,
		}
	}
	if IsCreated(a) {
		return LastVisibleMessage{}
	}
	text := htmltext.FromHTML(HTML(a))
	if text != "" {
		text = htmltext.LineBreaksToSpaces(text)
		if r := []rune(text); len(r) > maxLen {
			text = string(r[:maxLen])
		}
		text = strings.TrimSpace(text)
	}
	return LastVisibleMessage{Text: text}
}
