package reportactions

import (
	"fmt"
	"regexp"
	"strings"
)

// PersonalDetail is the display information known about an account.
type PersonalDetail struct {
	AccountID   int64
	DisplayName string
	Login       string
}

// Directory resolves account IDs to personal details.
type Directory interface {
	PersonalDetail(accountID int64) (PersonalDetail, bool)
}

// People is an in-memory Directory.
type People map[int64]PersonalDetail

func (p People) PersonalDetail(accountID int64) (PersonalDetail, bool) {
	d, ok := p[accountID]
	return d, ok
}

// Localizer translates message keys into display strings.
type Localizer interface {
	Translate(key string) string
}

// Catalog is a Localizer backed by a fixed key/value table. Missing keys
// translate to themselves.
type Catalog map[string]string

func (c Catalog) Translate(key string) string {
	if s, ok := c[key]; ok {
		return s
	}
	return key
}

// English is the default catalog.
var English = Catalog{
	"common.hidden":                  "Hidden",
	"workspace.invite.invited":       "invited",
	"workspace.invite.removed":       "removed",
	"workspace.invite.leftWorkspace": "left the workspace",
	"workspace.invite.to":            "to",
	"workspace.invite.from":          "from",

	"violationDismissal.rter.manual":                  "marked this receipt as cash",
	"violationDismissal.duplicatedTransaction.manual": "resolved the duplicate",
}

// ElementKind tags a piece of a rendered membership sentence.
type ElementKind string

const (
	ElementText          ElementKind = "text"
	ElementUserMention   ElementKind = "userMention"
	ElementRoomReference ElementKind = "roomReference"
)

// MessageElement is one piece of a rendered membership sentence.
type MessageElement struct {
	Kind      ElementKind
	Content   string
	AccountID int64
	RoomName  string
	RoomID    int64
}

// Formatter renders human-readable sentences for system actions.
type Formatter struct {
	People         Directory
	Locale         Localizer
	EnvironmentURL string
}

func (f Formatter) translate(key string) string {
	if f.Locale == nil {
		return English.Translate(key)
	}
	return f.Locale.Translate(key)
}

// displayName returns the effective display name for an account, or "" when
// the account is unknown or has no usable name.
func (f Formatter) displayName(accountID int64) string {
	if f.People == nil {
		return ""
	}
	d, ok := f.People.PersonalDetail(accountID)
	if !ok {
		return ""
	}
	if d.DisplayName != "" {
		return d.DisplayName
	}
	return strings.TrimSuffix(d.Login, "@expensify.sms")
}

func (f Formatter) handle(accountID int64) string {
	if name := f.displayName(accountID); name != "" {
		return name
	}
	return f.translate("common.hidden")
}

// MemberChangeElements builds the sentence for an invite, removal or leave
// action: verb, mention list, then an optional room reference.
func (f Formatter) MemberChangeElements(a *Action) []MessageElement {
	if !IsMemberChange(a) {
		return nil
	}
	invite := IsInviteMember(a)

	verb := f.translate("workspace.invite.removed")
	if invite {
		verb = f.translate("workspace.invite.invited")
	}
	if IsLeavePolicy(a) {
		verb = f.translate("workspace.invite.leftWorkspace")
	}

	d := OriginalMessage(a)
	if d == nil {
		d = &Details{}
	}

	mentions := make([]MessageElement, 0, len(d.TargetAccountIDs))
	for _, id := range d.TargetAccountIDs {
		mentions = append(mentions, MessageElement{
			Kind:      ElementUserMention,
			Content:   "@" + f.handle(id),
			AccountID: id,
		})
	}

	elements := []MessageElement{{Kind: ElementText, Content: verb + " "}}
	elements = append(elements, formatElementList(mentions)...)

	if d.RoomName != "" && d.RoomReportID != 0 {
		preposition := f.translate("workspace.invite.from")
		if invite {
			preposition = f.translate("workspace.invite.to")
		}
		elements = append(elements,
			MessageElement{Kind: ElementText, Content: " " + preposition + " "},
			MessageElement{Kind: ElementRoomReference, Content: d.RoomName, RoomName: d.RoomName, RoomID: d.RoomReportID},
		)
	}
	return elements
}

// formatElementList joins elements the way an English conjunction list
// reads: "A", "A and B", "A, B, and C".
func formatElementList(elements []MessageElement) []MessageElement {
	n := len(elements)
	if n < 2 {
		return elements
	}
	sep := func(s string) MessageElement { return MessageElement{Kind: ElementText, Content: s} }
	if n == 2 {
		return []MessageElement{elements[0], sep(" and "), elements[1]}
	}
	out := make([]MessageElement, 0, 2*n-1)
	for i, e := range elements {
		switch {
		case i == 0:
		case i == n-1:
			out = append(out, sep(", and "))
		default:
			out = append(out, sep(", "))
		}
		out = append(out, e)
	}
	return out
}

// MemberChangeFragment renders a membership action as a muted fragment.
func (f Formatter) MemberChangeFragment(a *Action) Fragment {
	var b strings.Builder
	for _, e := range f.MemberChangeElements(a) {
		switch e.Kind {
		case ElementUserMention:
			fmt.Fprintf(&b, "<mention-user accountID=%d>%s</mention-user>", e.AccountID, e.Content)
		case ElementRoomReference:
			fmt.Fprintf(&b, `<a href="%s/r/%d" target="_blank">%s</a>`, f.EnvironmentURL, e.RoomID, e.RoomName)
		default:
			b.WriteString(e.Content)
		}
	}
	text := ""
	if PrimaryFragment(a) != nil {
		text = Text(a)
	}
	return Fragment{
		Type: "COMMENT",
		HTML: "<muted-text>" + b.String() + "</muted-text>",
		Text: text,
	}
}

// MemberChangePlainText concatenates the content of every element.
func (f Formatter) MemberChangePlainText(a *Action) string {
	var b strings.Builder
	for _, e := range f.MemberChangeElements(a) {
		b.WriteString(e.Content)
	}
	return b.String()
}

var lastListComma = regexp.MustCompile(`, ([^,]*)$`)

// ActionableMentionWhisperMessage tells the author which mentioned accounts
// are not members of the room.
func (f Formatter) ActionableMentionWhisperMessage(a *Action) string {
	if a == nil {
		return ""
	}
	var invitees []int64
	if d := OriginalMessage(a); d != nil {
		invitees = d.InviteeAccountIDs
	}
	mentions := make([]string, 0, len(invitees))
	for _, id := range invitees {
		mentions = append(mentions, fmt.Sprintf("<mention-user accountID=%d>@%s</mention-user>", id, f.handle(id)))
	}
	list := lastListComma.ReplaceAllString(strings.Join(mentions, ", "), " and $1")
	post := " isn't a member of this room."
	if len(mentions) > 1 {
		post = " aren't members of this room."
	}
	return "Heads up, " + list + post
}

// DismissedViolationText describes why a violation was dismissed.
func (f Formatter) DismissedViolationText(d *Details) string {
	if d == nil {
		return ""
	}
	return f.translate("violationDismissal." + d.ViolationName + "." + d.Reason)
}
