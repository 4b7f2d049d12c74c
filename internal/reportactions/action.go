// Package reportactions orders, filters and combines the actions that make up
// a conversation's history.
//
// Every function in this package is pure: inputs are never mutated and the
// same inputs always produce the same output, so results may be memoized on
// (report id, snapshot version).
package reportactions

// MessageForm tags which of the two payload representations an action uses.
type MessageForm int

const (
	// FormNone means the action carried no message payload at all.
	FormNone MessageForm = iota
	// FormObject is the single-object payload.
	FormObject
	// FormList is the ordered fragment-list payload.
	FormList
)

func (f MessageForm) String() string {
	switch f {
	case FormObject:
		return "object"
	case FormList:
		return "list"
	default:
		return "none"
	}
}

// Fragment is one piece of an action's message.
type Fragment struct {
	Type string
	HTML string
	Text string

	// Deleted is the normalized deletion marker: the explicit flag or the
	// legacy empty-html convention, folded together by DecodeMessage.
	Deleted bool

	IsDeletedParentAction bool
	IsReversedTransaction bool
	ModerationDecision    string
	TranslationKey        string

	// WhisperedTo is nil when the fragment has no recipient list and
	// non-nil (possibly empty) when it has one.
	WhisperedTo []int64
}

// Message is the normalized payload of an action. Object-form messages always
// hold exactly one fragment.
type Message struct {
	Form      MessageForm
	Fragments []Fragment

	// Details is the object-form payload read as action details. It is nil
	// for list-form and absent messages.
	Details *Details
}

// ListMessage builds a list-form message.
func ListMessage(fragments ...Fragment) Message {
	if fragments == nil {
		fragments = []Fragment{}
	}
	return Message{Form: FormList, Fragments: fragments}
}

// ObjectMessage builds an object-form message whose fragment and details
// come from the same payload.
func ObjectMessage(f Fragment, d Details) Message {
	return Message{Form: FormObject, Fragments: []Fragment{f}, Details: &d}
}

// Details holds the kind-specific payload of an action (the legacy
// "original message").
type Details struct {
	Type             IOUType
	IOUTransactionID string
	IOUReportID      string
	HasIOUDetails    bool
	Deleted          string
	WhisperedTo      []int64

	TaskReportID   string
	LinkedReportID string

	TargetAccountIDs  []int64
	InviteeAccountIDs []int64
	RoomName          string
	RoomReportID      int64

	// Choice is nil when the payload carries no choice field.
	Choice     *string
	Resolution string

	Reason        string
	ViolationName string
}

// Action is one immutable event in a conversation.
type Action struct {
	ID               string
	ReportID         string
	Name             Name
	Created          string
	LastModified     string
	PreviousActionID string

	ActorAccountID    int64
	DelegateAccountID int64

	// AdminAccountID is the admin acting on the actor's behalf; nil when
	// absent. Zero is a valid account.
	AdminAccountID *int64

	// SequenceNumber is the legacy numeric key; nil when absent.
	SequenceNumber *int64

	Message  Message
	Original *Details

	ChildReportID           string
	ChildType               string
	ChildVisibleActionCount int
	ChildMoneyRequestCount  int

	PendingAction PendingAction
	IsOptimistic  bool
	Errors        map[string]string

	Resolution    string
	IsAttachment  *bool
	HasAttachInfo bool
}

// Report is the conversation record an action collection belongs to.
type Report struct {
	ReportID                      string
	Type                          string
	ChatType                      string
	LastReadTime                  string
	ParentReportID                string
	ParentReportActionID          string
	LastVisibleActionCreated      string
	LastVisibleActionLastModified string
}

// Collection maps an action key (normally the action ID) to the action.
type Collection map[string]*Action

// Values returns the collection's actions in key order.
func (c Collection) Values() []*Action {
	keys := sortedKeys(c)
	out := make([]*Action, 0, len(keys))
	for _, k := range keys {
		out = append(out, c[k])
	}
	return out
}

// Merge returns a new collection with overrides applied on top of c. A nil
// override value removes the key.
func (c Collection) Merge(overrides Collection) Collection {
	out := make(Collection, len(c)+len(overrides))
	for k, a := range c {
		out[k] = a
	}
	for k, a := range overrides {
		if a == nil {
			delete(out, k)
			continue
		}
		out[k] = a
	}
	return out
}
