package reportactions

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"

	json "github.com/goccy/go-json"
)

// ErrNotSequence is returned when an action collection is neither a JSON
// array nor an object keyed by action ID. It signals a caller bug and is
// never coerced into an empty result.
var ErrNotSequence = errors.New("reportactions: collection is not a sequence")

// Record is the wire shape of a stored or transmitted action. Message may be
// a fragment list or a single object; both are normalized by Action. Key is
// the collection key the record arrived under and is never serialized.
type Record struct {
	Key              string          `json:"-"`
	ID               FlexString      `json:"reportActionID"`
	ReportID         FlexString      `json:"reportID,omitempty"`
	ActionName       string          `json:"actionName"`
	Created          string          `json:"created"`
	LastModified     string          `json:"lastModified,omitempty"`
	PreviousActionID FlexString      `json:"previousReportActionID,omitempty"`
	ActorAccountID   int64           `json:"actorAccountID,omitempty"`
	DelegateID       int64           `json:"delegateAccountID,omitempty"`
	AdminAccountID   *int64          `json:"adminAccountID,omitempty"`
	SequenceNumber   *int64          `json:"sequenceNumber,omitempty"`
	Message          json.RawMessage `json:"message,omitempty"`
	OriginalMessage  json.RawMessage `json:"originalMessage,omitempty"`
	ChildReportID    FlexString      `json:"childReportID,omitempty"`
	ChildType        string          `json:"childType,omitempty"`
	ChildVisible     int             `json:"childVisibleActionCount,omitempty"`
	ChildMoneyReqs   int             `json:"childMoneyRequestCount,omitempty"`
	PendingAction    string          `json:"pendingAction,omitempty"`
	IsOptimistic     bool            `json:"isOptimisticAction,omitempty"`
	Errors           map[string]any  `json:"errors,omitempty"`
	Resolution       string          `json:"resolution,omitempty"`
	IsAttachment     *bool           `json:"isAttachment,omitempty"`
	AttachmentInfo   json.RawMessage `json:"attachmentInfo,omitempty"`
}

// FlexString accepts either a JSON string or a JSON number.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("reportactions: id %s: %w", data, err)
	}
	*s = FlexString(n.String())
	return nil
}

// Action converts the record into a normalized Action.
func (r Record) Action() (*Action, error) {
	msg, err := DecodeMessage(r.Message)
	if err != nil {
		return nil, fmt.Errorf("reportactions: action %s: %w", r.ID, err)
	}
	original, err := DecodeDetails(r.OriginalMessage)
	if err != nil {
		return nil, fmt.Errorf("reportactions: action %s original message: %w", r.ID, err)
	}

	a := &Action{
		ID:                      string(r.ID),
		ReportID:                string(r.ReportID),
		Name:                    Name(r.ActionName),
		Created:                 r.Created,
		LastModified:            r.LastModified,
		PreviousActionID:        string(r.PreviousActionID),
		ActorAccountID:          r.ActorAccountID,
		DelegateAccountID:       r.DelegateID,
		AdminAccountID:          r.AdminAccountID,
		SequenceNumber:          r.SequenceNumber,
		Message:                 msg,
		Original:                original,
		ChildReportID:           string(r.ChildReportID),
		ChildType:               r.ChildType,
		ChildVisibleActionCount: r.ChildVisible,
		ChildMoneyRequestCount:  r.ChildMoneyReqs,
		PendingAction:           PendingAction(r.PendingAction),
		IsOptimistic:            r.IsOptimistic,
		Resolution:              r.Resolution,
		IsAttachment:            r.IsAttachment,
		HasAttachInfo:           len(r.AttachmentInfo) > 0 && !isJSONNull(r.AttachmentInfo),
	}
	if len(r.Errors) > 0 {
		a.Errors = make(map[string]string, len(r.Errors))
		for k, v := range r.Errors {
			a.Errors[k] = fmt.Sprint(v)
		}
	}
	return a, nil
}

// wireFragment is the union of fragment and detail keys that may appear in
// one message object.
type wireFragment struct {
	Type                  string          `json:"type"`
	HTML                  *string         `json:"html"`
	Text                  string          `json:"text"`
	Deleted               json.RawMessage `json:"deleted"`
	IsDeletedParentAction bool            `json:"isDeletedParentAction"`
	IsReversedTransaction bool            `json:"isReversedTransaction"`
	ModerationDecision    *struct {
		Decision string `json:"decision"`
	} `json:"moderationDecision"`
	TranslationKey string  `json:"translationKey"`
	WhisperedTo    []int64 `json:"whisperedTo"`
}

type wireDetails struct {
	Type              string          `json:"type"`
	IOUTransactionID  FlexString      `json:"IOUTransactionID"`
	IOUReportID       FlexString      `json:"IOUReportID"`
	IOUDetails        json.RawMessage `json:"IOUDetails"`
	Deleted           json.RawMessage `json:"deleted"`
	WhisperedTo       []int64         `json:"whisperedTo"`
	TaskReportID      FlexString      `json:"taskReportID"`
	LinkedReportID    FlexString      `json:"linkedReportID"`
	TargetAccountIDs  []int64         `json:"targetAccountIDs"`
	InviteeAccountIDs []int64         `json:"inviteeAccountIDs"`
	RoomName          string          `json:"roomName"`
	ReportID          int64           `json:"reportID"`
	Choice            *string         `json:"choice"`
	Resolution        string          `json:"resolution"`
	Reason            string          `json:"reason"`
	ViolationName     string          `json:"violationName"`
}

// DecodeMessage normalizes a raw message payload. The legacy empty-html
// deletion convention and the explicit deleted flag both become
// Fragment.Deleted here, so nothing downstream branches on payload shape.
func DecodeMessage(raw []byte) (Message, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isJSONNull(raw) {
		return Message{Form: FormNone}, nil
	}
	switch raw[0] {
	case '[':
		var list []wireFragment
		if err := json.Unmarshal(raw, &list); err != nil {
			return Message{}, fmt.Errorf("decode message list: %w", err)
		}
		frags := make([]Fragment, 0, len(list))
		for _, w := range list {
			frags = append(frags, w.fragment())
		}
		return Message{Form: FormList, Fragments: frags}, nil
	case '{':
		var w wireFragment
		if err := json.Unmarshal(raw, &w); err != nil {
			return Message{}, fmt.Errorf("decode message object: %w", err)
		}
		d, err := DecodeDetails(raw)
		if err != nil {
			return Message{}, err
		}
		return Message{Form: FormObject, Fragments: []Fragment{w.fragment()}, Details: d}, nil
	default:
		return Message{}, fmt.Errorf("decode message: unexpected payload %.20q", raw)
	}
}

func (w wireFragment) fragment() Fragment {
	f := Fragment{
		Type:                  w.Type,
		Text:                  w.Text,
		Deleted:               truthy(w.Deleted),
		IsDeletedParentAction: w.IsDeletedParentAction,
		IsReversedTransaction: w.IsReversedTransaction,
		TranslationKey:        w.TranslationKey,
		WhisperedTo:           w.WhisperedTo,
	}
	if w.HTML != nil {
		f.HTML = *w.HTML
		if *w.HTML == "" {
			f.Deleted = true
		}
	}
	if w.ModerationDecision != nil {
		f.ModerationDecision = w.ModerationDecision.Decision
	}
	return f
}

// DecodeDetails decodes an original-message payload. A missing payload
// yields nil.
func DecodeDetails(raw []byte) (*Details, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isJSONNull(raw) {
		return nil, nil
	}
	var w wireDetails
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode details: %w", err)
	}
	return &Details{
		Type:              IOUType(w.Type),
		IOUTransactionID:  string(w.IOUTransactionID),
		IOUReportID:       string(w.IOUReportID),
		HasIOUDetails:     len(w.IOUDetails) > 0 && !isJSONNull(w.IOUDetails),
		Deleted:           flagString(w.Deleted),
		WhisperedTo:       w.WhisperedTo,
		TaskReportID:      string(w.TaskReportID),
		LinkedReportID:    string(w.LinkedReportID),
		TargetAccountIDs:  w.TargetAccountIDs,
		InviteeAccountIDs: w.InviteeAccountIDs,
		RoomName:          w.RoomName,
		RoomReportID:      w.ReportID,
		Choice:            w.Choice,
		Resolution:        w.Resolution,
		Reason:            w.Reason,
		ViolationName:     w.ViolationName,
	}, nil
}

// DecodeRecords decodes a batch of records given either as a JSON array or
// as an object keyed by action ID. Keyed batches come back in key order with
// Key set to the object key; array entries are keyed by their ID.
func DecodeRecords(raw []byte) ([]Record, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, ErrNotSequence
	}

	var records []Record
	switch raw[0] {
	case '[':
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("reportactions: decode batch: %w", err)
		}
		for i := range records {
			records[i].Key = string(records[i].ID)
		}
	case '{':
		var keyed map[string]*Record
		if err := json.Unmarshal(raw, &keyed); err != nil {
			return nil, fmt.Errorf("reportactions: decode batch: %w", err)
		}
		for _, k := range sortedRecordKeys(keyed) {
			if r := keyed[k]; r != nil {
				if r.ID == "" {
					r.ID = FlexString(k)
				}
				r.Key = k
				records = append(records, *r)
			}
		}
	default:
		return nil, fmt.Errorf("%w: got %.20q", ErrNotSequence, raw)
	}
	return records, nil
}

// DecodeActions decodes a batch with DecodeRecords and normalizes every
// record.
func DecodeActions(raw []byte) ([]*Action, error) {
	records, err := DecodeRecords(raw)
	if err != nil {
		return nil, err
	}
	out := make([]*Action, 0, len(records))
	for _, r := range records {
		a, err := r.Action()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func sortedRecordKeys(m map[string]*Record) []string {
	return slices.Sorted(maps.Keys(m))
}

func isJSONNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// truthy interprets a deletion marker that may be a bool or a timestamp.
func truthy(raw json.RawMessage) bool {
	return flagString(raw) != ""
}

// flagString renders a bool-or-string marker as a string; false, null and
// absent markers render as "".
func flagString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isJSONNull(raw) {
		return ""
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		if b {
			return strconv.FormatBool(b)
		}
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
