package reportactions

// IsActionOfType reports whether a's kind is one of names. It is the single
// combinator every kind predicate is built from.
func IsActionOfType(a *Action, names ...Name) bool {
	if a == nil {
		return false
	}
	for _, n := range names {
		if a.Name == n {
			return true
		}
	}
	return false
}

func isActionInSet(a *Action, s nameSet) bool {
	return a != nil && s.has(a.Name)
}

// OriginalMessage returns the action's kind-specific details: the payload
// itself for object-form messages, the legacy original message otherwise.
func OriginalMessage(a *Action) *Details {
	if a == nil {
		return nil
	}
	if a.Message.Form != FormList && a.Message.Details != nil {
		return a.Message.Details
	}
	return a.Original
}

func iouType(a *Action) IOUType {
	if d := OriginalMessage(a); d != nil {
		return d.Type
	}
	return ""
}

// IsCreated reports the action that opens every report.
func IsCreated(a *Action) bool { return IsActionOfType(a, NameCreated) }

// IsDeleted reports whether the action's message marks it deleted: an absent
// or empty fragment list, or a leading fragment carrying the deletion marker.
func IsDeleted(a *Action) bool {
	if a == nil {
		return false
	}
	if len(a.Message.Fragments) == 0 {
		return a.Message.Form != FormObject
	}
	return a.Message.Fragments[0].Deleted
}

// IsDeletedParent reports a deleted action kept visible as a placeholder
// because its thread still has visible replies. A legacy deletion (empty
// fragment list) with replies counts as one too.
func IsDeletedParent(a *Action) bool {
	if a == nil || a.ChildVisibleActionCount <= 0 {
		return false
	}
	f := PrimaryFragment(a)
	if f == nil {
		return a.Message.Form != FormObject
	}
	return f.IsDeletedParentAction
}

// IsMessageDeleted reports only the deleted-parent flag, regardless of
// child counts.
func IsMessageDeleted(a *Action) bool {
	f := PrimaryFragment(a)
	return f != nil && f.IsDeletedParentAction
}

// IsReversedTransaction reports a reversed transaction whose thread still
// has visible replies.
func IsReversedTransaction(a *Action) bool {
	f := PrimaryFragment(a)
	return f != nil && f.IsReversedTransaction && a.ChildVisibleActionCount > 0
}

// IsPendingRemove reports a message held for moderation removal.
func IsPendingRemove(a *Action) bool {
	f := PrimaryFragment(a)
	return f != nil && f.ModerationDecision == ModerationPendingRemove
}

// IsMoneyRequest reports an IOU action of any type.
func IsMoneyRequest(a *Action) bool { return IsActionOfType(a, NameIOU) }

// IsReportPreview reports a chat preview of an expense or IOU report.
func IsReportPreview(a *Action) bool { return IsActionOfType(a, NameReportPreview) }

// IsSubmitted reports a report submission.
func IsSubmitted(a *Action) bool { return IsActionOfType(a, NameSubmitted) }

// IsModifiedExpense reports an edit to an expense.
func IsModifiedExpense(a *Action) bool { return IsActionOfType(a, NameModifiedExpense) }

// IsChronosOOOList reports a Chronos out-of-office list.
func IsChronosOOOList(a *Action) bool { return IsActionOfType(a, NameChronosOOOList) }

// IsAddComment reports a plain chat comment.
func IsAddComment(a *Action) bool { return IsActionOfType(a, NameAddComment) }

// IsTripPreview reports a travel itinerary preview.
func IsTripPreview(a *Action) bool { return IsActionOfType(a, NameTripPreview) }

// IsClosed reports a report closure.
func IsClosed(a *Action) bool { return IsActionOfType(a, NameClosed) }

// IsRenamed reports a room rename.
func IsRenamed(a *Action) bool { return IsActionOfType(a, NameRenamed) }

// IsLeavePolicy reports a member leaving a workspace.
func IsLeavePolicy(a *Action) bool { return IsActionOfType(a, NamePolicyLeavePolicy) }

// IsApprovedOrSubmitted reports an approval or a submission.
func IsApprovedOrSubmitted(a *Action) bool {
	return IsActionOfType(a, NameApproved, NameSubmitted)
}

// IsPolicyChangeLog reports any workspace change-log kind.
func IsPolicyChangeLog(a *Action) bool { return isActionInSet(a, policyChangeLogNames) }

// IsRoomChangeLog reports any room change-log kind.
func IsRoomChangeLog(a *Action) bool { return isActionInSet(a, roomChangeLogNames) }

// IsMemberChange reports a change to a room or workspace membership.
func IsMemberChange(a *Action) bool { return isActionInSet(a, memberChangeNames) }

// IsTask reports a task system message.
func IsTask(a *Action) bool { return isActionInSet(a, taskNames) }

// IsNotifiable reports comments and expense activity that may notify.
func IsNotifiable(a *Action) bool { return isActionInSet(a, notifiableNames) }

// IsOldDot reports whether the action is one of the legacy kinds whose text
// is the concatenation of all fragments.
func IsOldDot(a *Action) bool { return isActionInSet(a, oldDotNames) }

// IsInviteMember reports a room or workspace invite.
func IsInviteMember(a *Action) bool {
	return IsActionOfType(a, NameRoomInviteToRoom, NamePolicyInviteToRoom)
}

// IsReimbursementQueued reports a reimbursement entering the payment queue.
func IsReimbursementQueued(a *Action) bool {
	return IsActionOfType(a, NameReimbursementQueued)
}

// IsReimbursementDequeued reports a reimbursement leaving the queue unpaid.
func IsReimbursementDequeued(a *Action) bool {
	return IsActionOfType(a, NameReimbursementDequeued)
}

// IsCreatedTask reports a comment that spawned a task report.
func IsCreatedTask(a *Action) bool {
	if !IsAddComment(a) {
		return false
	}
	d := OriginalMessage(a)
	return d != nil && d.TaskReportID != ""
}

// IsSplitBill reports a money request split between participants.
func IsSplitBill(a *Action) bool { return IsMoneyRequest(a) && iouType(a) == IOUSplit }

// IsTrackExpense reports a money request tracked without a payer.
func IsTrackExpense(a *Action) bool { return IsMoneyRequest(a) && iouType(a) == IOUTrack }

// IsPay reports a money request that settles a balance.
func IsPay(a *Action) bool { return IsMoneyRequest(a) && iouType(a) == IOUPay }

// IsSentMoney reports a pay-type money request that carries IOU details.
func IsSentMoney(a *Action) bool {
	if !IsMoneyRequest(a) {
		return false
	}
	d := OriginalMessage(a)
	return d != nil && d.Type == IOUPay && d.HasIOUDetails
}

// IsTransactionThread reports whether parent is the money request a
// transaction thread hangs from.
func IsTransactionThread(parent *Action) bool {
	if !IsMoneyRequest(parent) {
		return false
	}
	d := OriginalMessage(parent)
	if d == nil {
		return false
	}
	return d.Type == IOUCreate || d.Type == IOUTrack || (d.Type == IOUPay && d.HasIOUDetails)
}

// IsThreadParentMessage reports whether a is the first message of the chat
// thread reportID.
func IsThreadParentMessage(a *Action, reportID string) bool {
	if a == nil {
		return false
	}
	return a.ChildType == ReportTypeChat && (a.ChildVisibleActionCount > 0 || a.ChildReportID == reportID)
}

// IsOptimistic reports an action not yet confirmed by the server.
func IsOptimistic(a *Action) bool {
	if a == nil {
		return false
	}
	return a.IsOptimistic || a.PendingAction == PendingAdd || a.PendingAction == PendingDelete
}

// WhisperedTo returns the whisper recipients. The primary fragment's list
// wins when present, even if empty; otherwise the details' list is used.
func WhisperedTo(a *Action) []int64 {
	if a == nil {
		return nil
	}
	if f := PrimaryFragment(a); f != nil && f.WhisperedTo != nil {
		return f.WhisperedTo
	}
	if d := OriginalMessage(a); d != nil {
		return d.WhisperedTo
	}
	return nil
}

// IsWhisper reports an action shown only to its recipients.
func IsWhisper(a *Action) bool {
	return len(WhisperedTo(a)) > 0
}

// IsWhisperTargetedToOthers reports a whisper whose recipients do not
// include viewerID.
func IsWhisperTargetedToOthers(a *Action, viewerID int64) bool {
	if !IsWhisper(a) {
		return false
	}
	for _, id := range WhisperedTo(a) {
		if id == viewerID {
			return false
		}
	}
	return true
}

// IsActionableMentionWhisper reports the prompt to invite a mentioned
// non-member.
func IsActionableMentionWhisper(a *Action) bool {
	return IsActionOfType(a, NameActionableMentionWhisper)
}

// IsActionableReportMentionWhisper reports the prompt to create a mentioned
// room.
func IsActionableReportMentionWhisper(a *Action) bool {
	return IsActionOfType(a, NameActionableReportMentionWhisper)
}

// IsActionableTrackExpense reports the whisper asking what to do with a
// tracked expense.
func IsActionableTrackExpense(a *Action) bool {
	return IsActionOfType(a, NameActionableTrackExpenseWhisper)
}

// IsResolvedActionableTrackExpense reports a track-expense whisper the user
// has already answered.
func IsResolvedActionableTrackExpense(a *Action) bool {
	return IsActionableTrackExpense(a) && a.Resolution != ""
}

// IsActionableJoinRequest reports a request to join a workspace.
func IsActionableJoinRequest(a *Action) bool {
	return IsActionOfType(a, NameActionableJoinRequest)
}

// IsAttachment reports an action whose message is a file attachment.
func IsAttachment(a *Action) bool {
	if a == nil {
		return false
	}
	if a.IsAttachment != nil {
		return *a.IsAttachment
	}
	if a.HasAttachInfo {
		return true
	}
	return isFragmentAttachment(PrimaryFragment(a))
}
