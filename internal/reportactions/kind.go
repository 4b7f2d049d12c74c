package reportactions

// Name is the discriminant of a report action. Unknown names are carried
// through decoding unchanged and treated as unsupported (invisible).
type Name string

// Conversation, expense and task kinds.
const (
	NameAddComment                     Name = "ADDCOMMENT"
	NameActionableJoinRequest          Name = "ACTIONABLEJOINREQUEST"
	NameActionableMentionWhisper       Name = "ACTIONABLEMENTIONWHISPER"
	NameActionableReportMentionWhisper Name = "ACTIONABLEREPORTMENTIONWHISPER"
	NameActionableTrackExpenseWhisper  Name = "ACTIONABLETRACKEXPENSEWHISPER"
	NameApproved                       Name = "APPROVED"
	NameChronosOOOList                 Name = "CHRONOSOOOLIST"
	NameClosed                         Name = "CLOSED"
	NameCreated                        Name = "CREATED"
	NameDismissedViolation             Name = "DISMISSEDVIOLATION"
	NameHold                           Name = "HOLD"
	NameIOU                            Name = "IOU"
	NameMarkedReimbursed               Name = "MARKEDREIMBURSED"
	NameModifiedExpense                Name = "MODIFIEDEXPENSE"
	NameMoved                          Name = "MOVED"
	NameReimbursementDequeued          Name = "REIMBURSEMENTDEQUEUED"
	NameReimbursementQueued            Name = "REIMBURSEMENTQUEUED"
	NameRenamed                        Name = "RENAMED"
	NameReportPreview                  Name = "REPORTPREVIEW"
	NameSubmitted                      Name = "SUBMITTED"
	NameTaskCancelled                  Name = "TASKCANCELLED"
	NameTaskCompleted                  Name = "TASKCOMPLETED"
	NameTaskEdited                     Name = "TASKEDITED"
	NameTaskReopened                   Name = "TASKREOPENED"
	NameTripPreview                    Name = "TRIPPREVIEW"
	NameUnhold                         Name = "UNHOLD"
)

// Legacy ("OldDot") kinds, rendered by concatenating fragment text.
const (
	NameChangeField                   Name = "CHANGEFIELD"
	NameChangePolicy                  Name = "CHANGEPOLICY"
	NameChangeType                    Name = "CHANGETYPE"
	NameDelegateSubmit                Name = "DELEGATESUBMIT"
	NameDeletedAccount                Name = "DELETEDACCOUNT"
	NameDonation                      Name = "DONATION"
	NameExportedToCSV                 Name = "EXPORTEDTOCSV"
	NameExportedToIntegration         Name = "EXPORTEDTOINTEGRATION"
	NameExportedToQuickBooks          Name = "EXPORTEDTOQUICKBOOKS"
	NameForwarded                     Name = "FORWARDED"
	NameIntegrationsMessage           Name = "INTEGRATIONSMESSAGE"
	NameManagerAttachReceipt          Name = "MANAGERATTACHRECEIPT"
	NameManagerDetachReceipt          Name = "MANAGERDETACHRECEIPT"
	NameMarkReimbursedFromIntegration Name = "MARKREIMBURSEDFROMINTEGRATION"
	NameOutdatedBankAccount           Name = "OUTDATEDBANKACCOUNT"
	NameReimbursementACHBounce        Name = "REIMBURSEMENTACHBOUNCE"
	NameReimbursementACHCancelled     Name = "REIMBURSEMENTACHCANCELLED"
	NameReimbursementAccountChanged   Name = "REIMBURSEMENTACCOUNTCHANGED"
	NameReimbursementDelayed          Name = "REIMBURSEMENTDELAYED"
	NameReimbursementRequested        Name = "REIMBURSEMENTREQUESTED"
	NameReimbursementSetup            Name = "REIMBURSEMENTSETUP"
	NameReimbursementSetupRequested   Name = "REIMBURSEMENTSETUPREQUESTED"
	NameSelectedForRandomAudit        Name = "SELECTEDFORRANDOMAUDIT"
	NameShare                         Name = "SHARE"
	NameStripePaid                    Name = "STRIPEPAID"
	NameTakeControl                   Name = "TAKECONTROL"
	NameUnapproved                    Name = "UNAPPROVED"
	NameUnshare                       Name = "UNSHARE"
)

// Room change log kinds.
const (
	NameRoomInviteToRoom          Name = "INVITETOROOM"
	NameRoomRemoveFromRoom        Name = "REMOVEFROMROOM"
	NameRoomLeaveRoom             Name = "LEAVEROOM"
	NameRoomUpdateRoomDescription Name = "UPDATEROOMDESCRIPTION"
)

// Policy change log kinds.
const (
	NamePolicyInviteToRoom   Name = "POLICYCHANGELOG_INVITE_TO_ROOM"
	NamePolicyRemoveFromRoom Name = "POLICYCHANGELOG_REMOVE_FROM_ROOM"
	NamePolicyLeavePolicy    Name = "POLICYCHANGELOG_LEAVE_POLICY"
	NamePolicyAddEmployee    Name = "POLICYCHANGELOG_ADD_EMPLOYEE"
	NamePolicyDeleteEmployee Name = "POLICYCHANGELOG_DELETE_EMPLOYEE"
	NamePolicyUpdateName     Name = "POLICYCHANGELOG_UPDATE_NAME"
	NamePolicyUpdateCurrency Name = "POLICYCHANGELOG_UPDATE_CURRENCY"
	NamePolicyUpdateCategory Name = "POLICYCHANGELOG_UPDATE_CATEGORY"
)

// IOUType is the money-request subtype carried in an IOU action's details.
type IOUType string

const (
	IOUCreate  IOUType = "create"
	IOUSplit   IOUType = "split"
	IOUPay     IOUType = "pay"
	IOUTrack   IOUType = "track"
	IOUDelete  IOUType = "delete"
	IOUCancel  IOUType = "cancel"
	IOUDecline IOUType = "decline"
	IOUApprove IOUType = "approve"
)

// PendingAction marks an unconfirmed local mutation.
type PendingAction string

const (
	PendingNone   PendingAction = ""
	PendingAdd    PendingAction = "add"
	PendingDelete PendingAction = "delete"
	PendingUpdate PendingAction = "update"
)

// Report types and chat subtypes.
const (
	ReportTypeChat    = "chat"
	ReportTypeExpense = "expense"
	ReportTypeIOU     = "iou"
	ReportTypeInvoice = "invoice"
	ReportTypeTask    = "task"

	ChatTypeSelfDM = "selfDM"
)

// ModerationPendingRemove is the moderator decision that hides an action
// until a moderator confirms or reverts it.
const ModerationPendingRemove = "pendingRemove"

// nameSet is a closed set of kinds used by IsActionOfType-style checks.
type nameSet map[Name]struct{}

func newNameSet(names ...Name) nameSet {
	s := make(nameSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s nameSet) has(n Name) bool {
	_, ok := s[n]
	return ok
}

var (
	roomChangeLogNames = newNameSet(
		NameRoomInviteToRoom,
		NameRoomRemoveFromRoom,
		NameRoomLeaveRoom,
		NameRoomUpdateRoomDescription,
	)

	policyChangeLogNames = newNameSet(
		NamePolicyInviteToRoom,
		NamePolicyRemoveFromRoom,
		NamePolicyLeavePolicy,
		NamePolicyAddEmployee,
		NamePolicyDeleteEmployee,
		NamePolicyUpdateName,
		NamePolicyUpdateCurrency,
		NamePolicyUpdateCategory,
	)

	oldDotNames = newNameSet(
		NameChangeField,
		NameChangePolicy,
		NameChangeType,
		NameDelegateSubmit,
		NameDeletedAccount,
		NameDonation,
		NameExportedToCSV,
		NameExportedToIntegration,
		NameExportedToQuickBooks,
		NameForwarded,
		NameIntegrationsMessage,
		NameManagerAttachReceipt,
		NameManagerDetachReceipt,
		NameMarkedReimbursed,
		NameMarkReimbursedFromIntegration,
		NameOutdatedBankAccount,
		NameReimbursementACHBounce,
		NameReimbursementACHCancelled,
		NameReimbursementAccountChanged,
		NameReimbursementDelayed,
		NameReimbursementRequested,
		NameReimbursementSetup,
		NameSelectedForRandomAudit,
		NameShare,
		NameStripePaid,
		NameTakeControl,
		NameUnapproved,
		NameUnshare,
	)

	// Retired kinds are never displayed, whatever their payload.
	deprecatedNames = newNameSet(
		NameDeletedAccount,
		NameReimbursementRequested,
		NameReimbursementSetupRequested,
		NameDonation,
	)

	taskNames = newNameSet(
		NameTaskCompleted,
		NameTaskCancelled,
		NameTaskReopened,
		NameTaskEdited,
	)

	memberChangeNames = newNameSet(
		NameRoomInviteToRoom,
		NameRoomRemoveFromRoom,
		NamePolicyInviteToRoom,
		NamePolicyRemoveFromRoom,
		NamePolicyLeavePolicy,
	)

	notifiableNames = newNameSet(NameAddComment, NameIOU, NameModifiedExpense)

	supportedNames = func() nameSet {
		s := newNameSet(
			NameAddComment,
			NameActionableJoinRequest,
			NameActionableMentionWhisper,
			NameActionableReportMentionWhisper,
			NameActionableTrackExpenseWhisper,
			NameApproved,
			NameChronosOOOList,
			NameClosed,
			NameCreated,
			NameDismissedViolation,
			NameHold,
			NameIOU,
			NameMarkedReimbursed,
			NameModifiedExpense,
			NameMoved,
			NameReimbursementDequeued,
			NameReimbursementQueued,
			NameRenamed,
			NameReportPreview,
			NameSubmitted,
			NameTaskCancelled,
			NameTaskCompleted,
			NameTaskEdited,
			NameTaskReopened,
			NameTripPreview,
			NameUnhold,
			NameReimbursementSetupRequested,
		)
		for _, set := range []nameSet{oldDotNames, roomChangeLogNames, policyChangeLogNames} {
			for n := range set {
				s[n] = struct{}{}
			}
		}
		return s
	}()

	// Money-request subtypes that can own a transaction thread.
	oneTransactionIOUTypes = map[IOUType]bool{IOUCreate: true, IOUSplit: true, IOUPay: true, IOUTrack: true}

	// Money-request subtypes counted as requests.
	requestIOUTypes = map[IOUType]bool{IOUCreate: true, IOUSplit: true, IOUTrack: true}
)

// IsSupported reports whether n belongs to the closed set of kinds this
// engine knows how to display.
func IsSupported(n Name) bool {
	return supportedNames.has(n)
}
