package operations

import (
	// Go Internal Packages
	"time"

	// Local Packages
	errors "network-ops/errors"
	models "network-ops/models"
	utils "network-ops/utils"
)

type reasonSet map[models.RejectionReason]struct{}

func reasons(rs ...models.RejectionReason) reasonSet {
	set := make(reasonSet, len(rs))
	for _, r := range rs {
		set[r] = struct{}{}
	}
	return set
}

// Policy is the per-kind part of the lifecycle. Every kind shares the same
// transition function; only these knobs differ.
type Policy struct {
	// AllowsApprovedIntermediateState is false for KYC: approval completes the review.
	AllowsApprovedIntermediateState bool
	ReasonRequired                  bool
	AllowedRejectionReasons         reasonSet
	// Settleable kinds can be completed or failed by the settlement process.
	Settleable bool
}

// Allows reports whether r may be used to reject an operation of this kind.
func (p Policy) Allows(r models.RejectionReason) bool {
	_, ok := p.AllowedRejectionReasons[r]
	return ok
}

var (
	kycReasons = reasons(
		models.ReasonDocumentExpired,
		models.ReasonDocumentIllegible,
		models.ReasonDocumentIncomplete,
		models.ReasonDataMismatch,
		models.ReasonAddressMismatch,
		models.ReasonOther,
	)
	paymentReasons = reasons(
		models.ReasonInsufficientFunds,
		models.ReasonInvalidDestination,
		models.ReasonSuspectedFraud,
		models.ReasonOther,
	)

	paymentPolicy = Policy{
		AllowsApprovedIntermediateState: true,
		AllowedRejectionReasons:         paymentReasons,
		Settleable:                      true,
	}
	kycPolicy = Policy{
		ReasonRequired:          true,
		AllowedRejectionReasons: kycReasons,
	}

	policies = map[models.OperationKind]Policy{
		models.KindLicensePurchase:       paymentPolicy,
		models.KindDelegatedPayment:      paymentPolicy,
		models.KindWithdrawalDividends:   paymentPolicy,
		models.KindWithdrawalCommissions: paymentPolicy,
		models.KindUserTransfer:          paymentPolicy,
		models.KindKYCIdentity:           kycPolicy,
		models.KindKYCAddress:            kycPolicy,
	}
)

// PolicyFor returns the lifecycle policy of kind.
func PolicyFor(kind models.OperationKind) (Policy, error) {
	p, ok := policies[kind]
	if !ok {
		return Policy{}, errors.E(errors.Invalid, "unknown operation kind "+string(kind), nil)
	}
	return p, nil
}

// now is replaced in tests.
var now = func() time.Time { return time.Now().UTC() }

// Normalize maps a stored KYC record in APPROVED onto COMPLETED, since KYC has
// no approved-but-not-completed phase.
func Normalize(op models.Operation) models.Operation {
	if op.Kind.IsKYC() && op.State == models.StateApproved {
		op.State = models.StateCompleted
	}
	return op
}

// fromPending checks that op may leave PENDING.
func fromPending(op models.Operation, to models.State) error {
	switch {
	case models.IsTerminal(op.State):
		return errors.TerminalErr(op.ID, string(op.State))
	case op.State != models.StatePending:
		return errors.TransitionErr(op.ID, string(op.State), string(to))
	}
	return nil
}

// Approve returns op moved out of PENDING by an admin. Payments become APPROVED,
// KYC files become COMPLETED. On error op is returned unchanged.
func Approve(op models.Operation, actor models.Actor) (models.Operation, error) {
	if !actor.Admin {
		return op, errors.ForbiddenErr(actor.Username, "approve operations")
	}
	policy, err := PolicyFor(op.Kind)
	if err != nil {
		return op, err
	}

	to := models.StateCompleted
	if policy.AllowsApprovedIntermediateState {
		to = models.StateApproved
	}
	if err := fromPending(Normalize(op), to); err != nil {
		return op, err
	}

	next := op
	next.State = to
	next.UpdatedAt = now()
	return next, nil
}

// Reject returns op moved from PENDING to REJECTED by an admin. The comment is
// always required; the reason is required for kinds whose policy says so and,
// when given, must belong to the kind's reason set.
func Reject(op models.Operation, actor models.Actor, reason models.RejectionReason, comment string) (models.Operation, error) {
	if !actor.Admin {
		return op, errors.ForbiddenErr(actor.Username, "reject operations")
	}
	policy, err := PolicyFor(op.Kind)
	if err != nil {
		return op, err
	}
	if err := checkRejection(policy, reason, comment); err != nil {
		return op, err
	}
	if err := fromPending(Normalize(op), models.StateRejected); err != nil {
		return op, err
	}

	next := op
	next.State = models.StateRejected
	next.RejectionReason = reason
	next.Comment = comment
	next.UpdatedAt = now()
	return next, nil
}

// CheckRejection runs the form-level part of Reject without a record.
func CheckRejection(kind models.OperationKind, reason models.RejectionReason, comment string) error {
	policy, err := PolicyFor(kind)
	if err != nil {
		return err
	}
	return checkRejection(policy, reason, comment)
}

func checkRejection(policy Policy, reason models.RejectionReason, comment string) error {
	if utils.IsBlank(comment) {
		return errors.MissingReasonErr("comment")
	}
	if reason == "" {
		if policy.ReasonRequired {
			return errors.MissingReasonErr("rejection reason")
		}
		return nil
	}
	if !policy.Allows(reason) {
		return errors.E(errors.Invalid, "rejection reason "+string(reason)+" not allowed", nil)
	}
	return nil
}

// Settle applies a system-triggered settlement: APPROVED -> COMPLETED, or
// PENDING/APPROVED -> FAILED. It is not reachable through Approve or Reject.
func Settle(op models.Operation, to models.State) (models.Operation, error) {
	policy, err := PolicyFor(op.Kind)
	if err != nil {
		return op, err
	}
	if models.IsTerminal(op.State) {
		return op, errors.TerminalErr(op.ID, string(op.State))
	}
	if !policy.Settleable {
		return op, errors.TransitionErr(op.ID, string(op.State), string(to))
	}

	switch {
	case to == models.StateCompleted && op.State == models.StateApproved:
	case to == models.StateFailed && (op.State == models.StatePending || op.State == models.StateApproved):
	default:
		return op, errors.TransitionErr(op.ID, string(op.State), string(to))
	}

	next := op
	next.State = to
	next.UpdatedAt = now()
	return next, nil
}

// Validate checks a record against its kind's policy.
func Validate(op models.Operation) error {
	ve := errors.ValidationErrs()

	policy, err := PolicyFor(op.Kind)
	if err != nil {
		ve.Add("kind", "unknown")
		return errors.ValidationFailedErr(ve.Err())
	}
	if op.Kind.IsKYC() {
		if !op.Amount.IsZero() {
			ve.Add("amount", "must be zero for KYC files")
		}
	} else if op.Amount.IsZero() {
		ve.Add("amount", "cannot be zero")
	}
	if op.OwnerID == "" {
		ve.Add("owner_id", "cannot be empty")
	}
	if models.RequiresReason(op.State) {
		if utils.IsBlank(op.Comment) {
			ve.Add("comment", "cannot be empty when rejected")
		}
		if policy.ReasonRequired && op.RejectionReason == "" {
			ve.Add("rejection_reason", "cannot be empty when rejected")
		}
	}

	if ve.Len() > 0 {
		return errors.ValidationFailedErr(ve.Err())
	}
	return nil
}
