package operations

import (
	"testing"
	"time"

	errors "network-ops/errors"
	models "network-ops/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin = models.Actor{Username: "root", Admin: true}
	user  = models.Actor{Username: "alice"}
)

func pendingOp(kind models.OperationKind) models.Operation {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	op := models.Operation{
		ID:        "op-1",
		Kind:      kind,
		OwnerID:   "alice",
		State:     models.StatePending,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if !kind.IsKYC() {
		op.Amount = decimal.NewFromInt(500)
	}
	return op
}

var paymentKinds = []models.OperationKind{
	models.KindLicensePurchase,
	models.KindDelegatedPayment,
	models.KindWithdrawalDividends,
	models.KindWithdrawalCommissions,
	models.KindUserTransfer,
}

var kycKinds = []models.OperationKind{models.KindKYCIdentity, models.KindKYCAddress}

func TestApprovePaymentKindsStopAtApproved(t *testing.T) {
	for _, kind := range paymentKinds {
		t.Run(string(kind), func(t *testing.T) {
			next, err := Approve(pendingOp(kind), admin)
			require.NoError(t, err)
			assert.Equal(t, models.StateApproved, next.State)
			assert.True(t, next.UpdatedAt.After(pendingOp(kind).UpdatedAt))
		})
	}
}

func TestApproveKYCCompletesDirectly(t *testing.T) {
	for _, kind := range kycKinds {
		t.Run(string(kind), func(t *testing.T) {
			next, err := Approve(pendingOp(kind), admin)
			require.NoError(t, err)
			assert.Equal(t, models.StateCompleted, next.State)
		})
	}
}

func TestApproveRequiresAdmin(t *testing.T) {
	op := pendingOp(models.KindWithdrawalDividends)
	got, err := Approve(op, user)
	require.Error(t, err)
	assert.True(t, errors.Is(errors.Permission, err))
	assert.Equal(t, op, got)
}

func TestApproveTwiceIsInvalidTransition(t *testing.T) {
	first, err := Approve(pendingOp(models.KindWithdrawalDividends), admin)
	require.NoError(t, err)

	second, err := Approve(first, admin)
	require.Error(t, err)
	assert.True(t, errors.Is(errors.InvalidTransition, err))
	assert.False(t, errors.Is(errors.TerminalState, err))
	assert.Equal(t, first, second)
}

func TestTransitionsOutOfTerminalStatesFail(t *testing.T) {
	for _, state := range []models.State{models.StateCompleted, models.StateRejected, models.StateFailed} {
		t.Run(string(state), func(t *testing.T) {
			op := pendingOp(models.KindUserTransfer)
			op.State = state

			got, err := Approve(op, admin)
			require.Error(t, err)
			assert.True(t, errors.Is(errors.InvalidTransition, err))
			assert.True(t, errors.Is(errors.TerminalState, err))
			assert.Equal(t, op, got)

			got, err = Reject(op, admin, models.ReasonOther, "no")
			require.Error(t, err)
			assert.True(t, errors.Is(errors.InvalidTransition, err))
			assert.Equal(t, op, got)
		})
	}
}

func TestKYCStoredAsApprovedIsTerminal(t *testing.T) {
	op := pendingOp(models.KindKYCIdentity)
	op.State = models.StateApproved

	_, err := Reject(op, admin, models.ReasonDocumentExpired, "too late")
	require.Error(t, err)
	assert.True(t, errors.Is(errors.TerminalState, err))
	assert.Equal(t, models.StateCompleted, Normalize(op).State)
}

func TestRejectRequiresComment(t *testing.T) {
	for _, comment := range []string{"", "   "} {
		op := pendingOp(models.KindWithdrawalCommissions)
		got, err := Reject(op, admin, "", comment)
		require.Error(t, err)
		assert.True(t, errors.Is(errors.MissingReason, err))
		assert.Equal(t, op, got)
	}
}

func TestRejectKYCScenario(t *testing.T) {
	op := pendingOp(models.KindKYCIdentity)

	_, err := Reject(op, admin, models.ReasonDocumentExpired, "")
	require.Error(t, err)
	assert.True(t, errors.Is(errors.MissingReason, err))

	next, err := Reject(op, admin, models.ReasonDocumentExpired, "please resubmit")
	require.NoError(t, err)
	assert.Equal(t, models.StateRejected, next.State)
	assert.Equal(t, models.ReasonDocumentExpired, next.RejectionReason)
	assert.Equal(t, "please resubmit", next.Comment)
}

func TestRejectReasonRules(t *testing.T) {
	tests := []struct {
		name   string
		kind   models.OperationKind
		reason models.RejectionReason
		wantKind  errors.Kind
		ok     bool
	}{
		{name: "kyc without reason", kind: models.KindKYCAddress, wantKind: errors.MissingReason},
		{name: "kyc with payment reason", kind: models.KindKYCAddress, reason: models.ReasonInsufficientFunds, wantKind: errors.Invalid},
		{name: "kyc with kyc reason", kind: models.KindKYCAddress, reason: models.ReasonAddressMismatch, ok: true},
		{name: "payment without reason", kind: models.KindUserTransfer, ok: true},
		{name: "payment with payment reason", kind: models.KindUserTransfer, reason: models.ReasonSuspectedFraud, ok: true},
		{name: "payment with kyc reason", kind: models.KindUserTransfer, reason: models.ReasonDocumentExpired, wantKind: errors.Invalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := Reject(pendingOp(tt.kind), admin, tt.reason, "see notes")
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, models.StateRejected, next.State)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, errors.KindOf(err))
		})
	}
}

func TestRejectFromApprovedIsInvalidTransition(t *testing.T) {
	op := pendingOp(models.KindLicensePurchase)
	op.State = models.StateApproved

	_, err := Reject(op, admin, "", "changed my mind")
	require.Error(t, err)
	assert.True(t, errors.Is(errors.InvalidTransition, err))
	assert.False(t, errors.Is(errors.TerminalState, err))
}

func TestUnknownKind(t *testing.T) {
	op := pendingOp(models.KindUserTransfer)
	op.Kind = "BONUS"

	_, err := Approve(op, admin)
	require.Error(t, err)
	assert.Equal(t, errors.Invalid, errors.KindOf(err))
}

func TestSettle(t *testing.T) {
	tests := []struct {
		name string
		kind models.OperationKind
		from models.State
		to   models.State
		ok   bool
	}{
		{"approved completes", models.KindWithdrawalDividends, models.StateApproved, models.StateCompleted, true},
		{"pending fails", models.KindWithdrawalDividends, models.StatePending, models.StateFailed, true},
		{"approved fails", models.KindUserTransfer, models.StateApproved, models.StateFailed, true},
		{"pending cannot complete", models.KindUserTransfer, models.StatePending, models.StateCompleted, false},
		{"completed cannot fail", models.KindUserTransfer, models.StateCompleted, models.StateFailed, false},
		{"settlement cannot reject", models.KindUserTransfer, models.StatePending, models.StateRejected, false},
		{"kyc never settles", models.KindKYCIdentity, models.StatePending, models.StateFailed, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := pendingOp(tt.kind)
			op.State = tt.from
			next, err := Settle(op, tt.to)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.to, next.State)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(errors.InvalidTransition, err))
			assert.Equal(t, op, next)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(pendingOp(models.KindWithdrawalDividends)))
	assert.NoError(t, Validate(pendingOp(models.KindKYCIdentity)))

	zero := pendingOp(models.KindWithdrawalDividends)
	zero.Amount = decimal.Zero
	assert.Equal(t, errors.Invalid, errors.KindOf(Validate(zero)))

	kyc := pendingOp(models.KindKYCIdentity)
	kyc.Amount = decimal.NewFromInt(1)
	assert.Equal(t, errors.Invalid, errors.KindOf(Validate(kyc)))

	rejected := pendingOp(models.KindKYCIdentity)
	rejected.State = models.StateRejected
	err := Validate(rejected)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "comment")
	assert.Contains(t, err.Error(), "rejection_reason")
}
