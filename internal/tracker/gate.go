// ABOUTME: Free-tier quota rules shared by every routine entry point.
// ABOUTME: A refused action yields a Paywall outcome, not an error.
package tracker

import "slices"

// Free-tier limits.
const (
	FreeRoutineLimit = 10
	FreeMessageLimit = 5
)

// Unlimited is the remaining-slot value for pro users.
const Unlimited = -1

// PaywallReason says which limit blocked an action.
type PaywallReason string

const (
	PaywallRoutineLimit PaywallReason = "routine_limit"
	PaywallMessageLimit PaywallReason = "message_limit"
	PaywallProOnly      PaywallReason = "pro_only"
)

// Paywall is returned in an Outcome when gating refuses an action.
type Paywall struct {
	Reason PaywallReason
	// Rejected lists candidate indices refused during a selection.
	Rejected []int
}

// Message returns the prompt shown to the user.
func (p *Paywall) Message() string {
	switch p.Reason {
	case PaywallMessageLimit:
		return "Daily Guru limit reached. Upgrade to Apex Pro for unlimited coaching."
	case PaywallProOnly:
		return "Titan blueprints are an Apex Pro feature."
	default:
		return "Free plan is limited to 10 habits. Upgrade to Apex Pro for unlimited habits."
	}
}

// IsLimitReached reports whether a free user is at or over the routine cap.
func IsLimitReached(isPro bool, count int) bool {
	return !isPro && count >= FreeRoutineLimit
}

// CanAdd reports whether adding n routines keeps a free user within the cap.
func CanAdd(isPro bool, count, n int) bool {
	return isPro || count+n <= FreeRoutineLimit
}

// RemainingSlots returns how many routines may still be added, or Unlimited.
func RemainingSlots(isPro bool, count int) int {
	if isPro {
		return Unlimited
	}
	return max(0, FreeRoutineLimit-count)
}

// IsMessageLimitReached reports whether a free user has used today's AI messages.
func IsMessageLimitReached(isPro bool, used int) bool {
	return !isPro && used >= FreeMessageLimit
}

// Preselect returns the first min(n, slots) candidate indices.
func Preselect(n, slots int) []int {
	if slots != Unlimited {
		n = min(n, slots)
	}
	out := make([]int, 0, max(n, 0))
	for i := 0; i < n; i++ {
		out = append(out, i)
	}
	return out
}

// Select adds idx to the selection unless that would exceed slots, in which
// case the selection is returned unchanged with a Paywall.
func Select(selected []int, idx, slots int) ([]int, *Paywall) {
	if slices.Contains(selected, idx) {
		return selected, nil
	}
	if slots != Unlimited && len(selected) >= slots {
		return selected, &Paywall{Reason: PaywallRoutineLimit, Rejected: []int{idx}}
	}
	out := append(slices.Clone(selected), idx)
	slices.Sort(out)
	return out, nil
}

// Deselect removes idx from the selection.
func Deselect(selected []int, idx int) []int {
	return slices.DeleteFunc(slices.Clone(selected), func(i int) bool { return i == idx })
}
