package domain

import "time"

// Outcome classifies the result of admitting a song request.
// Rejections are expected chat traffic, not errors; every outcome maps to a
// distinct chat reply.
type Outcome string

const (
	// OutcomeAccepted means the track was added to the queue as a new entry.
	OutcomeAccepted Outcome = "accepted"
	// OutcomeVoted means the track was already queued and the request counted
	// as a vote (or was an idempotent re-vote by the same user).
	OutcomeVoted Outcome = "voted"
	// OutcomeDuplicate means the track is already queued and smart voting is off.
	OutcomeDuplicate Outcome = "duplicate"
	// OutcomeFull means the queue is at its configured maximum size.
	OutcomeFull Outcome = "queue_full"
	// OutcomeUserLimit means the user has too many active requests.
	OutcomeUserLimit Outcome = "user_limit"
	// OutcomeTooLong means the track exceeds the maximum allowed length.
	OutcomeTooLong Outcome = "too_long"
	// OutcomeOnCooldown means the track played too recently.
	OutcomeOnCooldown Outcome = "on_cooldown"
	// OutcomeUserCooldown means the user requested too recently.
	OutcomeUserCooldown Outcome = "user_cooldown"
	// OutcomeBlacklisted means the track matched a blacklist rule.
	OutcomeBlacklisted Outcome = "blacklisted"
	// OutcomePaused means song requests are globally paused.
	OutcomePaused Outcome = "paused"
	// OutcomeNotFound means no track could be resolved for the query.
	OutcomeNotFound Outcome = "not_found"
)

// Admitted returns true if the request changed or confirmed queue state.
func (o Outcome) Admitted() bool {
	return o == OutcomeAccepted || o == OutcomeVoted
}

// Admission is the result of a single Admit call. Position and Wait are only
// meaningful for OutcomeAccepted, Votes for OutcomeVoted, MatchedRule for
// OutcomeBlacklisted.
type Admission struct {
	Outcome     Outcome
	Position    int // 1-indexed queue position of the new entry
	Wait        time.Duration
	Votes       int
	MatchedRule string
}
