package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// State-machine violations are never retried: once a transition happened,
// repeating the request is semantically wrong, not transient.
var (
	ErrAlreadySpunToday  = errors.New("you have already spun the wheel today")
	ErrNoActiveQuiz      = errors.New("no active quiz available today")
	ErrNoActiveChallenge = errors.New("no active challenge available today")
	ErrInvalidTransition = errors.New("action not allowed in the current state")
	ErrDuplicateProof    = errors.New("a proof was already submitted for this challenge")
	ErrAlreadyReviewed   = errors.New("this proof has already been reviewed")
	ErrConfiguration     = errors.New("invalid configuration")
	ErrSelfVote          = errors.New("you cannot vote for your own proof")
	ErrAlreadyVoted      = errors.New("you have already voted for this proof")
	ErrSpinLock          = errors.New("spin already in progress")
	ErrReviewLock        = errors.New("review already in progress")
)

const (
	CONFIG_REFERENCE_TIMEZONE      = "REFERENCE_TIMEZONE"
	CONFIG_SCENARIO_QUIZ_WEIGHT    = "SCENARIO_QUIZ_WEIGHT"
	CONFIG_QUIZ_DEFAULT_POINTS     = "QUIZ_DEFAULT_POINTS"
	CONFIG_CHALLENGE_FALLBACK_PTS  = "CHALLENGE_FALLBACK_POINTS"
	CONFIG_PENDING_GRACE_DAYS      = "PENDING_GRACE_DAYS"
	CONFIG_LEADERBOARD_LIMIT       = "LEADERBOARD_LIMIT"
	CONFIG_ACTIVITY_FEED_LIMIT     = "ACTIVITY_FEED_LIMIT"
	CONFIG_ADMIN_PROOF_LIST_LIMIT  = "ADMIN_PROOF_LIST_LIMIT"
	CONFIG_RECONCILE_BATCH_LIMIT   = "RECONCILE_BATCH_LIMIT"
	CONFIG_VOTE_LIMIT_PER_MINUTE   = "VOTE_LIMIT_PER_MINUTE"
	DEFAULT_REFERENCE_TIMEZONE     = "UTC"
	DEFAULT_SCENARIO_QUIZ_WEIGHT   = 67
	DEFAULT_QUIZ_POINTS            = 20
	DEFAULT_CHALLENGE_FALLBACK_PTS = 25
	DEFAULT_PENDING_GRACE_DAYS     = 1
	DEFAULT_LEADERBOARD_LIMIT      = 20
	DEFAULT_FEED_LIMIT             = 50
	DEFAULT_ADMIN_PROOF_LIST_LIMIT = 100
	DEFAULT_RECONCILE_BATCH_LIMIT  = 500
	DEFAULT_VOTE_LIMIT_PER_MINUTE  = 30

	CACHE_TTL_15_SECONDS = 15 * time.Second
	CACHE_TTL_1_MIN      = 1 * time.Minute
	CACHE_TTL_5_MINS     = 5 * time.Minute
	CACHE_TTL_15_MINS    = 15 * time.Minute
	CACHE_TTL_1_HOUR     = 1 * time.Hour
)

func LockKeyUserSpin(userID int64) string {
	return fmt.Sprintf("lock:user-spin:%d", userID)
}

func LockKeyUserQuizAnswer(userID int64) string {
	return fmt.Sprintf("lock:user-quiz-answer:%d", userID)
}

func LockKeyProofReview(proofID int64) string {
	return fmt.Sprintf("lock:proof-review:%d", proofID)
}

func LockKeyUserProofSubmit(userID int64, challengeID int64) string {
	return fmt.Sprintf("lock:user-proof-submit:%d:%d", userID, challengeID)
}

// db
func DBKeyUser(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

func DBKeyActiveODDs() string {
	return "odds:active"
}

func DBKeyODD(oddID int) string {
	return fmt.Sprintf("odd:%d", oddID)
}

func DBKeyConfig(key string) string {
	return fmt.Sprintf("config:%s", strings.ToLower(key))
}

func DBKeyChallenge(challengeID int64) string {
	return fmt.Sprintf("challenge:%d", challengeID)
}

func LimitKeyUserVote(userID int64) string {
	return fmt.Sprintf("users:vote:%d", userID)
}

func LimitKeyUserSpin(userID int64) string {
	return fmt.Sprintf("users:spin:%d", userID)
}
