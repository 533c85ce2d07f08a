package domain

import "strings"

// ItemKind identifies the concrete kind of a study item.
type ItemKind string

const (
	ItemKindQuestion  ItemKind = "question"
	ItemKindFlashcard ItemKind = "flashcard"
)

func (k ItemKind) String() string { return string(k) }

func (k ItemKind) IsValid() bool {
	switch k {
	case ItemKindQuestion, ItemKindFlashcard:
		return true
	}
	return false
}

// SelfEval is the learner's self-reported difficulty of an attempt.
type SelfEval int

const (
	SelfEvalAgain SelfEval = 0
	SelfEvalHard  SelfEval = 1
	SelfEvalGood  SelfEval = 2
	SelfEvalEasy  SelfEval = 3
)

func (e SelfEval) String() string {
	switch e {
	case SelfEvalAgain:
		return "AGAIN"
	case SelfEvalHard:
		return "HARD"
	case SelfEvalGood:
		return "GOOD"
	case SelfEvalEasy:
		return "EASY"
	}
	return "UNKNOWN"
}

func (e SelfEval) IsValid() bool {
	return e >= SelfEvalAgain && e <= SelfEvalEasy
}

// ParseSelfEval accepts a name (again, hard, good, easy; any case) or the
// numeric value 0-3.
func ParseSelfEval(s string) (SelfEval, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AGAIN", "0":
		return SelfEvalAgain, true
	case "HARD", "1":
		return SelfEvalHard, true
	case "GOOD", "2":
		return SelfEvalGood, true
	case "EASY", "3":
		return SelfEvalEasy, true
	}
	return 0, false
}

// TimingClass classifies a response time against the learner's own norm.
type TimingClass string

const (
	TimingRush  TimingClass = "RUSH"
	TimingSOPOK TimingClass = "SOP_OK"
	TimingOver  TimingClass = "OVER"
)

func (c TimingClass) String() string { return string(c) }

func (c TimingClass) IsValid() bool {
	switch c {
	case TimingRush, TimingSOPOK, TimingOver:
		return true
	}
	return false
}

// QueueMode selects the queue construction strategy.
type QueueMode string

const (
	QueueModeStandard QueueMode = "standard"
	QueueModeExam     QueueMode = "exam"
	QueueModeCritical QueueMode = "critical"
)

func (m QueueMode) String() string { return string(m) }

func (m QueueMode) IsValid() bool {
	switch m {
	case QueueModeStandard, QueueModeExam, QueueModeCritical:
		return true
	}
	return false
}

// StudyMode tells critical mode which priority to sort by.
type StudyMode string

const (
	StudyModeSpaced StudyMode = "spaced"
	StudyModeExam   StudyMode = "exam"
)

func (m StudyMode) String() string { return string(m) }

func (m StudyMode) IsValid() bool {
	switch m {
	case StudyModeSpaced, StudyModeExam:
		return true
	}
	return false
}

// DueReason explains why an item was put into a session queue.
type DueReason string

const (
	DueReasonDue DueReason = "due"
	DueReasonNew DueReason = "new"
)

func (r DueReason) String() string { return string(r) }
