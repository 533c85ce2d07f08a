package deck

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
)

// itemNamespace scopes the ids derived for entries that carry none.
var itemNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:studyctl:deck-item"))

// DerivedID returns the id of an entry without one. It depends only on the
// entry's content, so the same file yields the same ids on every load;
// occurrence tells identical entries apart.
func DerivedID(e Entry, occurrence int) uuid.UUID {
	return uuid.NewSHA1(itemNamespace, []byte(contentKey(e)+"\x1f"+strconv.Itoa(occurrence)))
}

func contentKey(e Entry) string {
	return strings.Join([]string{
		string(e.Kind), e.Subject, e.Topic, e.Statement, e.Answer, e.Front, e.Back,
	}, "\x1f")
}

// ToItem converts a validated Entry to a domain item. Entries without an id
// get DerivedID; entries without state start as new items due today.
func ToItem(e Entry, defaultStability float64, today time.Time) domain.StudyItem {
	id, err := uuid.Parse(e.ID)
	if err != nil {
		id = DerivedID(e, 0)
	}

	state := domain.NewSRSState(defaultStability, today)
	if e.SRS != nil {
		state = *e.SRS
	}
	state.HotTopic = state.HotTopic || e.Hot
	state.IsCritical = state.IsCritical || e.Critical
	state.IsFundamental = state.IsFundamental || e.Fundamental

	class := domain.Classification{
		Subject:  e.Subject,
		Topic:    e.Topic,
		Bank:     e.Bank,
		Area:     e.Area,
		Tags:     e.Tags,
		Favorite: e.Favorite,
	}

	if e.Kind == domain.ItemKindFlashcard {
		return domain.Flashcard{ID: id, Front: e.Front, Back: e.Back, Class: class, State: state}
	}
	return domain.Question{
		ID:          id,
		Statement:   e.Statement,
		Options:     e.Options,
		Answer:      e.Answer,
		Explanation: e.Explanation,
		Class:       class,
		State:       state,
	}
}

// FromItem converts a domain item back to its deck Entry.
func FromItem(item domain.StudyItem) Entry {
	meta := item.Meta()
	state := item.SRS()

	e := Entry{
		ID:          item.ItemID().String(),
		Kind:        item.Kind(),
		Subject:     meta.Subject,
		Topic:       meta.Topic,
		Bank:        meta.Bank,
		Area:        meta.Area,
		Tags:        meta.Tags,
		Favorite:    meta.Favorite,
		Hot:         state.HotTopic,
		Critical:    state.IsCritical,
		Fundamental: state.IsFundamental,
		SRS:         &state,
	}

	switch v := item.(type) {
	case domain.Question:
		e.Statement = v.Statement
		e.Options = v.Options
		e.Answer = v.Answer
		e.Explanation = v.Explanation
	case domain.Flashcard:
		e.Front = v.Front
		e.Back = v.Back
	}

	return e
}
