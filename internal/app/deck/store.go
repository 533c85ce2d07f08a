package deck

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/service/study/timing"
)

// Deck is a loaded deck file.
type Deck struct {
	Path           string
	Items          []domain.StudyItem
	FrozenSubjects []string
	Timing         map[string]timing.State

	studyLater map[uuid.UUID]struct{}
}

// Load reads and maps a deck file. Any invalid entry fails the load with
// its index.
func Load(path string, defaultStability float64, today time.Time) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode deck %s: %w", path, err)
	}

	d := &Deck{
		Path:           path,
		Items:          make([]domain.StudyItem, 0, len(f.Items)),
		FrozenSubjects: f.FrozenSubjects,
		Timing:         f.Timing,
		studyLater:     make(map[uuid.UUID]struct{}, len(f.StudyLater)),
	}

	occurrences := make(map[string]int)
	for i, e := range f.Items {
		if err := Validate(e); err != nil {
			return nil, fmt.Errorf("deck %s: item %d: %w", path, i, err)
		}
		if e.ID == "" {
			key := contentKey(e)
			e.ID = DerivedID(e, occurrences[key]).String()
			occurrences[key]++
		}
		d.Items = append(d.Items, ToItem(e, defaultStability, today))
	}

	for _, raw := range f.StudyLater {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("deck %s: study_later id %q: %w", path, raw, err)
		}
		d.studyLater[id] = struct{}{}
	}

	return d, nil
}

// LoadAll reads several decks concurrently and returns them in the order
// of paths.
func LoadAll(ctx context.Context, paths []string, defaultStability float64, today time.Time) ([]*Deck, error) {
	decks := make([]*Deck, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := Load(path, defaultStability, today)
			if err != nil {
				return err
			}
			decks[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return decks, nil
}

// Save writes the deck back to its path. The file is replaced by rename so
// a failed write leaves the previous version intact.
func (d *Deck) Save() error {
	f := File{
		FrozenSubjects: d.FrozenSubjects,
		Timing:         d.Timing,
		Items:          make([]Entry, 0, len(d.Items)),
	}
	for id := range d.studyLater {
		f.StudyLater = append(f.StudyLater, id.String())
	}
	slices.Sort(f.StudyLater)
	for _, item := range d.Items {
		f.Items = append(f.Items, FromItem(item))
	}

	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("encode deck %s: %w", d.Path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(d.Path), filepath.Base(d.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write deck %s: %w", d.Path, err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write deck %s: %w", d.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write deck %s: %w", d.Path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("write deck %s: %w", d.Path, err)
	}
	if err := os.Rename(tmp.Name(), d.Path); err != nil {
		return fmt.Errorf("replace deck %s: %w", d.Path, err)
	}
	return nil
}

// Find returns the item with the given id.
func (d *Deck) Find(id uuid.UUID) (domain.StudyItem, error) {
	for _, item := range d.Items {
		if item.ItemID() == id {
			return item, nil
		}
	}
	return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
}

// Replace swaps in a new snapshot of an item with the same id.
func (d *Deck) Replace(item domain.StudyItem) error {
	for i, existing := range d.Items {
		if existing.ItemID() == item.ItemID() {
			d.Items[i] = item
			return nil
		}
	}
	return fmt.Errorf("item %s: %w", item.ItemID(), domain.ErrNotFound)
}

// StudyLaterIDs returns the ids the learner marked for later.
func (d *Deck) StudyLaterIDs() map[uuid.UUID]struct{} {
	return d.studyLater
}

// StudyLaterSet is the union of the study-later ids of several decks.
type StudyLaterSet map[uuid.UUID]struct{}

// Union merges the study-later ids of decks.
func Union(decks []*Deck) StudyLaterSet {
	set := make(StudyLaterSet)
	for _, d := range decks {
		for id := range d.studyLater {
			set[id] = struct{}{}
		}
	}
	return set
}

func (s StudyLaterSet) StudyLaterIDs() map[uuid.UUID]struct{} {
	return s
}
