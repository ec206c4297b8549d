package lists

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tunetrivia/tunetrivia/storage"
)

var (
	ErrListNotFound = errors.New("custom list not found")
	ErrSongNotFound = errors.New("song not found in list")
)

const (
	listKeyPrefix = "custom_lists/"
	indexKey      = "custom_lists/index.json"
)

type index struct {
	Lists []Summary `json:"lists"`
}

// Manager stores and retrieves custom song lists. All mutations update
// both the per-list document and the index document; the mutex keeps
// the two consistent under concurrent admin requests.
type Manager struct {
	store storage.Provider
	mu    sync.Mutex
}

// NewManager ensures the index document exists and returns a manager.
func NewManager(store storage.Provider) (*Manager, error) {
	m := &Manager{store: store}

	exists, err := store.Exists(indexKey)
	if err != nil {
		return nil, fmt.Errorf("failed to check list index: %w", err)
	}
	if !exists {
		if err := m.writeIndex(&index{Lists: []Summary{}}); err != nil {
			return nil, fmt.Errorf("failed to create list index: %w", err)
		}
	}
	return m, nil
}

func (m *Manager) listKey(id string) string {
	return listKeyPrefix + id + ".json"
}

func (m *Manager) readIndex() (*index, error) {
	data, err := m.store.Get(indexKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &index{Lists: []Summary{}}, nil
		}
		return nil, err
	}
	var idx index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("corrupt list index: %w", err)
	}
	return &idx, nil
}

func (m *Manager) writeIndex(idx *index) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return err
	}
	return m.store.Put(indexKey, data)
}

func (m *Manager) writeList(list *CustomSongList) error {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	if err := m.store.Put(m.listKey(list.ID), data); err != nil {
		return err
	}

	idx, err := m.readIndex()
	if err != nil {
		return err
	}
	entry := list.summary()
	replaced := false
	for i, s := range idx.Lists {
		if s.ID == list.ID {
			idx.Lists[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		idx.Lists = append(idx.Lists, entry)
	}
	return m.writeIndex(idx)
}

// CreateList creates an empty, active list.
func (m *Manager) CreateList(name, description, audience, decade, genre string) (*CustomSongList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	list := &CustomSongList{
		ID:             uuid.NewString(),
		Name:           name,
		Description:    description,
		TargetAudience: audience,
		PrimaryDecade:  decade,
		PrimaryGenre:   genre,
		Songs:          []CustomSong{},
		CreatedAt:      now,
		UpdatedAt:      now,
		CreatedBy:      "admin",
		IsActive:       true,
	}
	if err := m.writeList(list); err != nil {
		return nil, fmt.Errorf("failed to store list: %w", err)
	}
	return list, nil
}

// GetList loads a full list document.
func (m *Manager) GetList(id string) (*CustomSongList, error) {
	data, err := m.store.Get(m.listKey(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	var list CustomSongList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("corrupt list %s: %w", id, err)
	}
	return &list, nil
}

// Summaries returns the index entries for every list.
func (m *Manager) Summaries() ([]Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, err := m.readIndex()
	if err != nil {
		return nil, err
	}
	return idx.Lists, nil
}

// DeleteList removes the list document and its index entry.
func (m *Manager) DeleteList(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	exists, err := m.store.Exists(m.listKey(id))
	if err != nil {
		return err
	}
	if !exists {
		return ErrListNotFound
	}
	if err := m.store.Delete(m.listKey(id)); err != nil {
		return err
	}

	idx, err := m.readIndex()
	if err != nil {
		return err
	}
	kept := idx.Lists[:0]
	for _, s := range idx.Lists {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	idx.Lists = kept
	return m.writeIndex(idx)
}

// AddSong appends a song to a list. A missing difficulty defaults to
// "medium" so filter behavior stays predictable.
func (m *Manager) AddSong(listID string, song CustomSong) (*CustomSongList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list, err := m.GetList(listID)
	if err != nil {
		return nil, err
	}
	if song.ID == "" {
		song.ID = uuid.NewString()
	}
	if song.Difficulty == "" {
		song.Difficulty = "medium"
	}
	if song.Provider == "" {
		song.Provider = "custom"
	}

	list.Songs = append(list.Songs, song)
	list.UpdatedAt = time.Now().UTC()
	if err := m.writeList(list); err != nil {
		return nil, fmt.Errorf("failed to store list: %w", err)
	}
	return list, nil
}

// RemoveSong deletes a song from a list by song ID.
func (m *Manager) RemoveSong(listID, songID string) (*CustomSongList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list, err := m.GetList(listID)
	if err != nil {
		return nil, err
	}

	kept := list.Songs[:0]
	found := false
	for _, s := range list.Songs {
		if s.ID == songID {
			found = true
			continue
		}
		kept = append(kept, s)
	}
	if !found {
		return nil, ErrSongNotFound
	}

	list.Songs = kept
	list.UpdatedAt = time.Now().UTC()
	if err := m.writeList(list); err != nil {
		return nil, fmt.Errorf("failed to store list: %w", err)
	}
	return list, nil
}

// FilterSongs returns the songs in a list matching all set filters.
func (m *Manager) FilterSongs(listID string, f Filters) ([]CustomSong, error) {
	list, err := m.GetList(listID)
	if err != nil {
		return nil, err
	}

	matched := make([]CustomSong, 0, len(list.Songs))
	for _, song := range list.Songs {
		if matchesFilters(song, f) {
			matched = append(matched, song)
		}
		if f.Limit > 0 && len(matched) >= f.Limit {
			break
		}
	}
	return matched, nil
}

// IncrementPlayed bumps the usage counter when a game starts from the
// list.
func (m *Manager) IncrementPlayed(listID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	list, err := m.GetList(listID)
	if err != nil {
		return err
	}
	list.TimesPlayed++
	list.UpdatedAt = time.Now().UTC()
	return m.writeList(list)
}

func matchesFilters(song CustomSong, f Filters) bool {
	match := func(want, have string) bool {
		return want == "" || strings.EqualFold(want, have)
	}
	if !match(f.Decade, song.Decade) ||
		!match(f.Genre, song.Genre) ||
		!match(f.Style, song.Style) ||
		!match(f.Mood, song.Mood) ||
		!match(f.Difficulty, song.Difficulty) {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(song.Name), q) &&
			!strings.Contains(strings.ToLower(song.Artist), q) {
			return false
		}
	}
	return true
}
