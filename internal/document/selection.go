package document

import "sync"

// Selection tracks the currently selected block id and notifies subscribers
// when it changes. The zero value is ready to use.
type Selection struct {
	mu     sync.Mutex
	id     string
	nextID int
	subs   map[int]func(string)
}

// Selected returns the selected id, or "" when nothing is selected.
func (s *Selection) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Select marks id as selected. An empty id clears the selection.
func (s *Selection) Select(id string) {
	s.set(id)
}

// Clear removes the selection.
func (s *Selection) Clear() {
	s.set("")
}

// Subscribe registers fn for selection changes and returns a func that removes it.
func (s *Selection) Subscribe(fn func(id string)) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	if s.subs == nil {
		s.subs = make(map[int]func(string))
	}
	key := s.nextID
	s.nextID++
	s.subs[key] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, key)
			s.mu.Unlock()
		})
	}
}

func (s *Selection) set(id string) {
	s.mu.Lock()
	if s.id == id {
		s.mu.Unlock()
		return
	}
	s.id = id
	listeners := make([]func(string), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(id)
	}
}
