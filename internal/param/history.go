package param

// History receives every committed URL, one entry per navigation.
type History interface {
	Push(rawURL string)
}

// HistoryFunc adapts a function to History.
type HistoryFunc func(rawURL string)

// Push calls f.
func (f HistoryFunc) Push(rawURL string) { f(rawURL) }

// MemoryHistory is a browser-style back/forward stack.
type MemoryHistory struct {
	entries []string
	index   int
}

// NewMemoryHistory starts a history whose current entry is initial.
func NewMemoryHistory(initial string) *MemoryHistory {
	return &MemoryHistory{entries: []string{initial}}
}

// Push adds an entry after the current one and drops any forward entries.
func (h *MemoryHistory) Push(rawURL string) {
	h.entries = append(h.entries[:h.index+1], rawURL)
	h.index = len(h.entries) - 1
}

// Current returns the entry being displayed.
func (h *MemoryHistory) Current() string { return h.entries[h.index] }

// Len returns the number of entries, including the initial one.
func (h *MemoryHistory) Len() int { return len(h.entries) }

// Back moves one entry back. It reports false at the first entry.
func (h *MemoryHistory) Back() (string, bool) {
	if h.index == 0 {
		return h.entries[0], false
	}
	h.index--
	return h.entries[h.index], true
}

// Forward moves one entry forward. It reports false at the last entry.
func (h *MemoryHistory) Forward() (string, bool) {
	if h.index == len(h.entries)-1 {
		return h.entries[h.index], false
	}
	h.index++
	return h.entries[h.index], true
}

// Since returns the entries pushed after position n.
func (h *MemoryHistory) Since(n int) []string {
	if n >= len(h.entries) {
		return nil
	}
	out := make([]string, len(h.entries)-n)
	copy(out, h.entries[n:])
	return out
}
