package conversation

// historyStack records previously answered questions in order. It grows by
// one on every successful advance and shrinks by one on every rewind, so its
// length always equals the number of questions answered so far.
type historyStack struct {
	entries []HistoryEntry
}

func (h *historyStack) push(entry HistoryEntry) {
	h.entries = append(h.entries, entry)
}

func (h *historyStack) pop() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}

	last := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]

	return last, true
}

func (h *historyStack) size() int {
	return len(h.entries)
}

func (h *historyStack) clear() {
	h.entries = nil
}

type transcript struct {
	entries []TranscriptEntry
}

func (t *transcript) add(kind EntryKind, text string) {
	t.entries = append(t.entries, TranscriptEntry{
		Kind: kind,
		Text: text,
	})
}

// dropLast removes the most recent entry. Used only to roll back an answer
// that was rendered before its submission failed.
func (t *transcript) dropLast() {
	if len(t.entries) > 0 {
		t.entries = t.entries[:len(t.entries)-1]
	}
}

func (t *transcript) reset(entries ...TranscriptEntry) {
	t.entries = entries
}
