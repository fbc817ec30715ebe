package token

// Counter reports how many model tokens a piece of text consumes. Batch
// sizing depends only on this integer contract, never on which tokenizer
// sits behind it.
type Counter interface {
	Count(text string) int
}

// Heuristic approximates tokens as one per four bytes. Used when no real
// tokenizer vocabulary can be loaded.
type Heuristic struct{}

func (Heuristic) Count(text string) int {
	return len(text) / 4
}

// New returns the precise counter when the encoding loads, the heuristic
// otherwise. The second return reports which one the caller got. Selection
// happens once per run so batch sizing stays reproducible.
func New() (Counter, bool) {
	t, err := NewTiktoken()
	if err != nil {
		return Heuristic{}, false
	}
	return t, true
}
