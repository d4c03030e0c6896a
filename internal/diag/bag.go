package diag

// Bag collects the diagnostics of one file in the order they were reported.
// It has no limit: the exit status depends on every entry being kept.
type Bag struct {
	items []Diagnostic
}

func NewBag(capHint int) *Bag {
	if capHint < 0 {
		capHint = 0
	}
	return &Bag{items: make([]Diagnostic, 0, capHint)}
}

func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

// HasErrors возвращает true, если есть хотя бы одна диагностика с Severity >= Error
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings возвращает true, если есть хотя бы одна диагностика с Severity >= Warning
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

// длина
func (b *Bag) Len() int {
	if b == nil {
		return 0
	}
	return len(b.items)
}

// Items возвращает read-only slice диагностик.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []Diagnostic {
	if b == nil {
		return nil
	}
	return b.items
}

// Count returns how many diagnostics have exactly severity sev.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for i := range b.Items() {
		if b.items[i].Severity == sev {
			n++
		}
	}
	return n
}
