package logging

import (
	"sync"
)

// Journal keeps every record in memory. Mostly useful in tests.
type Journal struct {
	mu      sync.Mutex
	records []Record
}

func NewJournal() *Journal {
	return new(Journal)
}

// Callback returns the collaborator appending records to the journal.
func (j *Journal) Callback() Callback {
	return func(r Record) {
		j.mu.Lock()
		j.records = append(j.records, r)
		j.mu.Unlock()
	}
}

// Records returns a snapshot of the records collected so far.
func (j *Journal) Records() []Record {
	j.mu.Lock()
	defer j.mu.Unlock()

	return append([]Record(nil), j.records...)
}

// Find returns the first record with the message.
func (j *Journal) Find(message string) (record Record, found bool) {
	for _, r := range j.Records() {
		if r.Message == message {
			return r, true
		}
	}

	return record, false
}
