package checker

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid"
)

// Report is the outcome of verifying one text.
type Report struct {
	UUID         uuid.UUID     `json:"id"`
	Source       string        `json:"source"`
	Counter      Counter       `json:"counter"`
	Misspellings []Misspelling `json:"misspellings"`
	Start        time.Time     `json:"start"`
}

func (r *Report) ID() string {
	return r.UUID.String()
}

func NewReport(source string, counter Counter, misspellings []Misspelling) *Report {
	id, _ := uuid.NewV4()
	return &Report{
		UUID:         id,
		Source:       source,
		Counter:      counter,
		Misspellings: misspellings,
		Start:        time.Now(),
	}
}

// Statistics summarises a whole run.
type Statistics struct {
	Dictionary Counter   `json:"dictionary"`
	Filter     Counter   `json:"filter"`
	Text       Counter   `json:"text"`
	Size       int       `json:"size"`
	Reports    []*Report `json:"reports,omitempty"`
}

func (s *Statistics) String() string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "Statistics: \n")
	fmt.Fprintf(b, "\tDictionary entries: %d correct, %d incorrect\n", s.Dictionary.Correct, s.Dictionary.Incorrect)
	fmt.Fprintf(b, "\tFilter entries: %d correct, %d incorrect\n", s.Filter.Correct, s.Filter.Incorrect)
	fmt.Fprintf(b, "\tCount of filtered entries: %d\n", s.Filter.Filtered)
	fmt.Fprintf(b, "Resultant dictionary: %d\n", s.Size)
	fmt.Fprintf(b, "\tWords in text: %d correct, %d incorrect\n", s.Text.Correct, s.Text.Incorrect)
	return b.String()
}
