package checker

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/barryzzz/speller/common/charset"
	"github.com/barryzzz/speller/component/trie"
	C "github.com/barryzzz/speller/constant"
	"github.com/barryzzz/speller/log"
)

var ErrEmptyPath = errors.New("empty file path")

// Counter tallies the entries of one input.
type Counter struct {
	Correct   int `json:"correct"`
	Filtered  int `json:"filtered"`
	Incorrect int `json:"incorrect"`
}

func (c *Counter) Add(other Counter) {
	c.Correct += other.Correct
	c.Filtered += other.Filtered
	c.Incorrect += other.Incorrect
}

// Misspelling is a text token that is not in the dictionary.
type Misspelling struct {
	Word string `json:"word"`
	Line int    `json:"line"`
}

type Options struct {
	CommentPrefix string
}

func (o Options) prefix() string {
	if o.CommentPrefix == "" {
		return C.DefaultCommentPrefix
	}
	return o.CommentPrefix
}

// ShouldSkipLine reports whether a dictionary or filter line carries no entry.
func ShouldSkipLine(line, commentPrefix string) bool {
	return line == "" || (commentPrefix != "" && strings.HasPrefix(line, commentPrefix))
}

type decodedFile struct {
	io.Reader
	io.Closer
}

// Open opens path for reading, decoding it from the given encoding.
func Open(path, encoding string) (io.ReadCloser, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("file couldn't be opened: %s: %w", path, err)
	}

	r, err := charset.NewReader(f, encoding)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &decodedFile{Reader: r, Closer: f}, nil
}

// eachLine calls fn for every line of r without its line terminator.
// Lines may be of any length.
func eachLine(r io.Reader, fn func(text string)) error {
	br := bufio.NewReader(r)
	for {
		text, err := br.ReadString('\n')
		if len(text) > 0 {
			fn(strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r"))
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// eachEntry calls fn for every non-skipped line. Entries are numbered from 1,
// skipped lines do not advance the number.
func eachEntry(r io.Reader, opts Options, fn func(entry string, row int)) error {
	row := 0
	return eachLine(r, func(entry string) {
		if ShouldSkipLine(entry, opts.prefix()) {
			return
		}
		row++
		fn(entry, row)
	})
}

// ReadDictionary inserts every valid line of r into d.
func ReadDictionary(d *trie.Dictionary, r io.Reader, opts Options) (Counter, error) {
	counter := Counter{}
	err := eachEntry(r, opts, func(entry string, row int) {
		if err := d.Insert(entry); err != nil {
			counter.Incorrect++
			log.Warnln("incorrect entry %q on line %d", entry, row)
			return
		}
		counter.Correct++
	})
	return counter, err
}

// FilterDictionary erases every valid line of r from d. An entry counts as
// filtered only when it was actually removed.
func FilterDictionary(d *trie.Dictionary, r io.Reader, opts Options) (Counter, error) {
	counter := Counter{}
	err := eachEntry(r, opts, func(entry string, row int) {
		if !trie.IsCorrectWord(entry) {
			counter.Incorrect++
			log.Warnln("incorrect entry %q on line %d", entry, row)
			return
		}

		size := d.Size()
		d.Erase(entry)
		if d.Size() < size {
			counter.Filtered++
		}
		counter.Correct++
	})
	return counter, err
}

// VerifyText checks every whitespace separated token of r against d.
// d is only read, so several texts may be verified at once.
func VerifyText(d *trie.Dictionary, r io.Reader) (Counter, []Misspelling, error) {
	counter := Counter{}
	misspellings := []Misspelling{}

	line := 0
	err := eachLine(r, func(text string) {
		line++
		for _, word := range strings.Fields(text) {
			if !d.Contains(word) {
				counter.Incorrect++
				misspellings = append(misspellings, Misspelling{Word: word, Line: line})
				log.Warnln("SPELLING ERROR: %s on line %d", word, line)
				continue
			}
			counter.Correct++
		}
	})

	return counter, misspellings, err
}
