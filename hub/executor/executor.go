package executor

import (
	"context"
	"io"

	"github.com/barryzzz/speller/checker"
	"github.com/barryzzz/speller/common/batch"
	"github.com/barryzzz/speller/component/trie"
	"github.com/barryzzz/speller/config"
	"github.com/barryzzz/speller/log"

	"go.uber.org/atomic"
)

// Run loads the dictionary, applies the filter and verifies every text.
// Texts are verified concurrently once the dictionary stops changing.
func Run(ctx context.Context, cfg *config.Input) (*trie.Dictionary, *checker.Statistics, error) {
	d := trie.New()
	stats := &checker.Statistics{}
	opts := checker.Options{CommentPrefix: cfg.CommentPrefix}

	log.Infoln("Loading dictionary from %s...", cfg.Dictionary)
	counter, err := withFile(cfg.Dictionary, cfg.Encoding, func(r io.Reader) (checker.Counter, error) {
		return checker.ReadDictionary(d, r, opts)
	})
	if err != nil {
		return nil, nil, err
	}
	stats.Dictionary = counter

	if cfg.Filter != "" {
		log.Infoln("Removing the words listed at %s...", cfg.Filter)
		counter, err = withFile(cfg.Filter, cfg.Encoding, func(r io.Reader) (checker.Counter, error) {
			return checker.FilterDictionary(d, r, opts)
		})
		if err != nil {
			return nil, nil, err
		}
		stats.Filter = counter
	}

	reports, err := verifyAll(ctx, d, cfg)
	if err != nil {
		return nil, nil, err
	}
	for _, report := range reports {
		stats.Text.Add(report.Counter)
	}
	stats.Reports = reports
	stats.Size = d.Size()

	return d, stats, nil
}

func verifyAll(ctx context.Context, d *trie.Dictionary, cfg *config.Input) ([]*checker.Report, error) {
	if len(cfg.Texts) == 0 {
		return nil, nil
	}

	b, _ := batch.New(ctx, batch.WithConcurrencyNum(cfg.Concurrency))
	misspelled := atomic.NewInt64(0)

	for _, path := range cfg.Texts {
		path := path
		b.Go(path, func(ctx context.Context) (interface{}, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			log.Infoln("Verifying the contents of %s...", path)
			var misspellings []checker.Misspelling
			counter, err := withFile(path, cfg.Encoding, func(r io.Reader) (checker.Counter, error) {
				counter, m, err := checker.VerifyText(d, r)
				misspellings = m
				return counter, err
			})
			if err != nil {
				return nil, err
			}

			misspelled.Add(int64(counter.Incorrect))
			return checker.NewReport(path, counter, misspellings), nil
		})
	}

	result, bErr := b.WaitAndGetResult()
	if bErr != nil {
		return nil, bErr
	}

	reports := make([]*checker.Report, 0, len(result))
	for _, path := range b.Keys() {
		reports = append(reports, result[path].Value.(*checker.Report))
	}
	log.Debugln("verified %d texts, %d misspelled words", len(reports), misspelled.Load())
	return reports, nil
}

func withFile(path, encoding string, fn func(r io.Reader) (checker.Counter, error)) (checker.Counter, error) {
	f, err := checker.Open(path, encoding)
	if err != nil {
		return checker.Counter{}, err
	}
	defer f.Close()

	return fn(f)
}
