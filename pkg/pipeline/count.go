package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/observability"
	"github.com/matzehuels/tagcloud/pkg/words"
)

// CountResult is the output of the count stage.
type CountResult struct {
	// Top holds the Count most frequent words, most frequent first.
	Top []words.Entry
	// Distinct is the number of different words after stop-word removal.
	Distinct int
	// Total is the number of counted word occurrences.
	Total int
}

// Count tokenizes opts.Text and ranks the words. It fails with EMPTY_CLOUD
// when nothing is left to draw.
func Count(ctx context.Context, opts Options) (*CountResult, error) {
	if err := opts.ValidateForCount(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnCountStart(ctx, len(opts.Text))
	start := time.Now()

	freq := words.Count(words.Tokenize(opts.Text), opts.Excluder(), opts.MinLength)
	res := &CountResult{
		Top:      freq.Top(opts.Count),
		Distinct: len(freq),
		Total:    freq.Total(),
	}

	var err error
	if len(res.Top) == 0 {
		err = errors.New(errors.ErrCodeEmptyCloud, "no words left to draw after removing stop words")
	}
	hooks.OnCountComplete(ctx, res.Distinct, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("counted words", "distinct", res.Distinct, "total", res.Total, "kept", len(res.Top))
	return res, nil
}
