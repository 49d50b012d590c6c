package docnorm

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// tokenEncoding is the BPE encoding used for all token counting.
const tokenEncoding = "cl100k_base"

// TokenCounter abstracts token counting so callers can swap tokenizers.
type TokenCounter interface {
	CountTokens(text string) (int, error)
}

// TiktokenCounter counts tokens with the cl100k_base BPE encoding. The
// encoding is loaded lazily on first use and reused afterwards; the counter
// is safe for concurrent use.
type TiktokenCounter struct {
	once sync.Once
	enc  *tiktoken.Tiktoken
	err  error
}

// NewTiktokenCounter creates a TiktokenCounter. Loading the encoding is
// deferred until the first CountTokens call.
func NewTiktokenCounter() *TiktokenCounter {
	return &TiktokenCounter{}
}

// CountTokens returns the number of tokens in the text.
func (c *TiktokenCounter) CountTokens(text string) (int, error) {
	if !utf8.ValidString(text) {
		return 0, ErrInvalidInput
	}

	c.once.Do(func() {
		enc, err := tiktoken.GetEncoding(tokenEncoding)
		if err != nil {
			c.err = fmt.Errorf("%w: %v", ErrTokenCount, err)
			return
		}
		c.enc = enc
	})
	if c.err != nil {
		return 0, c.err
	}

	return len(c.enc.Encode(text, nil, nil)), nil
}
