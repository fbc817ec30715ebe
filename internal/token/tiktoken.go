package token

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Encoding is the BPE vocabulary used for batch sizing.
const Encoding = "cl100k_base"

// Tiktoken counts tokens with a real subword vocabulary.
type Tiktoken struct {
	enc *tiktoken.Tiktoken
}

// NewTiktoken loads the encoding. This can fail on a machine with no cached
// vocabulary and no network access.
func NewTiktoken() (*Tiktoken, error) {
	enc, err := tiktoken.GetEncoding(Encoding)
	if err != nil {
		return nil, fmt.Errorf("load %s encoding: %w", Encoding, err)
	}
	return &Tiktoken{enc: enc}, nil
}

func (t *Tiktoken) Count(text string) int {
	return len(t.enc.Encode(text, nil, nil))
}
