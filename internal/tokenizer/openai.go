package tokenizer

import (
	"errors"

	"github.com/pkoukk/tiktoken-go"
)

// errNilEncoding is returned by an openAICounter built without an encoding.
var errNilEncoding = errors.New("nil tiktoken encoder")

// openAICounter counts tokens of a generated document with a tiktoken BPE
// encoding. name is the model or encoding reported next to the count.
type openAICounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func (counter openAICounter) Name() string {
	return counter.name
}

// CountString returns the number of tokens in input. No special tokens are
// allowed, so every substring is encoded as ordinary text.
func (counter openAICounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errNilEncoding
	}
	return len(counter.encoding.Encode(input, nil, nil)), nil
}
