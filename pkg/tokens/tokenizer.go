// Package tokens estimates how many model tokens a text payload costs.
package tokens

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	encoderCache   = make(map[string]*tiktoken.Tiktoken)
	encoderCacheMu sync.RWMutex
)

// Encoder returns a cached tiktoken encoder for the given model
func Encoder(model string) (*tiktoken.Tiktoken, error) {
	encoderCacheMu.RLock()
	if enc, ok := encoderCache[model]; ok {
		encoderCacheMu.RUnlock()
		return enc, nil
	}
	encoderCacheMu.RUnlock()

	encoderCacheMu.Lock()
	defer encoderCacheMu.Unlock()

	// Double-check after acquiring write lock
	if enc, ok := encoderCache[model]; ok {
		return enc, nil
	}

	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		// Fall back to cl100k_base for unknown models (GPT-4 family)
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, err
		}
	}

	encoderCache[model] = enc
	return enc, nil
}

// Estimate counts the tokens in a single text payload
func Estimate(text, model string) (int, error) {
	enc, err := Encoder(model)
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}
