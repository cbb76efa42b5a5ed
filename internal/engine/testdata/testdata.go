// Package testdata embeds a sample chat log export for integration tests.
package testdata

import (
	"bytes"
	_ "embed"
	"io"
)

//go:embed sample.html
var sampleHTML []byte

// Sample returns a reader over the embedded sample transcript.
//
// After the start marker it holds six rolls and two narration lines:
// 探索者A has two successes and one critical, 探索者B one failure and one
// fumble, and KP no rolls at all.
func Sample() io.Reader {
	return bytes.NewReader(sampleHTML)
}

// SampleBytes returns a copy of the embedded sample transcript.
func SampleBytes() []byte {
	return bytes.Clone(sampleHTML)
}
