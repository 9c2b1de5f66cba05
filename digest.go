package fst

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/minio/blake2b-simd"
)

// Digest returns a content hash of f's encoded form, suitable as a cache
// key or a content-addressed blob name. It is not part of the wire
// format Write/Read exchange and is never read back by Read; two FSTs
// built from the same pairs always produce the same digest, since
// Write's output is a deterministic function of the compiled program.
// Grounded on the teacher's use of blake2b-simd in store.go to derive
// content-addressed link names for persisted tree nodes.
func (f *FST) Digest() (string, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return "", fmt.Errorf("fst: digest: %w", err)
	}
	sum := blake2b.Sum256(buf.Bytes())
	return base64.RawURLEncoding.EncodeToString(sum[:]), nil
}
