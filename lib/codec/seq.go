// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import "iter"

// ReadSeq reads a sequence length prefix and returns a lazy iterator
// over the elements. Elements are decoded one at a time as the
// iterator is consumed, so a caller can stop on the first error (or
// any other condition) without materializing or even decoding the
// rest.
//
// The sequence is finite and not restartable: it is backed by the
// deserializer's stream position, so it must be consumed at most once,
// and abandoning it mid-way leaves the remaining element bytes
// unconsumed. After an element fails to decode the iterator yields
// that one error and stops.
func ReadSeq[T any](d Deserializer, read func(Deserializer) (T, error)) (iter.Seq2[T, error], error) {
	length, err := d.ReadLen()
	if err != nil {
		return nil, err
	}
	return func(yield func(T, error) bool) {
		for i := 0; i < length; i++ {
			v, err := read(d)
			if !yield(v, err) {
				return
			}
			if err != nil {
				return
			}
		}
	}, nil
}
