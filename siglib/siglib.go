// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package siglib provides a library of reusable interface signatures
// for sigwire.
//
package siglib

import (
	"github.com/db47h/sigwire"
)

// Stream returns the signature of a unidirectional data stream with a
// ready/valid handshake, from the producer's point of view:
//
//	payload: out, the given shape
//	valid:   out 1
//	ready:   in 1
//
// A consumer declares Stream(...).Flip().
//
func Stream(payload sigwire.Shape) *sigwire.Signature {
	return sigwire.NewNamedSignature("Stream", map[string]sigwire.Member{
		"payload": sigwire.Out(payload),
		"valid":   sigwire.Out(1),
		"ready":   sigwire.In(1),
	})
}

// Bus returns the signature of a simple synchronous request bus, from
// the initiator's point of view:
//
//	addr:  out, addrWidth bits
//	wdata: out, dataWidth bits
//	we:    out 1
//	rdata: in, dataWidth bits
//
// A target declares Bus(...).Flip().
//
func Bus(addrWidth, dataWidth int) *sigwire.Signature {
	return sigwire.NewNamedSignature("Bus", map[string]sigwire.Member{
		"addr":  sigwire.Out(addrWidth),
		"wdata": sigwire.Out(dataWidth),
		"we":    sigwire.Out(1),
		"rdata": sigwire.In(dataWidth),
	})
}
