/*
Package broadcast provides a change sink which publishes the changes of a
flattree to any number of asynchronous subscribers.

A tree notifies its sink synchronously from within every mutating call.
Clients which want to react to changes on other goroutines (e.g., a view
re-rendering in the background) subscribe to a broadcast Sink and receive
the changes on a channel, in the order they happened.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package broadcast

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'flattree'
func tracer() tracing.Trace {
	return tracing.Select("flattree")
}
