// Copyright (c) 2015-2016 The Decred developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package peer provides outbound dogecoin peer connections and a fixed-size
connection pool.

A Peer wraps one TCP connection: it frames and decodes wire messages, runs
the version/verack handshake, and answers keep-alive pings.  Decoded
messages, completed dials, and failures are all delivered as Events on the
owning Group's channel, so every piece of protocol state is mutated from the
single goroutine that drains that channel.  Only the dial, read, and write
loops run concurrently, and they touch nothing but the socket.

A Group maintains a target number of outbound peers fed from a pool of
addresses discovered via the network's DNS seeds or supplied by the caller.
Failed addresses accumulate a score and are eventually retired.
*/
package peer
