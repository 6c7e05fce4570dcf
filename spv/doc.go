// Copyright (c) 2016-2021 The Decred developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package spv implements a simplified payment verification client for
dogecoin.

The client maintains a persistent header chain obtained from a group of
peers, validating proof of work (including the merge-mined auxiliary proof
of work) for every connected header, and optionally downloads full blocks
newer than a caller-supplied timestamp so the caller can filter transactions
of interest.

The engine is single-threaded and cooperative: all peer I/O multiplexes onto
the goroutine that called Run, messages are processed to completion in
arrival order, and the callbacks fire on that same goroutine.  Callbacks
must not block.
*/
package spv
