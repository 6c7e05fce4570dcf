// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package wire implements the dogecoin wire protocol.

For the complete details of the dogecoin protocol, see the official wiki entry
at https://en.bitcoin.it/wiki/Protocol_specification.  The dogecoin protocol
is a superset of the bitcoin protocol: block headers and blocks of
merge-mined blocks carry an auxiliary proof of work on the wire, and the
proof of work digest is scrypt rather than sha256d.

# Dogecoin Message Overview

The dogecoin protocol consists of exchanging messages between peers.  Each
message is preceded by a header which identifies information about it such as
which dogecoin network it is a part of, its type, how big it is, and a
checksum to verify validity.  All encoding and decoding of message headers is
handled by this package.

To accomplish this, there is a generic interface for dogecoin messages named
Message which allows messages of any type to be read, written, or passed
around through channels, functions, etc.  In addition, concrete
implementations of most all dogecoin messages are provided.  All of the
details of marshalling and unmarshalling to and from the wire using dogecoin
encoding are handled so the caller doesn't have to concern themselves with
the specifics.

# Reading Messages

	n, msg, rawPayload, err := wire.ReadMessage(conn, pver, dogenet)

# Writing Messages

	n, err := wire.WriteMessage(conn, msg, pver, dogenet)

# Errors

Errors returned by this package are either the raw errors provided by
underlying calls to read/write from streams such as io.EOF, io.ErrUnexpectedEOF,
and io.ErrShortWrite, or of type wire.MessageError.  This allows the caller to
differentiate between general IO errors and malformed messages through type
assertions.
*/
package wire
