// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package hdkeychain provides an API for dogecoin hierarchical deterministic
extended keys (BIP0032) and the BIP0044 multi-account hierarchy built on top
of them.

# Overview

The ability to implement hierarchical deterministic wallets depends on the
ability to create and derive hierarchical deterministic extended keys.

At a high level, this package provides support for those hierarchical
deterministic extended keys by providing an ExtendedKey type and supporting
functions.  Each extended key can either be a private or public extended key
which itself is capable of deriving a child extended key.

# The Master Node

As previously mentioned, the extended keys are hierarchical, meaning child
extended keys are derived from parent extended keys.  The initial parent of
all extended keys is known as the master node and this package provides the
NewMaster function to derive it from a cryptographically random seed.  The
GenerateSeed function is provided as a convenient way to create a random seed
for use with the NewMaster function.
*/
package hdkeychain
