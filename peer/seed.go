// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"math/rand"
	"net"
	"time"

	"github.com/dogesuite/doged/chaincfg"
)

// maxSeededAddrs is the maximum number of addresses taken from DNS seeding
// in one pass.
const maxSeededAddrs = 64

// LookupFunc resolves a hostname to IP addresses.  It matches the shape of
// net.LookupIP so tests can substitute a fixed resolver.
type LookupFunc func(host string) ([]net.IP, error)

// SeedFromDNS resolves the DNS seeds of the given network, shuffles the
// results, and returns up to maxSeededAddrs dial addresses using the
// network's default port.  Seeds that fail to resolve are skipped.
func SeedFromDNS(params *chaincfg.Params, lookup LookupFunc) []string {
	if lookup == nil {
		lookup = net.LookupIP
	}

	var ips []net.IP
	for _, seed := range params.DNSSeeds {
		seedIPs, err := lookup(seed.Host)
		if err != nil {
			log.Debugf("DNS seed %s failed: %v", seed.Host, err)
			continue
		}
		log.Debugf("DNS seed %s returned %d addresses", seed.Host,
			len(seedIPs))
		ips = append(ips, seedIPs...)
	}

	// Shuffle so the group does not hammer whichever seed answered first.
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	rng.Shuffle(len(ips), func(i, j int) {
		ips[i], ips[j] = ips[j], ips[i]
	})

	if len(ips) > maxSeededAddrs {
		ips = ips[:maxSeededAddrs]
	}

	addrs := make([]string, 0, len(ips))
	for _, ip := range ips {
		addrs = append(addrs, net.JoinHostPort(ip.String(),
			params.DefaultPort))
	}
	return addrs
}
