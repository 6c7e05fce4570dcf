// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"
	"net"
	"time"
)

// maxNetAddressPayload returns the max payload size for a dogecoin
// NetAddress based on the protocol version.
func maxNetAddressPayload(pver uint32) uint32 {
	// Services 8 bytes + ip 16 bytes + port 2 bytes.
	plen := uint32(26)

	// NetAddressTimeVersion added a timestamp field.
	if pver >= NetAddressTimeVersion {
		// Timestamp 4 bytes.
		plen += 4
	}

	return plen
}

// NetAddress defines information about a peer on the network including the
// time it was last seen, the services it supports, its IP address, and port.
type NetAddress struct {
	// Last time the address was seen.  This is, unfortunately, encoded as a
	// uint32 on the wire and therefore is limited to 2106.  This field is
	// not present in the dogecoin version message (MsgVersion) nor was it
	// added until protocol version >= NetAddressTimeVersion.
	Timestamp time.Time

	// Bitfield which identifies the services supported by the address.
	Services ServiceFlag

	// IP address of the peer.
	IP net.IP

	// Port the peer is using.  This is encoded in big endian on the wire
	// which differs from most everything else.
	Port uint16
}

// HasService returns whether the specified service is supported by the
// address.
func (na *NetAddress) HasService(service ServiceFlag) bool {
	return na.Services&service == service
}

// NewNetAddress returns a new NetAddress using the provided TCP address and
// supported services with defaults for the remaining fields.
func NewNetAddress(addr *net.TCPAddr, services ServiceFlag) *NetAddress {
	return &NetAddress{
		Timestamp: time.Unix(time.Now().Unix(), 0),
		Services:  services,
		IP:        addr.IP,
		Port:      uint16(addr.Port),
	}
}

// readNetAddress reads an encoded NetAddress from r depending on the protocol
// version and whether or not the timestamp is included per ts.  Some messages
// like version do not include the timestamp.
func readNetAddress(r io.Reader, pver uint32, na *NetAddress, ts bool) error {
	var ip [16]byte
	var buf [8]byte

	if ts && pver >= NetAddressTimeVersion {
		if _, err := io.ReadFull(r, buf[:4]); err != nil {
			return err
		}
		na.Timestamp = time.Unix(int64(littleEndian.Uint32(buf[:4])), 0)
	}

	if err := readElement(r, &na.Services); err != nil {
		return err
	}
	if _, err := io.ReadFull(r, ip[:]); err != nil {
		return err
	}
	// Sigh.  Dogecoin protocol mixes little and big endian.
	if _, err := io.ReadFull(r, buf[:2]); err != nil {
		return err
	}

	na.IP = net.IP(ip[:])
	na.Port = bigEndian.Uint16(buf[:2])
	return nil
}

// writeNetAddress serializes a NetAddress to w depending on the protocol
// version and whether or not the timestamp is included per ts.  Some messages
// like version do not include the timestamp.
func writeNetAddress(w io.Writer, pver uint32, na *NetAddress, ts bool) error {
	var buf [8]byte

	if ts && pver >= NetAddressTimeVersion {
		littleEndian.PutUint32(buf[:4], uint32(na.Timestamp.Unix()))
		if _, err := w.Write(buf[:4]); err != nil {
			return err
		}
	}

	// Ensure to always write 16 bytes even if the ip is nil.
	var ip [16]byte
	if na.IP != nil {
		copy(ip[:], na.IP.To16())
	}

	if err := writeElement(w, na.Services); err != nil {
		return err
	}
	if _, err := w.Write(ip[:]); err != nil {
		return err
	}

	// Sigh.  Dogecoin protocol mixes little and big endian.
	bigEndian.PutUint16(buf[:2], na.Port)
	_, err := w.Write(buf[:2])
	return err
}
