// Package signature decodes the PGPSIG field of a package for display. It
// does not verify signatures.
package signature

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp/packet"
)

// Info describes a detached OpenPGP signature
type Info struct {
	IssuerKeyID       string
	IssuerFingerprint string
	Created           time.Time
	PublicKeyAlgo     string
	Hash              string
}

// String returns a one line summary of the signature
func (i *Info) String() string {
	return fmt.Sprintf("%s/%s key %s, created %s", i.PublicKeyAlgo, i.Hash, i.IssuerKeyID, i.Created.UTC().Format(time.RFC3339))
}

// Inspect decodes a base64 encoded OpenPGP signature packet
func Inspect(encoded string) (*Info, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to decode signature: %w", err)
	}

	p, err := packet.Read(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to read signature packet: %w", err)
	}

	sig, ok := p.(*packet.Signature)
	if !ok {
		return nil, fmt.Errorf("unexpected packet type %T", p)
	}

	info := &Info{
		Created:       sig.CreationTime,
		PublicKeyAlgo: algorithmName(sig.PubKeyAlgo),
		Hash:          sig.Hash.String(),
	}
	if sig.IssuerKeyId != nil {
		info.IssuerKeyID = fmt.Sprintf("%016X", *sig.IssuerKeyId)
	}
	if len(sig.IssuerFingerprint) > 0 {
		info.IssuerFingerprint = strings.ToUpper(hex.EncodeToString(sig.IssuerFingerprint))
	}

	return info, nil
}

func algorithmName(algo packet.PublicKeyAlgorithm) string {
	switch algo {
	case packet.PubKeyAlgoRSA, packet.PubKeyAlgoRSASignOnly:
		return "RSA"
	case packet.PubKeyAlgoDSA:
		return "DSA"
	case packet.PubKeyAlgoECDSA:
		return "ECDSA"
	case packet.PubKeyAlgoEdDSA:
		return "EdDSA"
	default:
		return fmt.Sprintf("algorithm %d", algo)
	}
}
