package txscript

import (
	"crypto/sha256"

	"github.com/btcsuite/btcd/btcec"
)

// VerificationContext is the capability the evaluator consults for
// signature and time-lock opcodes so that the core never needs to know
// about transactions, UTXOs or block heights. Callers that only care about
// the pure stack semantics can pass NopVerificationContext{}.
type VerificationContext interface {
	// CheckSig reports whether sig is a valid signature by the key
	// pubKey over whatever message the caller's transaction layer
	// derives. The core never computes a sighash itself.
	CheckSig(pubKey, sig []byte) (bool, error)

	// CheckLockTime reports whether the script's enclosing transaction
	// satisfies an absolute locktime of at least n.
	CheckLockTime(n int64) (bool, error)

	// CheckSequence reports whether the input being spent satisfies a
	// relative locktime of at least n.
	CheckSequence(n int64) (bool, error)
}

// NopVerificationContext is the strict default: every signature or
// timelock opcode fails closed with BadOpcode, since there is no context
// available to evaluate them against. Use this when interpreting a script
// in isolation, e.g. for static analysis or the codec/decoder property
// tests.
type NopVerificationContext struct{}

func (NopVerificationContext) CheckSig(pubKey, sig []byte) (bool, error) {
	return false, newScriptError(ErrBadOpcode, "no verification context: OP_CHECKSIG cannot be evaluated")
}

func (NopVerificationContext) CheckLockTime(n int64) (bool, error) {
	return false, newScriptError(ErrBadOpcode, "no verification context: OP_CHECKLOCKTIMEVERIFY cannot be evaluated")
}

func (NopVerificationContext) CheckSequence(n int64) (bool, error) {
	return false, newScriptError(ErrBadOpcode, "no verification context: OP_CHECKSEQUENCEVERIFY cannot be evaluated")
}

// PermissiveVerificationContext treats OP_CHECKLOCKTIMEVERIFY and
// OP_CHECKSEQUENCEVERIFY as plain no-ops and every signature check as
// succeeding unconditionally. It exists for test fixtures and for
// callers that have already verified signatures out of band and only want
// the stack-machine semantics re-checked.
type PermissiveVerificationContext struct{}

func (PermissiveVerificationContext) CheckSig(pubKey, sig []byte) (bool, error) {
	return true, nil
}

func (PermissiveVerificationContext) CheckLockTime(n int64) (bool, error) {
	return true, nil
}

func (PermissiveVerificationContext) CheckSequence(n int64) (bool, error) {
	return true, nil
}

// Secp256k1VerificationContext performs real ECDSA verification over a
// caller-supplied sighash, using the same curve and signature parsing
// Bitcoin transactions use. It refuses locktime opcodes (CheckLockTime and
// CheckSequence) unless a transaction layer wraps it with its own height
// and sequence bookkeeping; embed it in a richer context to support those.
type Secp256k1VerificationContext struct {
	// SigHash is the 32-byte message the signature is expected to cover.
	// Computing it (which requires the spending transaction, the input
	// index and the sighash type) is explicitly outside this package's
	// scope; the caller supplies it.
	SigHash [32]byte
}

func (c Secp256k1VerificationContext) CheckSig(pubKey, sig []byte) (bool, error) {
	if len(sig) == 0 || len(pubKey) == 0 {
		return false, nil
	}
	key, err := btcec.ParsePubKey(pubKey, btcec.S256())
	if err != nil {
		return false, nil
	}
	parsedSig, err := btcec.ParseDERSignature(stripHashType(sig), btcec.S256())
	if err != nil {
		return false, nil
	}
	return parsedSig.Verify(c.SigHash[:], key), nil
}

func (c Secp256k1VerificationContext) CheckLockTime(n int64) (bool, error) {
	return false, newScriptError(ErrBadOpcode, "Secp256k1VerificationContext does not track locktime state")
}

func (c Secp256k1VerificationContext) CheckSequence(n int64) (bool, error) {
	return false, newScriptError(ErrBadOpcode, "Secp256k1VerificationContext does not track sequence state")
}

// stripHashType drops the trailing sighash-type byte DER-encoded Bitcoin
// signatures carry, which is not part of the ASN.1 signature itself.
func stripHashType(sig []byte) []byte {
	if len(sig) == 0 {
		return sig
	}
	return sig[:len(sig)-1]
}

// hash256 computes Bitcoin's double-SHA256, used by OP_HASH256 and
// available here so a richer VerificationContext can compute sighashes
// consistently with the rest of the corpus.
func hash256(b []byte) [32]byte {
	first := sha256.Sum256(b)
	return sha256.Sum256(first[:])
}
