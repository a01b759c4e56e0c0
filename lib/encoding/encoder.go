// Package encoding serializes default-data bags and instance snapshots with
// msgpack. Two modes are supported:
//   - Signed (default): base64 + HMAC signature, readable but tamper-proof
//   - Encrypted: AES-256-GCM, fully opaque
//
// The result is a URL-safe string that can be handed to another process and
// fed back into a type with NewWithData.
package encoding

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Sentinel errors returned by Decode.
var (
	ErrInvalidFormat    = errors.New("encoding: invalid snapshot format")
	ErrSignatureInvalid = errors.New("encoding: signature verification failed")
	ErrDecryptFailed    = errors.New("encoding: snapshot decryption failed")
)

// Snapshotter is implemented by values that can export their data as a
// detached record. *class.Instance implements it.
type Snapshotter interface {
	Snapshot() map[string]any
}

// Encoder encodes and decodes data bags.
type Encoder struct {
	key []byte
	gcm cipher.AEAD
}

// NewEncoder creates an encoder. Keys shorter than 32 bytes are stretched
// with SHA-256.
func NewEncoder(key []byte) (*Encoder, error) {
	if len(key) == 0 {
		return nil, errors.New("encoding: empty key")
	}
	if len(key) < 32 {
		h := sha256.Sum256(key)
		key = h[:]
	}

	block, err := aes.NewCipher(key[:32])
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Encoder{key: key, gcm: gcm}, nil
}

// Encode serializes data. If sensitive is true the payload is encrypted,
// otherwise it is signed.
func (e *Encoder) Encode(data map[string]any, sensitive bool) (string, error) {
	if data == nil {
		data = map[string]any{}
	}
	packed, err := msgpack.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encoding: marshal: %w", err)
	}
	if sensitive {
		return e.encrypt(packed)
	}
	return e.sign(packed), nil
}

// EncodeSnapshot encodes the snapshot of s.
func (e *Encoder) EncodeSnapshot(s Snapshotter, sensitive bool) (string, error) {
	return e.Encode(s.Snapshot(), sensitive)
}

// Decode reverses Encode. The sensitive flag must match the one used to
// encode.
func (e *Encoder) Decode(encoded string, sensitive bool) (map[string]any, error) {
	var packed []byte
	var err error
	if sensitive {
		packed, err = e.decrypt(encoded)
	} else {
		packed, err = e.verify(encoded)
	}
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if err := msgpack.Unmarshal(packed, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if data == nil {
		data = map[string]any{}
	}
	return normalize(data), nil
}

// normalize widens msgpack's compact number decoding so that decoded data
// compares equal regardless of the encoded width. Integers become int64,
// except uint64 values above math.MaxInt64, and float32 becomes float64.
func normalize(data map[string]any) map[string]any {
	for k, v := range data {
		data[k] = normalizeValue(v)
	}
	return data
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return normalize(val)
	case []any:
		for i, item := range val {
			val[i] = normalizeValue(item)
		}
		return val
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case uint64:
		if val > math.MaxInt64 {
			return val
		}
		return int64(val)
	case int:
		return int64(val)
	case uint:
		if uint64(val) > math.MaxInt64 {
			return uint64(val)
		}
		return int64(val)
	case float32:
		return float64(val)
	default:
		return v
	}
}

// sign produces base64(data).base64(hmac[:16]).
func (e *Encoder) sign(data []byte) string {
	b64 := base64.RawURLEncoding.EncodeToString(data)
	mac := hmac.New(sha256.New, e.key)
	mac.Write(data)
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil)[:16])
	return b64 + "." + sig
}

func (e *Encoder) verify(encoded string) ([]byte, error) {
	parts := strings.SplitN(encoded, ".", 2)
	if len(parts) != 2 {
		return nil, ErrInvalidFormat
	}

	data, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, ErrInvalidFormat
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, ErrSignatureInvalid
	}

	mac := hmac.New(sha256.New, e.key)
	mac.Write(data)
	if !hmac.Equal(sig, mac.Sum(nil)[:16]) {
		return nil, ErrSignatureInvalid
	}
	return data, nil
}

func (e *Encoder) encrypt(data []byte) (string, error) {
	nonce := make([]byte, e.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := e.gcm.Seal(nonce, nonce, data, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (e *Encoder) decrypt(encoded string) ([]byte, error) {
	sealed, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	if len(sealed) < e.gcm.NonceSize() {
		return nil, ErrDecryptFailed
	}
	nonce, ciphertext := sealed[:e.gcm.NonceSize()], sealed[e.gcm.NonceSize():]
	plain, err := e.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return plain, nil
}
