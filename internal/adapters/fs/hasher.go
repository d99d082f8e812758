package fs

import (
	"crypto/sha1" //nolint:gosec // Content addressing only, not a security boundary
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash"
	"io"
	"reflect"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/samber/lo"
	"go.trai.ch/stash/internal/core/domain"
	"go.trai.ch/stash/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes namespace and source digests with a configurable algorithm.
type Hasher struct {
	algo    domain.HashAlgorithm
	newHash func() hash.Hash
}

// NewHasher creates a Hasher for algo.
func NewHasher(algo domain.HashAlgorithm) (*Hasher, error) {
	h := &Hasher{algo: algo}
	switch algo {
	case domain.HashSHA1:
		h.newHash = sha1.New
	case domain.HashSHA256:
		h.newHash = sha256.New
	case domain.HashXXHash:
		h.newHash = func() hash.Hash { return xxhash.New() }
	default:
		return nil, zerr.With(domain.ErrInvalidHashAlgorithm, "hash", string(algo))
	}
	return h, nil
}

// Algorithm returns the configured hash algorithm.
func (h *Hasher) Algorithm() domain.HashAlgorithm {
	return h.algo
}

// New returns a fresh hash context.
func (h *Hasher) New() hash.Hash {
	return h.newHash()
}

// CanonicalDigest returns the hex digest of v, independent of map-key order.
func (h *Hasher) CanonicalDigest(v any) string {
	d := h.New()
	UpdateDigest(d, v)
	return hex.EncodeToString(d.Sum(nil))
}

// SourceDigest returns the hex digest of b.
func (h *Hasher) SourceDigest(b []byte) string {
	d := h.New()
	_, _ = d.Write(b)
	return hex.EncodeToString(d.Sum(nil))
}

// UpdateDigest feeds a deterministic byte sequence for v into w.
//
// Strings are quoted without escaping, sequences are emitted with a trailing
// separator after every element and maps are emitted in sorted key order. The
// encoding is not injective; it only has to be stable.
func UpdateDigest(w io.Writer, v any) {
	switch val := v.(type) {
	case nil:
		_, _ = io.WriteString(w, "null")
	case string:
		writeString(w, val)
	case bool:
		_, _ = io.WriteString(w, strconv.FormatBool(val))
	case int:
		_, _ = io.WriteString(w, strconv.Itoa(val))
	case int64:
		_, _ = io.WriteString(w, strconv.FormatInt(val, 10))
	case uint64:
		_, _ = io.WriteString(w, strconv.FormatUint(val, 10))
	case float64:
		_, _ = io.WriteString(w, formatFloat(val))
	case json.Number:
		_, _ = io.WriteString(w, val.String())
	case []any:
		_, _ = io.WriteString(w, "[")
		for _, item := range val {
			UpdateDigest(w, item)
			_, _ = io.WriteString(w, ",")
		}
		_, _ = io.WriteString(w, "]")
	case map[string]any:
		keys := lo.Keys(val)
		slices.Sort(keys)
		_, _ = io.WriteString(w, "{")
		for _, k := range keys {
			writeString(w, k)
			_, _ = io.WriteString(w, ":")
			UpdateDigest(w, val[k])
			_, _ = io.WriteString(w, ",")
		}
		_, _ = io.WriteString(w, "}")
	default:
		UpdateDigest(w, normalize(reflect.ValueOf(v)))
	}
}

func writeString(w io.Writer, s string) {
	_, _ = io.WriteString(w, `"`)
	_, _ = io.WriteString(w, s)
	_, _ = io.WriteString(w, `"`)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// normalize converts typed values into the kinds UpdateDigest handles directly.
func normalize(rv reflect.Value) any {
	switch rv.Kind() {
	case reflect.Invalid:
		return nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return normalize(rv.Elem())
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Slice:
		if rv.IsNil() {
			return nil
		}
		return normalizeSeq(rv)
	case reflect.Array:
		return normalizeSeq(rv)
	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = normalize(iter.Value())
		}
		return out
	case reflect.Struct:
		out := make(map[string]any, rv.NumField())
		rt := rv.Type()
		for i := range rt.NumField() {
			if field := rt.Field(i); field.IsExported() {
				out[field.Name] = normalize(rv.Field(i))
			}
		}
		return out
	default:
		return fmt.Sprintf("%v", rv.Interface())
	}
}

func normalizeSeq(rv reflect.Value) []any {
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = normalize(rv.Index(i))
	}
	return out
}
