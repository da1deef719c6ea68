package identity

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// returned when the provider key has no registered normalizer variant
var ErrUnsupportedProvider = errors.New("unsupported oauth provider")

// MissingFieldError reports a payload that lacks a field the provider's
// variant declares mandatory. Which fields are mandatory is the variant's
// decision, not the caller's.
type MissingFieldError struct {
	Provider Provider
	Field    string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s payload missing required field %q", e.Provider, e.Field)
}

// Normalizer maps one provider's raw userinfo payload to a CanonicalIdentity
type Normalizer interface {
	Provider() Provider
	Normalize(payload map[string]any) (CanonicalIdentity, error)
}

// Registry dispatches normalization by provider key. Adding a provider means
// registering a new variant; the dispatch logic never changes.
type Registry struct {
	variants map[Provider]Normalizer
}

func NewRegistry(variants ...Normalizer) *Registry {
	r := &Registry{variants: make(map[Provider]Normalizer, len(variants))}
	for _, v := range variants {
		r.variants[v.Provider()] = v
	}
	return r
}

// registers a variant, replacing any previous one for the same provider
func (r *Registry) Register(v Normalizer) {
	r.variants[v.Provider()] = v
}

// maps a raw provider payload to a CanonicalIdentity. Safe to call with
// arbitrary malformed maps: unexpected shapes surface as ErrUnsupportedProvider
// or MissingFieldError, never as a panic.
func (r *Registry) Normalize(provider Provider, payload map[string]any) (CanonicalIdentity, error) {
	v, ok := r.variants[provider]
	if !ok {
		return CanonicalIdentity{}, fmt.Errorf("%w: %q", ErrUnsupportedProvider, provider)
	}

	return v.Normalize(payload)
}

// the registry used by the login flow; covers every provider bottlen federates with
func DefaultRegistry() *Registry {
	return NewRegistry(
		googleNormalizer{},
		naverNormalizer{},
		kakaoNormalizer{},
	)
}

// extracts a non-empty string value, stringifying the numeric IDs some
// providers return (kakao sends id as a JSON number)
func stringField(m map[string]any, key string) (string, bool) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return "", false
	}

	switch v := raw.(type) {
	case string:
		return v, v != ""
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10), true
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int:
		return strconv.Itoa(v), true
	default:
		return "", false
	}
}

// extracts a nested object field
func mapField(m map[string]any, key string) (map[string]any, bool) {
	raw, ok := m[key]
	if !ok {
		return nil, false
	}

	sub, ok := raw.(map[string]any)
	return sub, ok
}
