package identity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Google(t *testing.T) {
	payload := map[string]any{
		"sub":   "108204567890123456789",
		"email": "dev@gmail.com",
		"name":  "Dev Kim",
		"phone": "+82 10-1234-5678",
	}

	got, err := DefaultRegistry().Normalize(ProviderGoogle, payload)

	require.NoError(t, err)
	assert.Equal(t, ProviderGoogle, got.Provider)
	assert.Equal(t, "108204567890123456789", got.ProviderID)
	assert.Equal(t, "dev@gmail.com", got.Email)
	assert.Equal(t, "Dev Kim", got.DisplayName)
	assert.Equal(t, "+82 10-1234-5678", got.PhoneNumber)
	assert.Equal(t, "google:108204567890123456789", got.GlobalID())
}

func TestNormalize_Naver(t *testing.T) {
	payload := map[string]any{
		"resultcode": "00",
		"message":    "success",
		"response": map[string]any{
			"id":    "naver-abc-123",
			"email": "dev@naver.com",
			"name":  "김개발",
			"phone": "010-1234-5678",
		},
	}

	got, err := DefaultRegistry().Normalize(ProviderNaver, payload)

	require.NoError(t, err)
	assert.Equal(t, ProviderNaver, got.Provider)
	assert.Equal(t, "naver-abc-123", got.ProviderID)
	assert.Equal(t, "dev@naver.com", got.Email)
	assert.Equal(t, "김개발", got.DisplayName)
}

func TestNormalize_Kakao(t *testing.T) {
	// kakao sends id as a JSON number
	payload := map[string]any{
		"id": float64(2501234567),
		"kakao_account": map[string]any{
			"email":        "dev@kakao.com",
			"phone_number": "+82 10-9876-5432",
			"profile": map[string]any{
				"nickname": "devkim",
			},
		},
	}

	got, err := DefaultRegistry().Normalize(ProviderKakao, payload)

	require.NoError(t, err)
	assert.Equal(t, ProviderKakao, got.Provider)
	assert.Equal(t, "2501234567", got.ProviderID)
	assert.Equal(t, "dev@kakao.com", got.Email)
	assert.Equal(t, "devkim", got.DisplayName)
	assert.Equal(t, "+82 10-9876-5432", got.PhoneNumber)
}

func TestNormalize_KakaoWithoutProfile(t *testing.T) {
	payload := map[string]any{
		"id": float64(99),
		"kakao_account": map[string]any{
			"email": "noprofile@kakao.com",
		},
	}

	got, err := DefaultRegistry().Normalize(ProviderKakao, payload)

	require.NoError(t, err)
	assert.Empty(t, got.DisplayName, "nickname is optional")
	assert.Empty(t, got.PhoneNumber, "phone is optional")
}

func TestNormalize_UnsupportedProvider(t *testing.T) {
	_, err := DefaultRegistry().Normalize("facebook", map[string]any{"id": "1"})

	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}

func TestNormalize_MissingEmail(t *testing.T) {
	cases := []struct {
		name     string
		provider Provider
		payload  map[string]any
	}{
		{
			name:     "google without email",
			provider: ProviderGoogle,
			payload:  map[string]any{"sub": "123", "name": "x"},
		},
		{
			name:     "naver without email",
			provider: ProviderNaver,
			payload: map[string]any{
				"response": map[string]any{"id": "n-1", "name": "x"},
			},
		},
		{
			name:     "kakao without email",
			provider: ProviderKakao,
			payload: map[string]any{
				"id":            float64(7),
				"kakao_account": map[string]any{},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DefaultRegistry().Normalize(tc.provider, tc.payload)

			var missing *MissingFieldError
			require.True(t, errors.As(err, &missing), "expected MissingFieldError, got %v", err)
			assert.Equal(t, "email", missing.Field)
			assert.Equal(t, tc.provider, missing.Provider)
		})
	}
}

func TestNormalize_MalformedShapes(t *testing.T) {
	// arbitrary garbage must map to typed errors, never panic
	cases := []struct {
		name     string
		provider Provider
		payload  map[string]any
	}{
		{"nil payload", ProviderGoogle, nil},
		{"empty payload", ProviderNaver, map[string]any{}},
		{"naver response wrong type", ProviderNaver, map[string]any{"response": "not-a-map"}},
		{"naver response nil", ProviderNaver, map[string]any{"response": nil}},
		{"kakao account wrong type", ProviderKakao, map[string]any{"id": float64(1), "kakao_account": []any{"x"}}},
		{"kakao profile wrong type", ProviderKakao, map[string]any{
			"id":            float64(1),
			"kakao_account": map[string]any{"email": "a@b.c", "profile": 42},
		}},
		{"google sub wrong type", ProviderGoogle, map[string]any{"sub": true, "email": "a@b.c"}},
		{"google empty email", ProviderGoogle, map[string]any{"sub": "1", "email": ""}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DefaultRegistry().Normalize(tc.provider, tc.payload)

			if err == nil {
				// the kakao profile case is legal: a broken optional sub-map is ignored
				assert.NotEmpty(t, got.ProviderID)
				return
			}

			var missing *MissingFieldError
			assert.True(t,
				errors.As(err, &missing) || errors.Is(err, ErrUnsupportedProvider),
				"unexpected error kind: %v", err,
			)
		})
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	_, err := r.Normalize(ProviderGoogle, map[string]any{"sub": "1", "email": "a@b.c"})
	assert.ErrorIs(t, err, ErrUnsupportedProvider)

	r.Register(googleNormalizer{})

	got, err := r.Normalize(ProviderGoogle, map[string]any{"sub": "1", "email": "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, "1", got.ProviderID)
}
