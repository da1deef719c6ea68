package identity

// kakao is flat at the top ("id") but nests account fields under
// "kakao_account", which in turn optionally nests a "profile" sub-map:
// {id, kakao_account: {email, phone_number, profile: {nickname}}}
type kakaoNormalizer struct{}

func (kakaoNormalizer) Provider() Provider {
	return ProviderKakao
}

func (kakaoNormalizer) Normalize(payload map[string]any) (CanonicalIdentity, error) {
	id, ok := stringField(payload, "id")
	if !ok {
		return CanonicalIdentity{}, &MissingFieldError{Provider: ProviderKakao, Field: "id"}
	}

	account, ok := mapField(payload, "kakao_account")
	if !ok {
		return CanonicalIdentity{}, &MissingFieldError{Provider: ProviderKakao, Field: "kakao_account"}
	}

	email, ok := stringField(account, "email")
	if !ok {
		return CanonicalIdentity{}, &MissingFieldError{Provider: ProviderKakao, Field: "email"}
	}

	// nickname lives in the optional profile sub-map
	var nickname string
	if profile, ok := mapField(account, "profile"); ok {
		nickname, _ = stringField(profile, "nickname")
	}

	phone, _ := stringField(account, "phone_number")

	return CanonicalIdentity{
		Provider:    ProviderKakao,
		ProviderID:  id,
		Email:       email,
		DisplayName: nickname,
		PhoneNumber: phone,
	}, nil
}
