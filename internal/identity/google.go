package identity

// google returns a flat userinfo payload: sub, email, name, phone
type googleNormalizer struct{}

func (googleNormalizer) Provider() Provider {
	return ProviderGoogle
}

func (googleNormalizer) Normalize(payload map[string]any) (CanonicalIdentity, error) {
	sub, ok := stringField(payload, "sub")
	if !ok {
		return CanonicalIdentity{}, &MissingFieldError{Provider: ProviderGoogle, Field: "sub"}
	}

	email, ok := stringField(payload, "email")
	if !ok {
		return CanonicalIdentity{}, &MissingFieldError{Provider: ProviderGoogle, Field: "email"}
	}

	name, _ := stringField(payload, "name")
	phone, _ := stringField(payload, "phone")

	return CanonicalIdentity{
		Provider:    ProviderGoogle,
		ProviderID:  sub,
		Email:       email,
		DisplayName: name,
		PhoneNumber: phone,
	}, nil
}
