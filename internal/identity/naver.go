package identity

// naver nests the real payload one level down under a "response" key:
// {resultcode, message, response: {id, email, name, phone, ...}}
type naverNormalizer struct{}

func (naverNormalizer) Provider() Provider {
	return ProviderNaver
}

func (naverNormalizer) Normalize(payload map[string]any) (CanonicalIdentity, error) {
	response, ok := mapField(payload, "response")
	if !ok {
		return CanonicalIdentity{}, &MissingFieldError{Provider: ProviderNaver, Field: "response"}
	}

	id, ok := stringField(response, "id")
	if !ok {
		return CanonicalIdentity{}, &MissingFieldError{Provider: ProviderNaver, Field: "id"}
	}

	email, ok := stringField(response, "email")
	if !ok {
		return CanonicalIdentity{}, &MissingFieldError{Provider: ProviderNaver, Field: "email"}
	}

	name, _ := stringField(response, "name")
	phone, _ := stringField(response, "phone")

	return CanonicalIdentity{
		Provider:    ProviderNaver,
		ProviderID:  id,
		Email:       email,
		DisplayName: name,
		PhoneNumber: phone,
	}, nil
}
