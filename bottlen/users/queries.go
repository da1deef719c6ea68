package users

const (
	userColumns = `id, provider, provider_id, email, nickname, profile_image_url, phone, role, created_at, updated_at`

	queryFindByProvider = `
		SELECT ` + userColumns + `
		FROM users
		WHERE provider = $1 AND provider_id = $2
	`

	queryFindByID = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	queryCreate = `
		INSERT INTO users (provider, provider_id, email)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns + `
	`

	queryUpdateEmail = `
		UPDATE users
		SET email = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + userColumns + `
	`

	queryCompleteProfile = `
		UPDATE users
		SET nickname = $1, profile_image_url = $2, phone = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + userColumns + `
	`
)
