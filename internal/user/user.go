package user

// Account represents a registered shopper. Usernames are immutable after
// registration; emails are stored lowercased so uniqueness checks are
// case-insensitive. The bcrypt digest never leaves the package in JSON.
type Account struct {
	ID             int    `json:"accountId"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	PasswordDigest string `json:"-"`
	Address        string `json:"address,omitempty"`
	CreatedAt      string `json:"createdAt,omitempty"`
	UpdatedAt      string `json:"updatedAt,omitempty"`
}

// ProfileUpdate carries the mutable profile fields. Nil means "leave as is".
type ProfileUpdate struct {
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
}
