package domain

// User is a registered account. Username is the natural key.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	FullName     string `json:"fullName"`
	PasswordHash string `json:"-"`
	Currency     string `json:"currency"`
}

// PreferredCurrency returns the user's currency or DefaultCurrency.
func (u User) PreferredCurrency() string {
	if c := NormalizeCurrency(u.Currency); c != "" {
		return c
	}
	return DefaultCurrency
}

// ToRecord converts the user to its persisted form.
func (u User) ToRecord() Record {
	return Record{
		"user_id":       u.UserID,
		"username":      u.Username,
		"full_name":     u.FullName,
		"password_hash": u.PasswordHash,
		"currency":      u.Currency,
	}
}

// UserFromRecord coerces a persisted record.
func UserFromRecord(r Record) User {
	return User{
		UserID:       r.String("user_id"),
		Username:     r.String("username"),
		FullName:     r.String("full_name"),
		PasswordHash: r.String("password_hash"),
		Currency:     r.String("currency"),
	}
}
