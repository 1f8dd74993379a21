package model

// User holds the local profile data relevant to the application. Identity
// itself (credentials, sessions) lives in firebase; everything here keys off
// the firebase UID.
type User struct {
	Id      string `db:"firebase_id" json:"id"`
	Name    string `db:"name" json:"name"`
	IsAdmin bool   `db:"is_admin" json:"isAdmin"`
	Avatar  string `db:"-" json:"avatar"`
}
