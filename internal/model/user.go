package model

// User represents a registered account as stored in the users
// collection.  Users are created on registration and never modified
// afterwards.  Username is unique across the collection.
//
// Fields:
//  ID        – identifier of the form USR_<12 hex chars>.
//  Username  – unique login name.
//  Password  – password digest (see utils.HashPassword for the scheme).
//  CreatedAt – creation time in Unix milliseconds.
type User struct {
    ID        string `json:"id"`        // users.id
    Username  string `json:"username"`  // users.username
    Password  string `json:"password"`  // users.password (digest, never the raw value)
    CreatedAt int64  `json:"createdAt"` // users.created_at
}

// PublicUser is the subset of User that may be returned to clients.
type PublicUser struct {
    ID       string `json:"id"`
    Username string `json:"username"`
}

// Public strips the password digest from the user.
func (u User) Public() PublicUser {
    return PublicUser{ID: u.ID, Username: u.Username}
}
