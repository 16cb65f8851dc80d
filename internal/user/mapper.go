package user

// Summary is the public view of a user.
type Summary struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}

func ToSummary(u *User) Summary {
	return Summary{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
	}
}

func ToSummaries(users []*User) []Summary {
	out := make([]Summary, 0, len(users))
	for _, u := range users {
		out = append(out, ToSummary(u))
	}
	return out
}
