package user

type User struct {
	ID          uint
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Password    string
	IsSuperuser bool
}

type RegisterInput struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
}

// Ref names a user by id or username. ID wins when both are set.
type Ref struct {
	ID       *string
	Username *string
}
