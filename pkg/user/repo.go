package user

// StaticRepo is a single-entry identity table built from configuration.
type StaticRepo struct {
	user User
}

func NewStaticRepo(u User) *StaticRepo {
	return &StaticRepo{user: u}
}

func (r *StaticRepo) FindByUsername(username string) (*User, error) {
	if username == "" || username != r.user.Username {
		return nil, ErrUserNotFound
	}
	u := r.user
	return &u, nil
}
