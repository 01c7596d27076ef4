package repos

import (
	"github.com/jmoiron/sqlx"

	"bookhaven/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id, full_name, email, password_hash, role, created_at`

func (r *UserRepo) Create(u domain.User) error {
	_, err := r.DB.Exec(`
	  INSERT INTO users(id,full_name,email,password_hash,role,created_at)
	  VALUES(?,?,?,?,?,CURRENT_TIMESTAMP)
	`, u.ID, u.FullName, u.Email, u.Hash, u.Role)
	return err
}

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) EmailTaken(email string) (bool, error) {
	var n int
	if err := r.DB.Get(&n, `SELECT COUNT(*) FROM users WHERE LOWER(email)=LOWER(?)`, email); err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdateProfile mutates name and email only; the password hash and role are
// never touched here.
func (r *UserRepo) UpdateProfile(id, fullName, email string) error {
	_, err := r.DB.Exec(`
	  UPDATE users SET full_name=?, email=?, updated_at=CURRENT_TIMESTAMP WHERE id=?
	`, fullName, email, id)
	return err
}

func (r *UserRepo) List() ([]domain.User, error) {
	out := []domain.User{}
	err := r.DB.Select(&out, `SELECT `+userCols+` FROM users ORDER BY datetime(created_at) DESC`)
	return out, err
}
