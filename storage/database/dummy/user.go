package dummydb

import (
	"context"

	"github.com/trezcool/eduroot/core/user"
)

type UserRepository struct {
	db *userTable
}

var _ user.Repository = (*UserRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db.user}
}

func (repo *UserRepository) CreateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, u := range repo.db.rows {
		if u.Email == usr.Email {
			return user.User{}, user.ErrEmailExists
		}
	}
	repo.db.rows = append(repo.db.rows, usr)
	return usr, nil
}

func (repo *UserRepository) GetUserByID(_ context.Context, id string) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, u := range repo.db.rows {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *UserRepository) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, u := range repo.db.rows {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *UserRepository) UpdateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for i, u := range repo.db.rows {
		if u.ID == usr.ID {
			repo.db.rows[i] = usr
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

// DeleteUser removes the user with the given id, if any.
func (repo *UserRepository) DeleteUser(_ context.Context, id string) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for i, u := range repo.db.rows {
		if u.ID == id {
			repo.db.rows = append(repo.db.rows[:i], repo.db.rows[i+1:]...)
			return
		}
	}
}
